package progress

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/uicheck/pkg/config"
	"github.com/umputun/uicheck/pkg/status"
)

// newTestLogger creates a logger in a temp dir with stdout captured.
func newTestLogger(t *testing.T, cfg Config) (*Logger, *bytes.Buffer) {
	t.Helper()
	if cfg.OutputDir == "" {
		cfg.OutputDir = t.TempDir()
	}
	l, err := NewLogger(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	var buf bytes.Buffer
	l.stdout = &buf
	return l, &buf
}

func readLog(t *testing.T, l *Logger) string {
	t.Helper()
	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	return string(data)
}

func TestNewLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "verification")
	l, err := NewLogger(Config{OutputDir: dir, BaseURL: "http://localhost:5173", Revision: "abc1234", NoColor: true})
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, filepath.Join(dir, RunLogName), l.Path())
	content := readLog(t, l)
	assert.Contains(t, content, "# uicheck run log")
	assert.Contains(t, content, "Target: http://localhost:5173")
	assert.Contains(t, content, "Revision: abc1234")
}

func TestLogger_Print(t *testing.T) {
	l, buf := newTestLogger(t, Config{NoColor: true})

	l.Print("test message %d", 42)

	assert.Contains(t, readLog(t, l), "test message 42")
	assert.Contains(t, buf.String(), "test message 42")
}

func TestLogger_PrintRaw(t *testing.T) {
	l, buf := newTestLogger(t, Config{NoColor: true})

	l.PrintRaw("[console] raw output\n")

	assert.Contains(t, readLog(t, l), "[console] raw output")
	assert.Equal(t, "[console] raw output\n", buf.String())
}

func TestLogger_PrintSection(t *testing.T) {
	l, buf := newTestLogger(t, Config{NoColor: true})

	l.PrintSection(status.NewScenarioSection(2, 5, "login-toast"))

	assert.Contains(t, readLog(t, l), "--- scenario 2/5: login-toast ---")
	assert.Contains(t, buf.String(), "--- scenario 2/5: login-toast ---")
}

func TestLogger_PrintAligned(t *testing.T) {
	l, buf := newTestLogger(t, Config{NoColor: true})

	l.PrintAligned("first line\nsecond line\nthird line\n")

	content := readLog(t, l)
	assert.Contains(t, content, "] first line")
	assert.Contains(t, content, indent+"second line")
	assert.Contains(t, content, indent+"third line")
	assert.True(t, strings.HasSuffix(buf.String(), "third line\n"))
}

func TestLogger_PrintAligned_Empty(t *testing.T) {
	l, buf := newTestLogger(t, Config{NoColor: true})
	l.PrintAligned("")
	l.PrintAligned("\n\n")
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorAndWarn(t *testing.T) {
	l, buf := newTestLogger(t, Config{NoColor: true})

	l.Error("something failed: %s", "reason")
	l.Warn("warning message")

	content := readLog(t, l)
	assert.Contains(t, content, "ERROR: something failed: reason")
	assert.Contains(t, content, "WARN: warning message")
	assert.Contains(t, buf.String(), "ERROR: something failed: reason")
	assert.Contains(t, buf.String(), "WARN: warning message")
}

func TestLogger_AddSecret(t *testing.T) {
	l, buf := newTestLogger(t, Config{NoColor: true})
	l.AddSecret("user@example.com")
	l.AddSecret("hunter2")
	l.AddSecret("hunter2") // duplicate ignored
	l.AddSecret("")

	l.Print("fill Email Address with %s", "user@example.com")
	l.Warn("password %s rejected", "hunter2")
	l.PrintRaw("raw hunter2\n")
	l.PrintAligned("line one user@example.com\nline two hunter2")
	l.PrintSection(status.NewGenericSection("login as user@example.com"))

	for name, out := range map[string]string{"file": readLog(t, l), "stdout": buf.String()} {
		assert.NotContains(t, out, "user@example.com", name)
		assert.NotContains(t, out, "hunter2", name)
		assert.Contains(t, out, Mask, name)
	}
	assert.Equal(t, "token ***", l.Redact("token hunter2"))
}

func TestLogger_AddSecret_Overlapping(t *testing.T) {
	l, _ := newTestLogger(t, Config{NoColor: true})
	l.AddSecret("pass")
	l.AddSecret("password123")
	assert.Equal(t, "*** and ***", l.Redact("password123 and pass"))
}

func TestLogger_SetPhase(t *testing.T) {
	origNoColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = origNoColor }()

	l, buf := newTestLogger(t, Config{Colors: NewColors(config.ColorConfig{Steps: "0,255,0", Assert: "0,255,255"})})

	l.SetPhase(status.PhaseSteps)
	l.Print("steps output")
	l.SetPhase(status.PhaseAssert)
	l.Print("assert output")

	output := buf.String()
	assert.Contains(t, output, "\033[38;2;0;255;0m")
	assert.Contains(t, output, "\033[38;2;0;255;255m")
	assert.Contains(t, output, "steps output")
	assert.Contains(t, output, "assert output")
}

func TestLogger_ColorDisabled(t *testing.T) {
	origNoColor := color.NoColor
	defer func() { color.NoColor = origNoColor }()

	l, buf := newTestLogger(t, Config{NoColor: true})
	l.SetPhase(status.PhaseSteps)
	l.Print("no color output")

	assert.NotContains(t, buf.String(), "\033[")
	assert.Contains(t, buf.String(), "no color output")
}

func TestLogger_ConcurrentPrint(t *testing.T) {
	l, buf := newTestLogger(t, Config{NoColor: true})

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Print("line %d", i)
		}()
	}
	wg.Wait()

	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 20)
}

func TestLogger_Close(t *testing.T) {
	l, err := NewLogger(Config{OutputDir: t.TempDir(), NoColor: true})
	require.NoError(t, err)

	l.Print("some output")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "second close is a no-op")

	content := readLog(t, l)
	assert.Contains(t, content, "Completed:")
	assert.Contains(t, content, strings.Repeat("-", 60))
	assert.NotEmpty(t, l.Elapsed())
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "short", wrapText("short", 20))
	assert.Equal(t, "aaa bbb\nccc", wrapText("aaa bbb ccc", 7))
	assert.Equal(t, "abc", wrapText("abc", 0))
}

func TestTerminalWidth(t *testing.T) {
	t.Setenv("COLUMNS", "120")
	assert.Equal(t, 100, terminalWidth())
	t.Setenv("COLUMNS", "30")
	assert.Equal(t, 40, terminalWidth())
}

func TestNewColors_Fallback(t *testing.T) {
	c := NewColors(config.ColorConfig{Steps: "bad"})
	assert.NotNil(t, c.Phase(status.PhaseSteps))
	assert.Equal(t, c.info, c.Phase(status.Phase("unknown")))
	assert.Same(t, c.info, c.Info())
	assert.Same(t, c.err, c.Error())

	r, g, b, err := parseRGB("1, 2,3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, []int{r, g, b})
	_, _, _, err = parseRGB("1,2,300")
	assert.Error(t, err)
}
