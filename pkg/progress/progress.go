// Package progress writes the timestamped run log to a file and stdout with color support.
// registered secrets are masked in every line before it is written anywhere.
package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/umputun/uicheck/pkg/status"
)

// RunLogName is the run log file name inside the output directory.
const RunLogName = "uicheck-run.txt"

// Mask replaces secret values in log output.
const Mask = "***"

// timestampFormat is YY-MM-DD HH:MM:SS.
const timestampFormat = "06-01-02 15:04:05"

// indent aligns continuation lines with "[YY-MM-DD HH:MM:SS] ".
const indent = "                    "

// Config holds logger configuration.
type Config struct {
	OutputDir string  // run log directory, created if missing
	BaseURL   string  // application under test, recorded in the header
	Revision  string  // optional app revision, recorded in the header
	NoColor   bool    // disable color output (sets color.NoColor globally)
	Colors    *Colors // nil uses basic ansi colors
}

// Logger writes timestamped output to both the run log and stdout. Safe for concurrent use,
// console messages arrive from the browser driver goroutines.
type Logger struct {
	mu        sync.Mutex
	file      *os.File
	path      string
	stdout    io.Writer
	colors    *Colors
	startTime time.Time
	phase     status.Phase
	secrets   []string
	redactor  *strings.Replacer
}

// NewLogger creates a logger writing to <OutputDir>/uicheck-run.txt and stdout.
func NewLogger(cfg Config) (*Logger, error) {
	if cfg.NoColor {
		color.NoColor = true
	}
	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, RunLogName)) //nolint:gosec // path from config
	if err != nil {
		return nil, fmt.Errorf("create run log: %w", err)
	}

	l := &Logger{file: f, path: f.Name(), stdout: os.Stdout, colors: cfg.Colors, startTime: time.Now(), phase: status.PhaseBootstrap}
	if l.colors == nil {
		l.colors = defaultColors()
	}

	l.writeFile("# uicheck run log\n")
	l.writeFile("Target: %s\n", cfg.BaseURL)
	if cfg.Revision != "" {
		l.writeFile("Revision: %s\n", cfg.Revision)
	}
	l.writeFile("Started: %s\n", l.startTime.Format("2006-01-02 15:04:05"))
	l.writeFile("%s\n\n", strings.Repeat("-", 60))
	return l, nil
}

// Path returns the run log path.
func (l *Logger) Path() string {
	return l.path
}

// SetPhase sets the current phase for color coding.
func (l *Logger) SetPhase(phase status.Phase) {
	l.mu.Lock()
	l.phase = phase
	l.mu.Unlock()
}

// AddSecret registers a value that must never appear in output. Empty values are ignored.
func (l *Logger) AddSecret(secret string) {
	if secret == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.secrets {
		if s == secret {
			return
		}
	}
	l.secrets = append(l.secrets, secret)
	// longest first, so a secret containing another one is masked whole
	sort.Slice(l.secrets, func(i, j int) bool { return len(l.secrets[i]) > len(l.secrets[j]) })
	pairs := make([]string, 0, len(l.secrets)*2)
	for _, s := range l.secrets {
		pairs = append(pairs, s, Mask)
	}
	l.redactor = strings.NewReplacer(pairs...)
}

// Redact masks registered secrets in s.
func (l *Logger) Redact(s string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.redact(s)
}

func (l *Logger) redact(s string) string {
	if l.redactor == nil {
		return s
	}
	return l.redactor.Replace(s)
}

// Print writes a timestamped message in the current phase color.
func (l *Logger) Print(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := l.redact(fmt.Sprintf(format, args...))
	ts := time.Now().Format(timestampFormat)
	l.writeFile("[%s] %s\n", ts, msg)
	l.writeStdout("%s %s\n", l.colors.timestamp.Sprintf("[%s]", ts), l.colors.Phase(l.phase).Sprint(msg))
}

// PrintRaw writes without timestamp, used for streamed console output.
func (l *Logger) PrintRaw(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := l.redact(fmt.Sprintf(format, args...))
	l.writeFile("%s", msg)
	l.writeStdout("%s", msg)
}

// PrintSection writes a section header, e.g. the start of a scenario.
func (l *Logger) PrintSection(section status.Section) {
	l.mu.Lock()
	defer l.mu.Unlock()
	label := l.redact(section.Label)
	l.writeFile("\n--- %s ---\n", label)
	l.writeStdout("\n%s\n", l.colors.info.Sprintf("--- %s ---", label))
}

// PrintAligned writes multi-line text: the first line gets a timestamp, the rest are indented
// and long lines are wrapped to the terminal width.
func (l *Logger) PrintAligned(text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	text = l.redact(text)
	ts := time.Now().Format(timestampFormat)
	pc := l.colors.Phase(l.phase)
	width := terminalWidth()

	var lines []string
	for line := range strings.SplitSeq(text, "\n") {
		if len(line) <= width {
			lines = append(lines, line)
			continue
		}
		lines = append(lines, strings.Split(wrapText(line, width), "\n")...)
	}

	for i, line := range lines {
		switch {
		case line == "":
			l.writeFile("\n")
			l.writeStdout("\n")
		case i == 0:
			l.writeFile("[%s] %s\n", ts, line)
			l.writeStdout("%s %s\n", l.colors.timestamp.Sprintf("[%s]", ts), pc.Sprint(line))
		default:
			l.writeFile("%s%s\n", indent, line)
			l.writeStdout("%s%s\n", indent, pc.Sprint(line))
		}
	}
}

// Error writes an error message.
func (l *Logger) Error(format string, args ...any) {
	l.printLevel("ERROR", l.colors.err, format, args...)
}

// Warn writes a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.printLevel("WARN", l.colors.warn, format, args...)
}

func (l *Logger) printLevel(level string, c *color.Color, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := l.redact(fmt.Sprintf(format, args...))
	ts := time.Now().Format(timestampFormat)
	l.writeFile("[%s] %s: %s\n", ts, level, msg)
	l.writeStdout("%s %s\n", l.colors.timestamp.Sprintf("[%s]", ts), c.Sprintf("%s: %s", level, msg))
}

// Elapsed returns formatted elapsed time since start.
func (l *Logger) Elapsed() string {
	return humanize.RelTime(l.startTime, time.Now(), "", "")
}

// Close writes the footer and closes the run log.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	l.writeFile("\n%s\n", strings.Repeat("-", 60))
	l.writeFile("Completed: %s (%s)\n", time.Now().Format("2006-01-02 15:04:05"), l.Elapsed())
	err := l.file.Close()
	l.file = nil
	if err != nil {
		return fmt.Errorf("close run log: %w", err)
	}
	return nil
}

func (l *Logger) writeFile(format string, args ...any) {
	if l.file != nil {
		fmt.Fprintf(l.file, format, args...)
	}
}

func (l *Logger) writeStdout(format string, args ...any) {
	fmt.Fprintf(l.stdout, format, args...)
}

// terminalWidth returns the content width (terminal width minus the timestamp prefix),
// from COLUMNS or the terminal itself, 60 when unknown.
func terminalWidth() int {
	const minWidth, prefix = 40, 20
	clamp := func(w int) int { return max(w-prefix, minWidth) }

	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil && w > 0 {
			return clamp(w)
		}
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return clamp(w)
	}
	return 80 - prefix
}

// wrapText wraps text to width on word boundaries.
func wrapText(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}
	var b strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		switch {
		case i == 0:
			lineLen = len(word)
		case lineLen+1+len(word) <= width:
			b.WriteString(" ")
			lineLen += 1 + len(word)
		default:
			b.WriteString("\n")
			lineLen = len(word)
		}
		b.WriteString(word)
	}
	return b.String()
}
