//go:build e2e

// Package e2e runs scenarios in a real browser against an in-process fixture application.
package e2e

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/umputun/uicheck/pkg/browser"
	"github.com/umputun/uicheck/pkg/evidence"
	"github.com/umputun/uicheck/pkg/runner"
	"github.com/umputun/uicheck/pkg/scenario"
	"github.com/umputun/uicheck/pkg/status"
)

const (
	testEmail    = "operator@example.com"
	testPassword = "s3cret-pass"

	// polling interval for assertions, fast enough to keep the suite short
	pollInterval = 50 * time.Millisecond
	stepTimeout  = 5 * time.Second
)

var (
	pw      *browser.Playwright
	app     *httptest.Server
	headful = os.Getenv("E2E_HEADLESS") == "false"
)

func TestMain(m *testing.M) {
	code := 1
	defer func() {
		os.Exit(code)
	}()

	var err error
	pw, err = browser.StartPlaywright(true, "chromium")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup playwright: %v\n", err)
		return
	}
	defer func() { _ = pw.Stop() }()

	app = httptest.NewServer(newFixtureApp(testEmail, testPassword))
	defer app.Close()

	code = m.Run()
}

// memLogger collects log lines, it is the runner.Logger used by the tests.
type memLogger struct {
	mu      sync.Mutex
	lines   []string
	secrets []string
}

func (l *memLogger) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := fmt.Sprintf(format, args...)
	for _, sec := range l.secrets {
		s = strings.ReplaceAll(s, sec, "***")
	}
	l.lines = append(l.lines, s)
}

func (l *memLogger) SetPhase(status.Phase) {}
func (l *memLogger) Print(format string, args ...any) { l.add(format, args...) }
func (l *memLogger) PrintRaw(format string, args ...any) { l.add(format, args...) }
func (l *memLogger) PrintSection(s status.Section) { l.add("--- %s ---", s.Label) }
func (l *memLogger) Warn(format string, args ...any) { l.add("WARN "+format, args...) }
func (l *memLogger) Error(format string, args ...any) { l.add("ERROR "+format, args...) }

func (l *memLogger) Redact(s string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, sec := range l.secrets {
		s = strings.ReplaceAll(s, sec, "***")
	}
	return s
}

func (l *memLogger) AddSecret(secret string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.secrets = append(l.secrets, secret)
}

func (l *memLogger) text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

// env builds a lookup over fixed variables, credentials included unless noCreds is set.
func env(noCreds bool, extra map[string]string) func(string) (string, bool) {
	vars := map[string]string{}
	if !noCreds {
		vars["EMAIL"] = testEmail
		vars["PASS"] = testPassword
	}
	for k, v := range extra {
		vars[k] = v
	}
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

// newRunner returns a runner against the fixture app writing evidence into a temp dir.
func newRunner(t *testing.T, lookup func(string) (string, bool), log runner.Logger) (*runner.Runner, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "verification")
	cfg := runner.Config{
		BaseURL:        app.URL,
		LoginPath:      "/login",
		EmailLabel:     "Email Address",
		PasswordLabel:  "Password",
		ServerLabel:    "Server",
		SignInButton:   "Sign In|Masuk",
		DefaultTimeout: stepTimeout,
		PollInterval:   pollInterval,
		Browser:        "chromium",
		Headless:       !headful,
		Width:          1280,
		Height:         720,
		Env:            lookup,
	}
	return runner.New(cfg, log, pw, evidence.NewRecorder(dir)), dir
}

// parse reads a single scenario from yaml.
func parse(t *testing.T, doc string) scenario.Scenario {
	t.Helper()
	ss, err := scenario.Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, ss, 1)
	return ss[0]
}

func runScenario(t *testing.T, doc string, lookup func(string) (string, bool)) (runner.Result, *memLogger, string) {
	t.Helper()
	log := &memLogger{}
	r, dir := newRunner(t, lookup, log)
	ctx, cancel := context.WithTimeout(t.Context(), time.Minute)
	defer cancel()
	return r.Run(ctx, parse(t, doc)), log, dir
}
