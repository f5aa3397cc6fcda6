// Package runner executes scenarios: it bootstraps a browser session, performs the steps in
// order, checks the assertions and records evidence. Every scenario gets its own browser.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/umputun/uicheck/pkg/browser"
	"github.com/umputun/uicheck/pkg/config"
	"github.com/umputun/uicheck/pkg/evidence"
	"github.com/umputun/uicheck/pkg/scenario"
	"github.com/umputun/uicheck/pkg/status"
)

const fallbackTimeout = 10 * time.Second

// Config contains runner configuration.
type Config struct {
	BaseURL        string
	LoginPath      string
	EmailLabel     string
	PasswordLabel  string
	ServerLabel    string
	SignInButton   string // regex matched against the sign in button name
	DefaultTimeout time.Duration
	PollInterval   time.Duration
	Browser        string
	Headless       bool
	SlowMo         time.Duration
	Width          int
	Height         int

	// Env looks up environment variables, os.LookupEnv when nil.
	Env func(string) (string, bool)

	// OnResult, if set, is called by RunAll after each scenario finishes.
	OnResult func(Result)
}

// Logger provides logging functionality.
type Logger interface {
	SetPhase(phase status.Phase)
	Print(format string, args ...any)
	PrintRaw(format string, args ...any)
	PrintSection(section status.Section)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	AddSecret(secret string)
	Redact(s string) string
}

// Runner orchestrates scenario execution.
type Runner struct {
	cfg      Config
	log      Logger
	launcher browser.Launcher
	rec      *evidence.Recorder
}

// Result is the outcome of one scenario.
type Result struct {
	Scenario  string
	State     status.State
	Phase     status.Phase // phase the scenario ended in
	Err       error
	Captures  []string // screenshots written at capture points
	Artifacts []string // error screenshot, console and content dumps
	Started   time.Time
	Duration  time.Duration
}

// New creates a runner. Screenshots and dumps go to rec.
func New(cfg Config, log Logger, launcher browser.Launcher, rec *evidence.Recorder) *Runner {
	if cfg.Env == nil {
		cfg.Env = os.LookupEnv
	}
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = fallbackTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	return &Runner{cfg: cfg, log: log, launcher: launcher, rec: rec}
}

// Run executes a single scenario in a fresh browser. It never returns an error,
// the failure is reported in the result.
func (r *Runner) Run(ctx context.Context, sc scenario.Scenario) (res Result) {
	res = Result{Scenario: sc.Name, State: status.StateRunning, Started: time.Now()}
	defer func() { res.Duration = time.Since(res.Started) }()

	err := r.execute(ctx, sc, &res)

	var skip *skipError
	switch {
	case err == nil:
		res.State = status.StatePassed
		r.log.Print("scenario %s passed", sc.Name)
	case errors.As(err, &skip):
		res.State = status.StateSkipped
		r.log.Warn("scenario %s skipped: %v", sc.Name, skip)
	default:
		res.State = status.StateFailed
		res.Err = err
		r.log.Error("scenario %s failed: %v", sc.Name, err)
	}
	return res
}

// execute runs bootstrap, steps and assertions. Diagnostics are collected here, while the page is still open.
func (r *Runner) execute(ctx context.Context, sc scenario.Scenario, res *Result) error {
	r.setPhase(res, status.PhaseBootstrap)
	if sc.Description != "" {
		r.log.Print("%s", sc.Description)
	}

	creds := config.CredentialsFromEnv(r.cfg.Env)
	for _, s := range creds.Secrets() {
		r.log.AddSecret(s)
	}
	if err := sc.Validate(); err != nil {
		return &ConfigError{Scenario: sc.Name, Err: err}
	}
	if missing := creds.Missing(); sc.NeedsCredentials() && len(missing) > 0 {
		return &ConfigError{Scenario: sc.Name, Err: fmt.Errorf("missing required environment %s", strings.Join(missing, ", "))}
	}
	expanded, err := sc.Expanded(r.cfg.Env)
	if err != nil {
		return &ConfigError{Scenario: sc.Name, Err: err}
	}

	opts := browser.LaunchOptions{
		Browser:  r.cfg.Browser,
		Headless: r.cfg.Headless,
		SlowMo:   r.cfg.SlowMo,
		Width:    r.cfg.Width,
		Height:   r.cfg.Height,
	}
	if sc.Viewport != nil {
		opts.Width, opts.Height = sc.Viewport.Width, sc.Viewport.Height
	}
	r.log.Print("launching %s (headless=%t)", opts.Browser, opts.Headless)
	session, err := r.launcher.Launch(ctx, opts)
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			r.log.Warn("close browser: %v", err)
		}
	}()

	page := session.Page()
	console := r.watchConsole(page, sc)

	if err := r.steps(ctx, page, sc, expanded, creds, res); err != nil {
		var skip *skipError
		if !errors.As(err, &skip) {
			r.diagnose(page, sc, console, res)
		}
		return err
	}
	return nil
}

// steps runs the session bootstrap, the scenario steps and the final assertions.
func (r *Runner) steps(ctx context.Context, page browser.Page, orig, sc scenario.Scenario, creds config.Credentials,
	res *Result) error {
	start := r.resolveURL(sc.URL)
	if sc.Login {
		for i, st := range r.loginSteps(creds) {
			r.log.Print("login %d: %s", i+1, st.Describe())
			if err := r.step(ctx, page, sc, st, res); err != nil {
				return fmt.Errorf("login: %w", err)
			}
		}
		if start != r.resolveURL(r.cfg.LoginPath) {
			if err := r.step(ctx, page, sc, scenario.Step{Action: scenario.ActionNavigate, Value: sc.URL}, res); err != nil {
				return err
			}
		}
	} else {
		r.log.Print("open %s", start)
		if err := r.step(ctx, page, sc, scenario.Step{Action: scenario.ActionNavigate, Value: sc.URL}, res); err != nil {
			return err
		}
	}

	r.setPhase(res, status.PhaseSteps)
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		r.log.Print("step %d/%d: %s", i+1, len(sc.Steps), orig.Steps[i].Describe())
		if err := r.step(ctx, page, sc, st, res); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if res.Phase == status.PhaseCapture {
			r.setPhase(res, status.PhaseSteps)
		}
	}

	if len(sc.Assertions) == 0 {
		return nil
	}
	r.setPhase(res, status.PhaseAssert)
	for i, a := range sc.Assertions {
		r.log.Print("assert %d/%d: %s", i+1, len(sc.Assertions), orig.Assertions[i].Describe())
		if err := r.assert(ctx, page, a, r.timeout(sc, a.Timeout)); err != nil {
			return fmt.Errorf("assertion %d: %w", i+1, err)
		}
	}
	return nil
}

// loginSteps is the standard sign in sequence. Fill values are credentials and are never described.
func (r *Runner) loginSteps(creds config.Credentials) []scenario.Step {
	res := []scenario.Step{
		{Action: scenario.ActionNavigate, Value: r.cfg.LoginPath},
		{Name: "fill email", Action: scenario.ActionFill, Target: &scenario.Target{Label: r.cfg.EmailLabel}, Value: creds.Email},
		{Name: "fill password", Action: scenario.ActionFill, Target: &scenario.Target{Label: r.cfg.PasswordLabel},
			Value: creds.Password},
	}
	if creds.Server != "" {
		res = append(res, scenario.Step{Name: "fill server", Action: scenario.ActionFill,
			Target: &scenario.Target{Label: r.cfg.ServerLabel}, Value: creds.Server})
	}
	res = append(res, scenario.Step{Name: "sign in", Action: scenario.ActionClick,
		Target: &scenario.Target{Role: "button", NameRegex: r.cfg.SignInButton}})
	return res
}

// consoleBuffer collects console lines, the engine calls back from its own goroutine.
type consoleBuffer struct {
	mu    sync.Mutex
	lines []string
}

func (c *consoleBuffer) add(line string) {
	c.mu.Lock()
	c.lines = append(c.lines, line)
	c.mu.Unlock()
}

func (c *consoleBuffer) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) == 0 {
		return ""
	}
	return strings.Join(c.lines, "\n") + "\n"
}

// watchConsole subscribes to browser console messages according to the scenario console mode.
// returns the buffer collecting lines for failure diagnostics, nil when nothing is collected.
func (r *Runner) watchConsole(page browser.Page, sc scenario.Scenario) *consoleBuffer {
	stream := sc.Console == scenario.ConsoleStream
	collect := sc.Console == scenario.ConsoleOnFailure || sc.OnFailure.Console
	if !stream && !collect {
		return nil
	}
	var buf *consoleBuffer
	if collect {
		buf = &consoleBuffer{}
	}
	page.OnConsole(func(m browser.ConsoleMessage) {
		line := fmt.Sprintf("[console] %s: %s", m.Type, m.Text)
		if stream {
			r.log.PrintRaw("%s\n", line)
		}
		if buf != nil {
			buf.add(line)
		}
	})
	return buf
}

// diagnose collects failure evidence. Every part is best-effort and never masks the scenario error.
func (r *Runner) diagnose(page browser.Page, sc scenario.Scenario, console *consoleBuffer, res *Result) {
	if sc.OnFailure.TakeScreenshot() {
		if p, err := r.rec.ErrorScreenshot(page, sc.Name); err != nil {
			r.log.Warn("error screenshot: %v", err)
		} else {
			r.log.Print("error screenshot saved to %s", p)
			res.Artifacts = append(res.Artifacts, p)
		}
	}

	if sc.OnFailure.Content {
		content, err := page.Content()
		switch {
		case err != nil:
			r.log.Warn("page content: %v", err)
		default:
			content = r.log.Redact(content)
			r.log.PrintRaw("--- page content ---\n%s\n", content)
			if p, err := r.rec.WriteText(sc.Name+"-content.html", content); err != nil {
				r.log.Warn("save page content: %v", err)
			} else {
				res.Artifacts = append(res.Artifacts, p)
			}
		}
	}

	if console == nil {
		return
	}
	lines := r.log.Redact(console.String())
	if lines == "" {
		return
	}
	if sc.Console != scenario.ConsoleStream {
		r.log.PrintRaw("%s", lines)
	}
	if p, err := r.rec.WriteText(sc.Name+"-console.txt", lines); err != nil {
		r.log.Warn("save console log: %v", err)
	} else {
		res.Artifacts = append(res.Artifacts, p)
	}
}

// timeout picks the first positive value of explicit, the scenario timeout and the configured default.
func (r *Runner) timeout(sc scenario.Scenario, explicit ...time.Duration) time.Duration {
	for _, d := range explicit {
		if d > 0 {
			return d
		}
	}
	if sc.Timeout > 0 {
		return sc.Timeout
	}
	return r.cfg.DefaultTimeout
}

// resolveURL joins relative paths with the base url.
func (r *Runner) resolveURL(v string) string {
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v
	}
	base := strings.TrimRight(r.cfg.BaseURL, "/")
	if v == "" {
		return base + "/"
	}
	if !strings.HasPrefix(v, "/") {
		v = "/" + v
	}
	return base + v
}

func (r *Runner) setPhase(res *Result, p status.Phase) {
	res.Phase = p
	r.log.SetPhase(p)
}
