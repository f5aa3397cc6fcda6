// Package main provides uicheck - declarative browser checks of a running web application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/umputun/uicheck/pkg/browser"
	"github.com/umputun/uicheck/pkg/config"
	"github.com/umputun/uicheck/pkg/evidence"
	"github.com/umputun/uicheck/pkg/git"
	"github.com/umputun/uicheck/pkg/notify"
	"github.com/umputun/uicheck/pkg/progress"
	"github.com/umputun/uicheck/pkg/report"
	"github.com/umputun/uicheck/pkg/runner"
	"github.com/umputun/uicheck/pkg/scenario"
	"github.com/umputun/uicheck/pkg/watch"
	"github.com/umputun/uicheck/pkg/web"
)

// opts holds all command-line options.
type opts struct {
	ConfigDir string `long:"config-dir" env:"UICHECK_CONFIG_DIR" description:"global config directory (default ~/.config/uicheck)"`
	Scenarios string `long:"scenarios" description:"directory with scenario yaml files, overrides scenarios_dir"`
	BaseURL   string `short:"u" long:"base-url" description:"application base url, overrides base_url"`
	Output    string `short:"o" long:"output" description:"evidence directory, overrides output_dir"`
	Headed    bool   `long:"headed" description:"show the browser window"`
	Install   bool   `long:"install" description:"install the playwright driver and browser before running"`
	List      bool   `short:"l" long:"list" description:"list scenarios and exit"`
	Serve     bool   `short:"s" long:"serve" description:"start web dashboard for real-time streaming"`
	Port      int    `short:"p" long:"port" default:"8080" description:"web dashboard port"`
	Watch     bool   `short:"w" long:"watch" description:"re-run scenarios when their files change"`
	NoColor   bool   `long:"no-color" description:"disable color output"`
	Debug     bool   `short:"d" long:"debug" description:"enable debug logging"`
	Version   bool   `short:"v" long:"version" description:"print version and exit"`

	Names []string `positional-arg-name:"scenario" description:"scenario names or patterns to run (all when omitted)"`
}

var revision = "unknown"

func main() {
	fmt.Printf("uicheck %s\n", revision)

	var o opts
	parser := flags.NewParser(&o, flags.Default)
	parser.Usage = "[OPTIONS] [scenario...]"

	args, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if o.Version {
		os.Exit(0)
	}
	o.Names = args

	// setup context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	restore := disableCtrlCEcho()
	defer restore()

	if err := run(ctx, o); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		restore()
		os.Exit(1) //nolint:gocritic // restore and cancel are handled explicitly above
	}
}

func run(ctx context.Context, o opts) error {
	cfg, err := config.Load(o.ConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyOverrides(cfg, o); err != nil {
		return err
	}
	if o.Debug {
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	}

	scenarios, err := loadScenarios(cfg.ScenariosDir)
	if err != nil {
		return err
	}
	selected, err := scenario.Select(scenarios, o.Names)
	if err != nil {
		return err
	}

	colors := progress.NewColors(cfg.Colors)
	if o.List {
		return listScenarios(os.Stdout, selected)
	}
	if o.Watch && cfg.ScenariosDir == "" {
		return errors.New("watch mode requires a scenarios directory (--scenarios or scenarios_dir)")
	}

	// credentials from .env never override the real environment
	if err := config.LoadEnvFile(cfg.EnvFile); err != nil {
		return err
	}

	appRevision := git.Describe(cfg.AppRepo)
	baseLog, err := progress.NewLogger(progress.Config{
		OutputDir: cfg.OutputDir,
		BaseURL:   cfg.BaseURL,
		Revision:  appRevision,
		NoColor:   o.NoColor,
		Colors:    colors,
	})
	if err != nil {
		return fmt.Errorf("create progress logger: %w", err)
	}
	defer baseLog.Close()
	for _, s := range config.CredentialsFromEnv(os.LookupEnv).Secrets() {
		baseLog.AddSecret(s)
	}

	// wrap logger with broadcast logger if --serve is enabled
	var runLog runner.Logger = baseLog
	var dashboard *web.Dashboard
	var blog *web.BroadcastLogger
	if o.Serve {
		dashboard = web.NewDashboard(web.DashboardConfig{
			BaseLog:   baseLog,
			Port:      o.Port,
			Title:     cfg.BaseURL,
			Revision:  appRevision,
			OutputDir: cfg.OutputDir,
			Colors:    colors,
		})
		if blog, err = dashboard.Start(ctx); err != nil {
			return err
		}
		runLog = blog
	}

	pw, err := browser.StartPlaywright(o.Install, cfg.Browser)
	if err != nil {
		return err
	}
	defer func() {
		if err := pw.Stop(); err != nil {
			baseLog.Warn("%v", err)
		}
	}()

	rcfg := runnerConfig(cfg, o)
	if blog != nil {
		rcfg.OnResult = func(res runner.Result) { blog.ScenarioDone(res.Scenario, res.State, res.Phase, res.Err) }
	}
	meta := report.Meta{BaseURL: cfg.BaseURL, Revision: appRevision, Browser: cfg.Browser, Redact: baseLog.Redact}

	colors.Info().Printf("running %d scenario(s) against %s\n", len(selected), cfg.BaseURL)
	colors.Info().Printf("run log: %s\n\n", baseLog.Path())
	if o.Debug {
		printDebugInfo(baseLog, cfg, rcfg, selected)
	}

	suite := suiteRun{cfg: rcfg, log: runLog, launcher: pw, outputDir: cfg.OutputDir, meta: meta, noColor: o.NoColor}
	sum := suite.run(ctx, selected)

	if !o.Watch {
		notifier, nErr := notify.New(cfg.Notify, baseLog)
		if nErr != nil {
			baseLog.Warn("notifications disabled: %v", nErr)
		}
		notifier.Send(context.WithoutCancel(ctx), notifyResult(sum, meta, filepath.Join(cfg.OutputDir, report.FileName)))
	}

	if o.Watch {
		if err := watchScenarios(ctx, cfg.ScenariosDir, o.Names, suite); err != nil {
			return err
		}
	} else if dashboard != nil {
		dashboard.Wait(ctx)
	}

	colors.Info().Printf("\ncompleted in %s\n", baseLog.Elapsed())
	if !sum.OK() {
		return summaryError(sum)
	}
	return nil
}

// applyOverrides applies command-line overrides to the loaded config and re-validates it.
func applyOverrides(cfg *config.Config, o opts) error {
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	if o.Output != "" {
		cfg.OutputDir = o.Output
	}
	if o.Scenarios != "" {
		cfg.ScenariosDir = o.Scenarios
	}
	if o.Headed {
		cfg.Headless = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// loadScenarios reads dir, or the built-in catalog when dir is empty.
func loadScenarios(dir string) ([]scenario.Scenario, error) {
	if dir == "" {
		ss, err := scenario.Catalog()
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		return ss, nil
	}
	ss, err := scenario.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	if len(ss) == 0 {
		return nil, fmt.Errorf("no scenarios found in %s", dir)
	}
	return ss, nil
}

// runnerConfig maps the application config to the runner config.
func runnerConfig(cfg *config.Config, o opts) runner.Config {
	return runner.Config{
		BaseURL:        cfg.BaseURL,
		LoginPath:      cfg.LoginPath,
		EmailLabel:     cfg.LabelEmail,
		PasswordLabel:  cfg.LabelPassword,
		ServerLabel:    cfg.LabelServer,
		SignInButton:   cfg.SignInButton,
		DefaultTimeout: cfg.DefaultTimeout(),
		PollInterval:   cfg.PollInterval(),
		Browser:        cfg.Browser,
		Headless:       cfg.Headless && !o.Headed,
		SlowMo:         time.Duration(cfg.SlowMoMs) * time.Millisecond,
		Width:          cfg.ViewportWidth,
		Height:         cfg.ViewportHeight,
	}
}

// suiteRun runs a set of scenarios with a fresh evidence recorder and writes the report.
type suiteRun struct {
	cfg       runner.Config
	log       runner.Logger
	launcher  browser.Launcher
	outputDir string
	meta      report.Meta
	noColor   bool
}

func (s suiteRun) run(ctx context.Context, scenarios []scenario.Scenario) runner.Summary {
	meta := s.meta
	meta.Started = time.Now()
	rec := evidence.NewRecorder(s.outputDir)
	sum := runner.New(s.cfg, s.log, s.launcher, rec).RunAll(ctx, scenarios)
	if files := rec.Paths(); len(files) > 0 {
		s.log.Print("%d evidence file(s) written to %s", len(files), rec.Dir())
	}

	content := report.Build(sum, meta, s.outputDir)
	path, err := report.Write(s.outputDir, content)
	if err != nil {
		s.log.Warn("%v", err)
		return sum
	}
	if rendered, err := report.Render(content, s.noColor, 0); err == nil {
		s.log.PrintRaw("\n%s\n", rendered)
	}
	s.log.Print("report saved to %s", path)
	return sum
}

// watchScenarios re-runs the scenarios of changed files until ctx is canceled.
// when names are given, only matching scenarios of the changed files run.
func watchScenarios(ctx context.Context, dir string, names []string, suite suiteRun) error {
	lg := suite.log
	w, err := watch.New([]string{dir}, watch.Options{Log: lg})
	if err != nil {
		return err
	}
	lg.Print("watching %s for changes, press Ctrl+C to exit", dir)
	return w.Run(ctx, func(ctx context.Context, files []string) {
		changed, err := changedScenarios(files, names)
		if err != nil {
			lg.Error("%v", err)
			return
		}
		if len(changed) == 0 {
			lg.Print("no selected scenarios in changed files")
			return
		}
		suite.run(ctx, changed)
	})
}

// changedScenarios loads the changed files and keeps the scenarios matching names.
// a file removed between the event and the load is skipped.
func changedScenarios(files, names []string) ([]scenario.Scenario, error) {
	var res []scenario.Scenario
	for _, f := range files {
		ss, err := scenario.LoadFile(f)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		res = append(res, ss...)
	}
	if len(names) == 0 || len(res) == 0 {
		return res, nil
	}
	var filtered []scenario.Scenario
	for _, sc := range res {
		for _, n := range names {
			if ok, _ := filepath.Match(n, sc.Name); ok {
				filtered = append(filtered, sc)
				break
			}
		}
	}
	return filtered, nil
}

// listScenarios prints name, source and description of each scenario.
func listScenarios(w io.Writer, ss []scenario.Scenario) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, sc := range ss {
		login := ""
		if sc.Login {
			login = "login"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", sc.Name, login, sc.Source, sc.Description)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write list: %w", err)
	}
	return nil
}

// notifyResult converts the summary for the notification channels. Error text is redacted.
func notifyResult(sum runner.Summary, meta report.Meta, reportPath string) notify.Result {
	res := notify.Result{
		Status:    notify.StatusSuccess,
		BaseURL:   meta.BaseURL,
		Revision:  meta.Revision,
		Scenarios: len(sum.Results) + len(sum.NotRun),
		Passed:    sum.Passed,
		Failed:    sum.Failed,
		Skipped:   sum.Skipped,
		FailedIDs: sum.FailedNames(),
		Duration:  sum.Duration.Round(time.Second).String(),
		Report:    reportPath,
	}
	if !sum.OK() {
		res.Status = notify.StatusFailure
		if err := summaryError(sum); err != nil {
			res.Error = err.Error()
		}
		if meta.Redact != nil {
			res.Error = meta.Redact(res.Error)
		}
	}
	return res
}

// summaryError describes a run that is not OK.
func summaryError(sum runner.Summary) error {
	var parts []string
	if sum.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d scenario(s) failed: %s", sum.Failed, strings.Join(sum.FailedNames(), ", ")))
	}
	if len(sum.NotRun) > 0 {
		parts = append(parts, fmt.Sprintf("%d scenario(s) not started", len(sum.NotRun)))
	}
	if len(parts) == 0 {
		return nil
	}
	return errors.New(strings.Join(parts, "; "))
}

func printDebugInfo(lg runner.Logger, cfg *config.Config, rcfg runner.Config, ss []scenario.Scenario) {
	lg.Print("config dir: %s", cfg.ConfigDir())
	lg.Print("browser: %s headless=%t slow_mo=%s viewport=%dx%d", rcfg.Browser, rcfg.Headless, rcfg.SlowMo,
		rcfg.Width, rcfg.Height)
	lg.Print("timeouts: default=%s poll=%s", rcfg.DefaultTimeout, rcfg.PollInterval)
	for _, sc := range ss {
		lg.Print("scenario %s from %s", sc.Name, sc.Source)
	}
}
