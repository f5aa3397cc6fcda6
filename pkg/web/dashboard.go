package web

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/umputun/uicheck/pkg/progress"
)

// serverStartupTimeout is the time to wait for server startup before assuming success.
const serverStartupTimeout = 100 * time.Millisecond

// DashboardConfig holds configuration for dashboard initialization.
type DashboardConfig struct {
	BaseLog   Logger           // base progress logger
	Port      int              // web server port
	Title     string           // header text, usually the target base url
	Revision  string           // application revision, optional
	OutputDir string           // evidence directory served under /screenshots/
	Colors    *progress.Colors // colors for output
}

// Dashboard runs the web server streaming a run to browsers.
type Dashboard struct {
	cfg DashboardConfig
	srv *Server
}

// NewDashboard creates a new dashboard with the given configuration.
func NewDashboard(cfg DashboardConfig) *Dashboard {
	return &Dashboard{cfg: cfg}
}

// Start creates the web server and broadcast logger, starting the server in background.
// returns the broadcast logger to use for the run, or error if server fails to start.
// the server stops when ctx is canceled.
func (d *Dashboard) Start(ctx context.Context) (*BroadcastLogger, error) {
	d.srv = NewServer(ServerConfig{
		Port:      d.cfg.Port,
		Title:     d.cfg.Title,
		Revision:  d.cfg.Revision,
		OutputDir: d.cfg.OutputDir,
	})
	broadcastLog := NewBroadcastLogger(d.cfg.BaseLog, d.srv)

	srvErrCh, err := startServerAsync(ctx, d.srv, d.cfg.Port)
	if err != nil {
		return nil, err
	}

	// late server errors are reported but don't fail the run, the dashboard is supplementary
	go func() {
		if srvErr := <-srvErrCh; srvErr != nil {
			fmt.Fprintf(os.Stderr, "warning: web server error during run: %v\n", srvErr)
		}
	}()

	if d.cfg.Colors != nil {
		d.cfg.Colors.Info().Printf("web dashboard: http://localhost:%d\n", d.cfg.Port)
	}
	return broadcastLog, nil
}

// Wait keeps the dashboard up after the run until ctx is canceled, so the results stay browsable.
func (d *Dashboard) Wait(ctx context.Context) {
	if d.srv == nil {
		return
	}
	if d.cfg.Colors != nil {
		d.cfg.Colors.Info().Printf("run finished, dashboard stays at http://localhost:%d, press Ctrl+C to exit\n", d.cfg.Port)
	}
	<-ctx.Done()
}

// startServerAsync starts a web server in the background and waits briefly for startup errors.
// returns the error channel for monitoring late errors, or an error if startup fails.
func startServerAsync(ctx context.Context, srv *Server, port int) (chan error, error) {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	// wait briefly for startup errors
	select {
	case err := <-errCh:
		if err != nil {
			return nil, fmt.Errorf("web server failed to start on port %d: %w", port, err)
		}
	case <-time.After(serverStartupTimeout):
		// server started successfully
	}

	return errCh, nil
}
