//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/uicheck/pkg/browser"
	"github.com/umputun/uicheck/pkg/runner"
	"github.com/umputun/uicheck/pkg/scenario"
	"github.com/umputun/uicheck/pkg/web"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestDashboardStreamsRun(t *testing.T) {
	port := freePort(t)
	base := &memLogger{}
	ctx, cancel := context.WithTimeout(t.Context(), time.Minute)
	defer cancel()

	d := web.NewDashboard(web.DashboardConfig{BaseLog: base, Port: port, Title: app.URL})
	blog, err := d.Start(ctx)
	require.NoError(t, err)

	r, _ := newRunner(t, env(false, nil), blog)
	sum := r.RunAll(ctx, []scenario.Scenario{
		parse(t, "name: devices\nurl: /login\nlogin: true\nsteps:\n  - action: wait_url\n    value: /devices\n"),
		parse(t, "name: broken\nurl: /login\nassertions:\n  - target: {css: '#nope'}\n    condition: visible\n    timeout: 200ms\n"),
	})
	require.Equal(t, 1, sum.Passed)
	require.Equal(t, 1, sum.Failed)
	for _, res := range sum.Results {
		blog.ScenarioDone(res.Scenario, res.State, res.Phase, res.Err)
	}

	dashURL := fmt.Sprintf("http://localhost:%d", port)
	resp, err := http.Get(dashURL + "/api/events")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Contains(t, string(body), `"scenario_start"`)
	assert.Contains(t, string(body), `"summary"`)
	assert.NotContains(t, string(body), testPassword, "credentials never reach the dashboard")

	// render the dashboard itself in the browser and wait for the replayed scenario list
	sess, err := pw.Launch(ctx, browser.LaunchOptions{Browser: "chromium", Headless: !headful, Width: 1280, Height: 720})
	require.NoError(t, err)
	defer func() { _ = sess.Close() }()
	page := sess.Page()
	require.NoError(t, page.Goto(dashURL+"/", 5*time.Second))

	_, err = runner.Wait(ctx, 5*time.Second, pollInterval, func() (bool, string, error) {
		passed, err := page.Inspect(scenario.Target{CSS: "#scenarios .passed"})
		if err != nil {
			return false, "", err
		}
		failed, err := page.Inspect(scenario.Target{CSS: "#scenarios .failed"})
		if err != nil {
			return false, "", err
		}
		return passed.Count == 1 && failed.Count == 1, fmt.Sprintf("passed=%d failed=%d", passed.Count, failed.Count), nil
	})
	require.NoError(t, err)

	summary, err := page.Inspect(scenario.Target{CSS: "#state"})
	require.NoError(t, err)
	assert.Contains(t, summary.Text, "1 passed, 1 failed")
}
