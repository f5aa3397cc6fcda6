//go:build e2e

package e2e

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/uicheck/pkg/runner"
	"github.com/umputun/uicheck/pkg/status"
)

func TestLoginAndTabs(t *testing.T) {
	res, log, dir := runScenario(t, `
name: dashboard-tabs
url: /login
login: true
console: stream
steps:
  - action: wait_url
    value: /devices
  - action: navigate
    value: /devices/${DEVICE_ID}/dashboard
  - action: wait_load
    value: domcontentloaded
  - action: click
    target: {role: tab, name: Control}
  - action: expect
    expect:
      target: {css: "#panel-title"}
      condition: has_text
      value: Control
  - action: capture
    value: dashboard-control
  - name: websocket status turns live
    action: expect
    expect:
      target: {css: "#status"}
      condition: has_text
      value: live
assertions:
  - condition: url_matches
    value: /devices/7/dashboard$
  - target: {test_id: quotes-container}
    condition: geometry
    width: 500
  - target: {css: ".chart .point"}
    condition: min_count
    count: 3
  - target: {css: footer}
    condition: visible
`, env(false, map[string]string{"DEVICE_ID": "7"}))

	require.NoError(t, res.Err)
	assert.Equal(t, status.StatePassed, res.State)
	require.Len(t, res.Captures, 1)
	assert.FileExists(t, filepath.Join(dir, "dashboard-control.png"))

	text := log.text()
	assert.Contains(t, text, "[console] log: dashboard ready")
	assert.NotContains(t, text, testPassword)
	assert.NotContains(t, text, testEmail)
}

func TestLoginToast(t *testing.T) {
	res, _, dir := runScenario(t, `
name: login-toast
url: /login
credentials: optional
steps:
  - action: fill
    target: {label: Email Address}
    value: wrong@user.com
  - action: fill
    target: {label: Password}
    value: wrongpassword
  - action: click
    target: {role: button, name_regex: "Sign In|Masuk"}
  - action: expect
    expect:
      target: {css: .toast-error}
      condition: matches_regex
      value: FAILED
      ignore_case: true
  - action: capture
    value: login-toast-failed.png
  - name: toast goes away
    action: expect
    expect:
      target: {css: .toast-error}
      condition: hidden
      timeout: 3s
`, env(true, nil))

	require.NoError(t, res.Err)
	assert.Equal(t, status.StatePassed, res.State)
	assert.FileExists(t, filepath.Join(dir, "login-toast-failed.png"))
}

func TestMissingCredentials(t *testing.T) {
	res, _, dir := runScenario(t, `
name: needs-login
url: /devices
login: true
steps:
  - action: capture
    value: devices
`, env(true, nil))

	assert.Equal(t, status.StateFailed, res.State)
	var cfgErr *runner.ConfigError
	require.ErrorAs(t, res.Err, &cfgErr)
	assert.Contains(t, res.Err.Error(), "EMAIL")
	_, err := os.Stat(dir)
	assert.True(t, errors.Is(err, os.ErrNotExist), "nothing written before the browser starts")
}

func TestAssertionFailureEvidence(t *testing.T) {
	res, _, dir := runScenario(t, `
name: broken
url: /login
on_failure:
  content: true
assertions:
  - target: {css: "#does-not-exist"}
    condition: visible
    timeout: 300ms
`, env(true, nil))

	assert.Equal(t, status.StateFailed, res.State)
	var assertErr *runner.AssertionError
	require.ErrorAs(t, res.Err, &assertErr)
	assert.Equal(t, "no matching element", assertErr.Observed)
	assert.FileExists(t, filepath.Join(dir, "broken-error.png"))
	assert.FileExists(t, filepath.Join(dir, "broken-content.html"))
	assert.Len(t, res.Artifacts, 2)
}

func TestPreferenceSurvivesReload(t *testing.T) {
	res, _, _ := runScenario(t, `
name: language-persisted
url: /login
login: true
steps:
  - action: wait_url
    value: /devices
  - action: click
    target: {text: Device 1}
  - action: wait_url
    value: .*/devices/1/dashboard$
    regex: true
  - action: click
    target: {test_id: language-switcher}
  - action: expect
    expect:
      target: {test_id: language-switcher}
      condition: has_text
      value: EN
  - action: reload
  - action: wait_load
  - action: viewport
    width: 375
    height: 812
  - action: capture
    value: language-mobile
assertions:
  - target: {test_id: language-switcher}
    condition: has_text
    value: EN
  - target: {role: tab}
    condition: count
    count: 4
`, env(false, nil))

	require.NoError(t, res.Err)
	assert.Equal(t, status.StatePassed, res.State)
}

func TestRequireEnvSkips(t *testing.T) {
	res, log, _ := runScenario(t, `
name: gated
url: /login
steps:
  - action: require_env
    vars: [DEVICE_TOKEN]
  - action: capture
    value: never
`, env(true, nil))

	assert.Equal(t, status.StateSkipped, res.State)
	assert.Empty(t, res.Captures)
	assert.Contains(t, log.text(), "DEVICE_TOKEN")
}
