package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadValues_EmbeddedOnly(t *testing.T) {
	values, err := loadValues(defaultsFS, "", "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5173", values.BaseURL)
	assert.Equal(t, "/login", values.LoginPath)
	assert.Equal(t, "verification", values.OutputDir)
	assert.Empty(t, values.ScenariosDir)
	assert.Equal(t, "chromium", values.Browser)
	assert.True(t, values.Headless)
	assert.True(t, values.HeadlessSet)
	assert.Equal(t, 0, values.SlowMoMs)
	assert.True(t, values.SlowMoMsSet)
	assert.Equal(t, 1280, values.ViewportWidth)
	assert.Equal(t, 720, values.ViewportHeight)
	assert.Equal(t, 10000, values.DefaultTimeoutMs)
	assert.Equal(t, 100, values.PollIntervalMs)
	assert.Equal(t, ".env", values.EnvFile)
	assert.Equal(t, "Email Address", values.LabelEmail)
	assert.Equal(t, "Password", values.LabelPassword)
	assert.Equal(t, "Server", values.LabelServer)
	assert.Equal(t, "Sign In|Masuk", values.SignInButton)
	assert.Empty(t, values.NotifyChannels)
	assert.True(t, values.NotifyOnError)
	assert.False(t, values.NotifyOnComplete)
	assert.True(t, values.NotifyOnCompleteSet)
	assert.Equal(t, 10000, values.NotifyTimeoutMs)
}

func TestLoadValues_LocalOverridesGlobal(t *testing.T) {
	tmpDir := t.TempDir()
	globalConfig := filepath.Join(tmpDir, "global-config")
	localConfig := filepath.Join(tmpDir, "local-config")

	globalContent := `
base_url = http://global:8080
output_dir = global-shots
headless = false
default_timeout_ms = 20000
`
	require.NoError(t, os.WriteFile(globalConfig, []byte(globalContent), 0o600))

	localContent := `
base_url = http://local:5173
headless = true
`
	require.NoError(t, os.WriteFile(localConfig, []byte(localContent), 0o600))

	values, err := loadValues(defaultsFS, localConfig, globalConfig)
	require.NoError(t, err)

	assert.Equal(t, "http://local:5173", values.BaseURL, "local wins")
	assert.True(t, values.Headless, "explicit local true overrides global false")
	assert.Equal(t, "global-shots", values.OutputDir, "global kept when local is silent")
	assert.Equal(t, 20000, values.DefaultTimeoutMs)
	assert.Equal(t, "chromium", values.Browser, "embedded default kept")
}

func TestLoadValues_ExplicitFalseHeadless(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(configPath, []byte("headless = false\n"), 0o600))

	values, err := loadValues(defaultsFS, "", configPath)
	require.NoError(t, err)
	assert.False(t, values.Headless)
	assert.True(t, values.HeadlessSet)
}

func TestLoadValues_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		errPart string
	}{
		{name: "bad int", config: "default_timeout_ms = soon", errPart: "invalid default_timeout_ms"},
		{name: "negative int", config: "poll_interval_ms = -5", errPart: "must be non-negative"},
		{name: "bad bool", config: "headless = maybe", errPart: "invalid headless"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config")
			require.NoError(t, os.WriteFile(configPath, []byte(tc.config), 0o600))

			_, err := loadValues(defaultsFS, "", configPath)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}
}

func TestLoadValues_AllCommentedConfigFallsBackToEmbedded(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config")
	content := "# base_url = http://nowhere\n\n   # output_dir = x\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	values, err := loadValues(defaultsFS, "", configPath)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173", values.BaseURL)
	assert.Equal(t, "verification", values.OutputDir)
}

func TestParseValues_NotifyFields(t *testing.T) {
	data := []byte(`
notify_channels = telegram, webhook ,
notify_on_error = false
notify_on_complete = true
notify_telegram_token = tok
notify_telegram_chat = 42
notify_smtp_port = 587
notify_smtp_starttls = true
notify_email_to = a@example.com,b@example.com
notify_webhook_urls = https://example.com/hook
notify_custom_script = /usr/local/bin/notify.sh
`)
	values, err := parseLayer(data, parseValues)
	require.NoError(t, err)

	assert.Equal(t, []string{"telegram", "webhook"}, values.NotifyChannels)
	assert.False(t, values.NotifyOnError)
	assert.True(t, values.NotifyOnErrorSet)
	assert.True(t, values.NotifyOnComplete)
	assert.Equal(t, "tok", values.NotifyTelegramToken)
	assert.Equal(t, "42", values.NotifyTelegramChat)
	assert.Equal(t, 587, values.NotifySMTPPort)
	assert.True(t, values.NotifySMTPStartTLS)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, values.NotifyEmailTo)
	assert.Equal(t, []string{"https://example.com/hook"}, values.NotifyWebhookURLs)
	assert.Equal(t, "/usr/local/bin/notify.sh", values.NotifyCustomScript)
}

func TestValues_mergeFrom(t *testing.T) {
	dst := Values{BaseURL: "http://a", OutputDir: "out", Headless: true, HeadlessSet: true, ViewportWidth: 1280}
	src := Values{BaseURL: "http://b", Headless: false, HeadlessSet: true, NotifyChannels: []string{"slack"}}
	dst.mergeFrom(&src)

	assert.Equal(t, "http://b", dst.BaseURL)
	assert.Equal(t, "out", dst.OutputDir)
	assert.False(t, dst.Headless)
	assert.Equal(t, 1280, dst.ViewportWidth)
	assert.Equal(t, []string{"slack"}, dst.NotifyChannels)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList(" , ,"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a, b ,"))
}
