package config

import (
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/ini.v1"
)

// Values holds scalar configuration values.
// Fields ending in *Set (e.g., HeadlessSet) track whether that field was explicitly
// set in config. This allows distinguishing explicit false/0 from "not set", enabling
// proper merge behavior where local config can override global config with zero values.
type Values struct {
	BaseURL          string
	LoginPath        string
	OutputDir        string
	ScenariosDir     string
	Browser          string
	Headless         bool
	HeadlessSet      bool // tracks if headless was explicitly set
	SlowMoMs         int
	SlowMoMsSet      bool // tracks if slow_mo_ms was explicitly set
	ViewportWidth    int
	ViewportHeight   int
	DefaultTimeoutMs int
	PollIntervalMs   int
	EnvFile          string
	AppRepo          string
	LabelEmail       string
	LabelPassword    string
	LabelServer      string
	SignInButton     string

	NotifyChannels        []string
	NotifyOnError         bool
	NotifyOnErrorSet      bool
	NotifyOnComplete      bool
	NotifyOnCompleteSet   bool
	NotifyTimeoutMs       int
	NotifyTelegramToken   string
	NotifyTelegramChat    string
	NotifySlackToken      string
	NotifySlackChannel    string
	NotifySMTPHost        string
	NotifySMTPPort        int
	NotifySMTPUsername    string
	NotifySMTPPassword    string
	NotifySMTPStartTLS    bool
	NotifySMTPStartTLSSet bool
	NotifyEmailFrom       string
	NotifyEmailTo         []string
	NotifyWebhookURLs     []string
	NotifyCustomScript    string
}

// loadValues merges values from the embedded defaults, the global and the local config.
func loadValues(fsys fs.ReadFileFS, localPath, globalPath string) (Values, error) {
	return loadLayered(fsys, localPath, globalPath, parseValues, (*Values).mergeFrom)
}

// parseValues reads the known keys of section. Unknown keys are ignored.
func parseValues(section *ini.Section) (Values, error) {
	var values Values

	strKeys := []struct {
		key   string
		field *string
	}{
		{"base_url", &values.BaseURL},
		{"login_path", &values.LoginPath},
		{"output_dir", &values.OutputDir},
		{"scenarios_dir", &values.ScenariosDir},
		{"browser", &values.Browser},
		{"env_file", &values.EnvFile},
		{"app_repo", &values.AppRepo},
		{"label_email", &values.LabelEmail},
		{"label_password", &values.LabelPassword},
		{"label_server", &values.LabelServer},
		{"sign_in_button", &values.SignInButton},
		{"notify_telegram_token", &values.NotifyTelegramToken},
		{"notify_telegram_chat", &values.NotifyTelegramChat},
		{"notify_slack_token", &values.NotifySlackToken},
		{"notify_slack_channel", &values.NotifySlackChannel},
		{"notify_smtp_host", &values.NotifySMTPHost},
		{"notify_smtp_username", &values.NotifySMTPUsername},
		{"notify_smtp_password", &values.NotifySMTPPassword},
		{"notify_email_from", &values.NotifyEmailFrom},
		{"notify_custom_script", &values.NotifyCustomScript},
	}
	for _, sk := range strKeys {
		if key, err := section.GetKey(sk.key); err == nil {
			*sk.field = strings.TrimSpace(key.String())
		}
	}

	intKeys := []struct {
		key   string
		field *int
		set   *bool
	}{
		{"slow_mo_ms", &values.SlowMoMs, &values.SlowMoMsSet},
		{"viewport_width", &values.ViewportWidth, nil},
		{"viewport_height", &values.ViewportHeight, nil},
		{"default_timeout_ms", &values.DefaultTimeoutMs, nil},
		{"poll_interval_ms", &values.PollIntervalMs, nil},
		{"notify_timeout_ms", &values.NotifyTimeoutMs, nil},
		{"notify_smtp_port", &values.NotifySMTPPort, nil},
	}
	for _, ik := range intKeys {
		key, err := section.GetKey(ik.key)
		if err != nil || strings.TrimSpace(key.String()) == "" {
			continue
		}
		val, intErr := key.Int()
		if intErr != nil {
			return Values{}, fmt.Errorf("invalid %s: %w", ik.key, intErr)
		}
		if val < 0 {
			return Values{}, fmt.Errorf("invalid %s: must be non-negative, got %d", ik.key, val)
		}
		*ik.field = val
		if ik.set != nil {
			*ik.set = true
		}
	}

	boolKeys := []struct {
		key   string
		field *bool
		set   *bool
	}{
		{"headless", &values.Headless, &values.HeadlessSet},
		{"notify_on_error", &values.NotifyOnError, &values.NotifyOnErrorSet},
		{"notify_on_complete", &values.NotifyOnComplete, &values.NotifyOnCompleteSet},
		{"notify_smtp_starttls", &values.NotifySMTPStartTLS, &values.NotifySMTPStartTLSSet},
	}
	for _, bk := range boolKeys {
		key, err := section.GetKey(bk.key)
		if err != nil || strings.TrimSpace(key.String()) == "" {
			continue
		}
		val, boolErr := key.Bool()
		if boolErr != nil {
			return Values{}, fmt.Errorf("invalid %s: %w", bk.key, boolErr)
		}
		*bk.field = val
		*bk.set = true
	}

	// comma-separated lists
	listKeys := []struct {
		key   string
		field *[]string
	}{
		{"notify_channels", &values.NotifyChannels},
		{"notify_email_to", &values.NotifyEmailTo},
		{"notify_webhook_urls", &values.NotifyWebhookURLs},
	}
	for _, lk := range listKeys {
		if key, err := section.GetKey(lk.key); err == nil {
			*lk.field = splitList(key.String())
		}
	}

	return values, nil
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(val string) []string {
	var res []string
	for p := range strings.SplitSeq(strings.TrimSpace(val), ",") {
		if t := strings.TrimSpace(p); t != "" {
			res = append(res, t)
		}
	}
	return res
}

// mergeFrom merges non-empty values from src into dst.
func (dst *Values) mergeFrom(src *Values) {
	mergeStr := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}
	mergeInt := func(d *int, s int) {
		if s != 0 {
			*d = s
		}
	}
	mergeList := func(d *[]string, s []string) {
		if len(s) > 0 {
			*d = s
		}
	}

	mergeStr(&dst.BaseURL, src.BaseURL)
	mergeStr(&dst.LoginPath, src.LoginPath)
	mergeStr(&dst.OutputDir, src.OutputDir)
	mergeStr(&dst.ScenariosDir, src.ScenariosDir)
	mergeStr(&dst.Browser, src.Browser)
	mergeStr(&dst.EnvFile, src.EnvFile)
	mergeStr(&dst.AppRepo, src.AppRepo)
	mergeStr(&dst.LabelEmail, src.LabelEmail)
	mergeStr(&dst.LabelPassword, src.LabelPassword)
	mergeStr(&dst.LabelServer, src.LabelServer)
	mergeStr(&dst.SignInButton, src.SignInButton)
	mergeStr(&dst.NotifyTelegramToken, src.NotifyTelegramToken)
	mergeStr(&dst.NotifyTelegramChat, src.NotifyTelegramChat)
	mergeStr(&dst.NotifySlackToken, src.NotifySlackToken)
	mergeStr(&dst.NotifySlackChannel, src.NotifySlackChannel)
	mergeStr(&dst.NotifySMTPHost, src.NotifySMTPHost)
	mergeStr(&dst.NotifySMTPUsername, src.NotifySMTPUsername)
	mergeStr(&dst.NotifySMTPPassword, src.NotifySMTPPassword)
	mergeStr(&dst.NotifyEmailFrom, src.NotifyEmailFrom)
	mergeStr(&dst.NotifyCustomScript, src.NotifyCustomScript)

	mergeInt(&dst.ViewportWidth, src.ViewportWidth)
	mergeInt(&dst.ViewportHeight, src.ViewportHeight)
	mergeInt(&dst.DefaultTimeoutMs, src.DefaultTimeoutMs)
	mergeInt(&dst.PollIntervalMs, src.PollIntervalMs)
	mergeInt(&dst.NotifyTimeoutMs, src.NotifyTimeoutMs)
	mergeInt(&dst.NotifySMTPPort, src.NotifySMTPPort)

	if src.SlowMoMsSet {
		dst.SlowMoMs = src.SlowMoMs
		dst.SlowMoMsSet = true
	}
	if src.HeadlessSet {
		dst.Headless = src.Headless
		dst.HeadlessSet = true
	}
	if src.NotifyOnErrorSet {
		dst.NotifyOnError = src.NotifyOnError
		dst.NotifyOnErrorSet = true
	}
	if src.NotifyOnCompleteSet {
		dst.NotifyOnComplete = src.NotifyOnComplete
		dst.NotifyOnCompleteSet = true
	}
	if src.NotifySMTPStartTLSSet {
		dst.NotifySMTPStartTLS = src.NotifySMTPStartTLS
		dst.NotifySMTPStartTLSSet = true
	}

	mergeList(&dst.NotifyChannels, src.NotifyChannels)
	mergeList(&dst.NotifyEmailTo, src.NotifyEmailTo)
	mergeList(&dst.NotifyWebhookURLs, src.NotifyWebhookURLs)
}
