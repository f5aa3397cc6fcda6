// Package config loads uicheck configuration: INI values with embedded defaults,
// terminal colors and login credentials from the environment.
package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/umputun/uicheck/pkg/notify"
)

//go:embed defaults
var defaultsFS embed.FS

// DefaultsFS returns the embedded defaults filesystem.
func DefaultsFS() embed.FS {
	return defaultsFS
}

// localConfigDir is the per-project config directory, relative to the working directory.
const localConfigDir = ".uicheck"

// Config is the fully merged application configuration.
type Config struct {
	Values
	Colors ColorConfig
	Notify notify.Params

	configDir string // global config directory in use
}

// Load installs defaults into configDir (if needed) and loads the merged configuration.
// empty configDir uses ~/.config/uicheck.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	if err := newDefaultsInstaller(defaultsFS).Install(configDir); err != nil {
		return nil, fmt.Errorf("install defaults: %w", err)
	}

	globalPath := filepath.Join(configDir, "config")
	localPath := filepath.Join(localConfigDir, "config")

	values, err := loadValues(defaultsFS, localPath, globalPath)
	if err != nil {
		return nil, fmt.Errorf("load values: %w", err)
	}

	colors, err := loadColors(defaultsFS, localPath, globalPath)
	if err != nil {
		return nil, fmt.Errorf("load colors: %w", err)
	}

	cfg := &Config{Values: values, Colors: colors, configDir: configDir}
	cfg.Notify = notify.Params{
		Channels:      values.NotifyChannels,
		OnError:       values.NotifyOnError,
		OnComplete:    values.NotifyOnComplete,
		TimeoutMs:     values.NotifyTimeoutMs,
		TelegramToken: values.NotifyTelegramToken,
		TelegramChat:  values.NotifyTelegramChat,
		SlackToken:    values.NotifySlackToken,
		SlackChannel:  values.NotifySlackChannel,
		SMTPHost:      values.NotifySMTPHost,
		SMTPPort:      values.NotifySMTPPort,
		SMTPUsername:  values.NotifySMTPUsername,
		SMTPPassword:  values.NotifySMTPPassword,
		SMTPStartTLS:  values.NotifySMTPStartTLS,
		EmailFrom:     values.NotifyEmailFrom,
		EmailTo:       values.NotifyEmailTo,
		WebhookURLs:   values.NotifyWebhookURLs,
		CustomScript:  values.NotifyCustomScript,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns ~/.config/uicheck, honoring XDG_CONFIG_HOME.
func DefaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "uicheck"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "uicheck"), nil
}

// ConfigDir returns the global config directory in use.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url must start with http:// or https://, got %q", c.BaseURL)
	}
	switch c.Browser {
	case "chromium", "firefox", "webkit":
	default:
		return fmt.Errorf("unknown browser %q, expected chromium, firefox or webkit", c.Browser)
	}
	if c.OutputDir == "" {
		return errors.New("output_dir is required")
	}
	return nil
}

// DefaultTimeout returns the per-step timeout used when a scenario declares none.
func (c *Config) DefaultTimeout() time.Duration {
	return time.Duration(c.DefaultTimeoutMs) * time.Millisecond
}

// PollInterval returns how often assertions re-check their condition.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// stripComments removes lines starting with # (comment lines) from content.
// handles both Unix (LF) and Windows (CRLF) line endings.
func stripComments(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := make([]string, 0, strings.Count(content, "\n")+1)
	for line := range strings.SplitSeq(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
