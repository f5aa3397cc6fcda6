// Package notify sends run outcome notifications through configured channels.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"strings"
	"time"
)

// result statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Params holds configuration for creating a notification Service.
type Params struct {
	Channels      []string
	OnError       bool
	OnComplete    bool
	TimeoutMs     int
	TelegramToken string
	TelegramChat  string
	SlackToken    string
	SlackChannel  string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPStartTLS  bool
	EmailFrom     string
	EmailTo       []string
	WebhookURLs   []string
	CustomScript  string
}

// Service sends run summaries to every configured channel.
type Service struct {
	channels   []channel
	custom     *customChannel
	onError    bool
	onComplete bool
	timeout    time.Duration
	hostname   string
	log        logger
}

type logger interface {
	Print(format string, args ...any)
}

// Result describes a finished suite run.
type Result struct {
	Status    string   `json:"status"` // success or failure
	BaseURL   string   `json:"base_url"`
	Revision  string   `json:"revision,omitempty"`
	Scenarios int      `json:"scenarios"`
	Passed    int      `json:"passed"`
	Failed    int      `json:"failed"`
	Skipped   int      `json:"skipped"`
	FailedIDs []string `json:"failed_scenarios,omitempty"`
	Duration  string   `json:"duration"`
	Report    string   `json:"report,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// New creates a notification Service. It returns nil, nil when no channels are configured;
// Send is nil-safe so callers don't need to check.
func New(p Params, log logger) (*Service, error) {
	if len(p.Channels) == 0 {
		return nil, nil //nolint:nilnil // nil service means notifications are off
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	svc := &Service{
		onError:    p.OnError,
		onComplete: p.OnComplete,
		timeout:    time.Duration(p.TimeoutMs) * time.Millisecond,
		hostname:   hostname,
		log:        log,
	}
	if svc.timeout <= 0 {
		svc.timeout = 10 * time.Second
	}

	for _, name := range p.Channels {
		if err := svc.addChannel(strings.TrimSpace(strings.ToLower(name)), p); err != nil {
			return nil, err
		}
	}

	if len(svc.channels) == 0 && svc.custom == nil {
		log.Print("[WARN] all notification channels were disabled due to initialization errors")
	}
	return svc, nil
}

func (s *Service) addChannel(name string, p Params) error {
	switch name {
	case "telegram":
		if p.TelegramToken == "" {
			return errors.New("telegram channel: notify_telegram_token is required")
		}
		if p.TelegramChat == "" {
			return errors.New("telegram channel: notify_telegram_chat is required")
		}
		c, err := telegramChannelMaker(p)
		if err != nil {
			// the bot token check is a live api call; an unreachable api disables the channel only
			msg := strings.ReplaceAll(err.Error(), p.TelegramToken, "[REDACTED]")
			s.log.Print("[WARN] telegram channel disabled: %s", msg)
			return nil
		}
		s.channels = append(s.channels, c)
	case "email":
		c, err := makeEmailChannel(p)
		if err != nil {
			return fmt.Errorf("email channel: %w", err)
		}
		s.channels = append(s.channels, c)
	case "slack":
		c, err := makeSlackChannel(p)
		if err != nil {
			return fmt.Errorf("slack channel: %w", err)
		}
		s.channels = append(s.channels, c)
	case "webhook":
		chs, err := makeWebhookChannels(p)
		if err != nil {
			return fmt.Errorf("webhook channel: %w", err)
		}
		s.channels = append(s.channels, chs...)
	case "custom":
		if p.CustomScript == "" {
			return errors.New("custom channel: notify_custom_script is required")
		}
		s.custom = newCustomChannel(p.CustomScript)
	default:
		return fmt.Errorf("unknown notification channel: %q", name)
	}
	return nil
}

// Send delivers r to all channels, honoring the on_error/on_complete filters.
// Failures are logged, never returned.
func (s *Service) Send(ctx context.Context, r Result) {
	if s == nil {
		return
	}
	if r.Status == StatusSuccess && !s.onComplete {
		return
	}
	if r.Status == StatusFailure && !s.onError {
		return
	}

	msg := s.formatMessage(r)
	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	for _, ch := range s.channels {
		text := msg
		if ch.htmlEscape {
			text = html.EscapeString(msg)
		}
		if err := ch.notifier.Send(sendCtx, ch.dest, text); err != nil {
			s.log.Print("[WARN] notification failed for %s: %v", ch.notifier, err)
		}
	}

	if s.custom != nil {
		if err := s.custom.send(sendCtx, r); err != nil {
			s.log.Print("[WARN] custom notification failed: %v", err)
		}
	}
}

// formatMessage renders r as plain text.
func (s *Service) formatMessage(r Result) string {
	var b strings.Builder

	if r.Status == StatusSuccess {
		fmt.Fprintf(&b, "uicheck passed on %s\n\n", s.hostname)
	} else {
		fmt.Fprintf(&b, "uicheck failed on %s\n\n", s.hostname)
	}

	if r.BaseURL != "" {
		fmt.Fprintf(&b, "target:    %s\n", r.BaseURL)
	}
	if r.Revision != "" {
		fmt.Fprintf(&b, "revision:  %s\n", r.Revision)
	}
	fmt.Fprintf(&b, "scenarios: %d (%d passed, %d failed, %d skipped)\n", r.Scenarios, r.Passed, r.Failed, r.Skipped)
	if len(r.FailedIDs) > 0 {
		fmt.Fprintf(&b, "failed:    %s\n", strings.Join(r.FailedIDs, ", "))
	}
	if r.Duration != "" {
		fmt.Fprintf(&b, "duration:  %s\n", r.Duration)
	}
	if r.Report != "" {
		fmt.Fprintf(&b, "report:    %s\n", r.Report)
	}
	if r.Error != "" {
		fmt.Fprintf(&b, "error:     %s\n", r.Error)
	}
	return b.String()
}
