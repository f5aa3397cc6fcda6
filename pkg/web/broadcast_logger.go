package web

import (
	"fmt"
	"log"
	"strings"

	"github.com/umputun/uicheck/pkg/status"
)

//go:generate moq -out mocks/logger.go -pkg mocks -skip-ensure -fmt goimports . Logger

// Logger is the logger wrapped by BroadcastLogger, satisfied by progress.Logger.
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

// Publisher receives events for live streaming and replay.
type Publisher interface {
	Publish(e Event) error
}

// BroadcastLogger wraps a Logger and broadcasts events to SSE clients.
// all calls are forwarded to the inner logger, the text is redacted by the inner logger
// before it is converted to an event, so secrets never reach the browser.
//
// BroadcastLogger is goroutine-safe: browser console callbacks print from the engine goroutine.
type BroadcastLogger struct {
	inner Logger
	pub   Publisher
	cur   status.Tracker // running scenario and phase
}

// NewBroadcastLogger creates a logger that wraps inner and broadcasts to pub.
func NewBroadcastLogger(inner Logger, pub Publisher) *BroadcastLogger {
	b := &BroadcastLogger{inner: inner, pub: pub}
	b.cur.SetPhase(status.PhaseBootstrap)
	return b
}

// SetPhase sets the current execution phase.
func (b *BroadcastLogger) SetPhase(phase status.Phase) {
	b.cur.SetPhase(phase)
	b.inner.SetPhase(phase)
}

// Print writes a timestamped message and broadcasts it.
func (b *BroadcastLogger) Print(format string, args ...any) {
	b.inner.Print(format, args...)
	b.emit(NewOutputEvent, formatText(format, args...))
}

// PrintRaw writes without timestamp and broadcasts it.
func (b *BroadcastLogger) PrintRaw(format string, args ...any) {
	b.inner.PrintRaw(format, args...)
	b.emit(NewOutputEvent, strings.TrimRight(formatText(format, args...), "\n"))
}

// Warn writes a warning and broadcasts it.
func (b *BroadcastLogger) Warn(format string, args ...any) {
	b.inner.Warn(format, args...)
	b.emit(NewWarnEvent, formatText(format, args...))
}

// Error writes an error and broadcasts it.
func (b *BroadcastLogger) Error(format string, args ...any) {
	b.inner.Error(format, args...)
	b.emit(NewErrorEvent, formatText(format, args...))
}

// AddSecret registers a value to mask in the log and in broadcast events.
func (b *BroadcastLogger) AddSecret(secret string) {
	b.inner.AddSecret(secret)
}

// Redact masks registered secrets in s.
func (b *BroadcastLogger) Redact(s string) string {
	return b.inner.Redact(s)
}

// PrintSection writes a section header and broadcasts it.
// scenario sections emit a scenario_start event, the summary section emits a summary event.
func (b *BroadcastLogger) PrintSection(section status.Section) {
	b.inner.PrintSection(section)

	switch section.Type {
	case status.SectionScenario:
		b.cur.Begin(section.Name)
		b.broadcast(NewScenarioStartEvent(section.Index, section.Name, section.Label))
	case status.SectionSummary:
		b.cur.Reset()
		b.broadcast(NewSummaryEvent(section.Label))
		return
	case status.SectionGeneric:
		// plain header, no boundary event
	}

	b.emit(NewSectionEvent, section.Label)
}

// ScenarioDone broadcasts the end of the named scenario with its final state.
func (b *BroadcastLogger) ScenarioDone(name string, state status.State, phase status.Phase, err error) {
	text := fmt.Sprintf("%s %s", name, state)
	if err != nil {
		text = fmt.Sprintf("%s: %v", text, err)
	}
	b.cur.End(name)
	b.broadcast(NewScenarioEndEvent(phase, name, state, b.inner.Redact(text)))
}

// emit builds an event for the current phase and scenario, redacting text first.
func (b *BroadcastLogger) emit(mk func(phase status.Phase, scenario, text string) Event, text string) {
	sc, phase := b.cur.Current()
	b.broadcast(mk(phase, sc, b.inner.Redact(text)))
}

// broadcast sends an event for live streaming and replay.
// errors are logged but not propagated since logging is the primary operation.
func (b *BroadcastLogger) broadcast(e Event) {
	if err := b.pub.Publish(e); err != nil {
		log.Printf("[WARN] failed to broadcast event: %v", err)
	}
}

// formatText formats a string with args, like fmt.Sprintf.
func formatText(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
