// Package web serves the live run dashboard: every log line of a run is turned into an event,
// kept in a ring buffer for late joiners and streamed to browsers over server-sent events.
package web

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/umputun/uicheck/pkg/status"
)

// EventType represents the type of event being streamed.
type EventType string

// event type constants for SSE streaming.
const (
	EventTypeOutput        EventType = "output"         // regular output line
	EventTypeSection       EventType = "section"        // section header
	EventTypeError         EventType = "error"          // error message
	EventTypeWarn          EventType = "warn"           // warning message
	EventTypeScenarioStart EventType = "scenario_start" // scenario boundary: start
	EventTypeScenarioEnd   EventType = "scenario_end"   // scenario boundary: end with state
	EventTypeSummary       EventType = "summary"        // run finished
)

// Event represents a single event to be streamed to web clients.
type Event struct {
	Type      EventType    `json:"type"`
	Phase     status.Phase `json:"phase"`
	Scenario  string       `json:"scenario,omitempty"`
	Index     int          `json:"index,omitempty"` // 1-based scenario position in the run
	State     status.State `json:"state,omitempty"`
	Text      string       `json:"text"`
	Timestamp time.Time    `json:"timestamp"`
}

func newEvent(typ EventType, phase status.Phase, scenario, text string) Event {
	return Event{Type: typ, Phase: phase, Scenario: scenario, Text: text, Timestamp: time.Now()}
}

// NewOutputEvent creates an output event with current timestamp.
func NewOutputEvent(phase status.Phase, scenario, text string) Event {
	return newEvent(EventTypeOutput, phase, scenario, text)
}

// NewSectionEvent creates a section header event.
func NewSectionEvent(phase status.Phase, scenario, label string) Event {
	return newEvent(EventTypeSection, phase, scenario, label)
}

// NewErrorEvent creates an error event.
func NewErrorEvent(phase status.Phase, scenario, text string) Event {
	return newEvent(EventTypeError, phase, scenario, text)
}

// NewWarnEvent creates a warning event.
func NewWarnEvent(phase status.Phase, scenario, text string) Event {
	return newEvent(EventTypeWarn, phase, scenario, text)
}

// NewScenarioStartEvent marks the start of the scenario at position index.
func NewScenarioStartEvent(index int, scenario, label string) Event {
	e := newEvent(EventTypeScenarioStart, status.PhaseBootstrap, scenario, label)
	e.Index = index
	e.State = status.StateRunning
	return e
}

// NewScenarioEndEvent marks the end of a scenario with its final state.
func NewScenarioEndEvent(phase status.Phase, scenario string, state status.State, text string) Event {
	e := newEvent(EventTypeScenarioEnd, phase, scenario, text)
	e.State = state
	return e
}

// NewSummaryEvent closes the run.
func NewSummaryEvent(text string) Event {
	return newEvent(EventTypeSummary, "", "", text)
}

// JSON returns the event as JSON bytes for SSE streaming.
func (e Event) JSON() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}
