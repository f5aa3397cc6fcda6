package web

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/uicheck/pkg/status"
	"github.com/umputun/uicheck/pkg/web/mocks"
)

type recPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *recPublisher) Publish(e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recPublisher) all() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

func newMockLogger() *mocks.LoggerMock {
	return &mocks.LoggerMock{
		SetPhaseFunc:     func(status.Phase) {},
		PrintFunc:        func(string, ...any) {},
		PrintRawFunc:     func(string, ...any) {},
		PrintSectionFunc: func(status.Section) {},
		WarnFunc:         func(string, ...any) {},
		ErrorFunc:        func(string, ...any) {},
		AddSecretFunc:    func(string) {},
		RedactFunc:       func(s string) string { return strings.ReplaceAll(s, "hunter2", "***") },
	}
}

func TestBroadcastLogger_ForwardsAndBroadcasts(t *testing.T) {
	inner := newMockLogger()
	pub := &recPublisher{}
	b := NewBroadcastLogger(inner, pub)

	b.SetPhase(status.PhaseSteps)
	b.Print("step %d/%d: %s", 1, 2, "click")
	b.PrintRaw("[console] log: %s\n", "hi")
	b.Warn("slow %s", "page")
	b.Error("broken %s", "thing")

	require.Len(t, inner.SetPhaseCalls(), 1)
	require.Len(t, inner.PrintCalls(), 1)
	assert.Equal(t, "step %d/%d: %s", inner.PrintCalls()[0].Format)
	assert.Len(t, inner.PrintRawCalls(), 1)
	assert.Len(t, inner.WarnCalls(), 1)
	assert.Len(t, inner.ErrorCalls(), 1)

	events := pub.all()
	require.Len(t, events, 4)
	assert.Equal(t, EventTypeOutput, events[0].Type)
	assert.Equal(t, "step 1/2: click", events[0].Text)
	assert.Equal(t, status.PhaseSteps, events[0].Phase)
	assert.Equal(t, "[console] log: hi", events[1].Text, "trailing newline trimmed")
	assert.Equal(t, EventTypeWarn, events[2].Type)
	assert.Equal(t, "slow page", events[2].Text)
	assert.Equal(t, EventTypeError, events[3].Type)
}

func TestBroadcastLogger_RedactsSecrets(t *testing.T) {
	inner := newMockLogger()
	pub := &recPublisher{}
	b := NewBroadcastLogger(inner, pub)

	b.AddSecret("hunter2")
	assert.Equal(t, "hunter2", inner.AddSecretCalls()[0].Secret)

	b.Print("typed %s", "hunter2")
	b.Error("failed with hunter2 in %s", "field")
	b.ScenarioDone("login", status.StateFailed, status.PhaseSteps, errors.New("fill hunter2 failed"))

	for _, e := range pub.all() {
		assert.NotContains(t, e.Text, "hunter2")
	}
	assert.Equal(t, "typed ***", pub.all()[0].Text)
	assert.Equal(t, "a *** b", b.Redact("a hunter2 b"))
}

func TestBroadcastLogger_PrintSection(t *testing.T) {
	inner := newMockLogger()
	pub := &recPublisher{}
	b := NewBroadcastLogger(inner, pub)

	b.PrintSection(status.NewScenarioSection(1, 2, "login"))
	b.SetPhase(status.PhaseAssert)
	b.Print("assert 1/1: visible")
	b.ScenarioDone("login", status.StatePassed, status.PhaseAssert, nil)
	b.PrintSection(status.NewGenericSection("extra"))
	b.PrintSection(status.NewSummarySection(1, 0, 0))

	assert.Len(t, inner.PrintSectionCalls(), 3)

	events := pub.all()
	types := make([]EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []EventType{EventTypeScenarioStart, EventTypeSection, EventTypeOutput, EventTypeScenarioEnd,
		EventTypeSection, EventTypeSummary}, types)

	assert.Equal(t, 1, events[0].Index)
	assert.Equal(t, "login", events[0].Scenario)
	assert.Equal(t, "login", events[1].Scenario, "section belongs to the started scenario")
	assert.Equal(t, "login", events[2].Scenario)
	assert.Equal(t, status.PhaseAssert, events[2].Phase)
	assert.Equal(t, status.StatePassed, events[3].State)
	assert.Equal(t, "login passed", events[3].Text)
	assert.Empty(t, events[4].Scenario, "scenario cleared after its end")
	assert.Equal(t, "summary: 1 passed, 0 failed, 0 skipped", events[5].Text)
}

func TestBroadcastLogger_ScenarioResetsPhase(t *testing.T) {
	pub := &recPublisher{}
	b := NewBroadcastLogger(newMockLogger(), pub)
	b.SetPhase(status.PhaseAssert)
	b.PrintSection(status.NewScenarioSection(2, 2, "next"))
	b.Print("launching")

	events := pub.all()
	assert.Equal(t, status.PhaseBootstrap, events[len(events)-1].Phase)
}

func TestBroadcastLogger_PublishErrorIgnored(t *testing.T) {
	inner := newMockLogger()
	pub := &recPublisher{err: errors.New("closed")}
	b := NewBroadcastLogger(inner, pub)

	assert.NotPanics(t, func() { b.Print("still logged") })
	assert.Len(t, inner.PrintCalls(), 1)
}

func TestBroadcastLogger_ConcurrentPrint(t *testing.T) {
	pub := &recPublisher{}
	b := NewBroadcastLogger(newMockLogger(), pub)

	var wg sync.WaitGroup
	for range 5 {
		wg.Go(func() {
			for range 20 {
				b.PrintRaw("[console] log: x\n")
			}
		})
	}
	wg.Go(func() {
		for range 20 {
			b.SetPhase(status.PhaseSteps)
		}
	})
	wg.Wait()
	assert.Len(t, pub.all(), 100)
}

func TestFormatText(t *testing.T) {
	msg := "100% done"
	f := formatText // called through a value so the printf analyzer skips the %-literal
	assert.Equal(t, msg, f(msg), "no args, text kept as is")
	assert.Equal(t, "a=1", formatText("a=%d", 1))
}
