package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Terminal(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StatePending, false},
		{StateRunning, false},
		{StatePassed, true},
		{StateFailed, true},
		{StateSkipped, true},
	}
	for _, tc := range tests {
		t.Run(string(tc.state), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.state.Terminal())
		})
	}
}

func TestSections(t *testing.T) {
	s := NewScenarioSection(2, 5, "login-toast")
	assert.Equal(t, SectionScenario, s.Type)
	assert.Equal(t, 2, s.Index)
	assert.Equal(t, "login-toast", s.Name)
	assert.Equal(t, "scenario 2/5: login-toast", s.Label)

	g := NewGenericSection("assertions")
	assert.Equal(t, SectionGeneric, g.Type)
	assert.Zero(t, g.Index)

	sum := NewSummarySection(3, 1, 0)
	assert.Equal(t, SectionSummary, sum.Type)
	assert.Equal(t, "summary: 3 passed, 1 failed, 0 skipped", sum.Label)
}
