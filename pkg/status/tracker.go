package status

import "sync"

// Tracker remembers which scenario is running and the phase it is in.
// the runner moves the phase forward, log sinks read it from other goroutines.
type Tracker struct {
	mu       sync.RWMutex
	scenario string
	phase    Phase
}

// Begin marks name as the running scenario and resets the phase to bootstrap.
func (t *Tracker) Begin(name string) {
	t.mu.Lock()
	t.scenario, t.phase = name, PhaseBootstrap
	t.mu.Unlock()
}

// SetPhase updates the phase of the running scenario.
func (t *Tracker) SetPhase(p Phase) {
	t.mu.Lock()
	t.phase = p
	t.mu.Unlock()
}

// End clears the running scenario if it is name. Returns false for any other name.
func (t *Tracker) End(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.scenario != name {
		return false
	}
	t.scenario = ""
	return true
}

// Reset clears the running scenario unconditionally, the phase is kept.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.scenario = ""
	t.mu.Unlock()
}

// Current returns the running scenario, empty between scenarios, and its phase.
func (t *Tracker) Current() (scenario string, phase Phase) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scenario, t.phase
}
