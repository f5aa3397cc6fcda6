// Package status defines shared execution-model types for uicheck.
// scenario lifecycle states, run phases and section types used by runner, progress, report and web packages.
package status

// State is the lifecycle state of a single scenario run.
// not started -> running -> passed | failed | skipped.
type State string

// State constants.
const (
	StatePending State = "pending"
	StateRunning State = "running"
	StatePassed  State = "passed"
	StateFailed  State = "failed"
	StateSkipped State = "skipped" // a require_env gate stopped the scenario without failing it
)

// Terminal reports whether the state is final.
func (s State) Terminal() bool {
	return s == StatePassed || s == StateFailed || s == StateSkipped
}

// Phase represents the part of a scenario currently executing, used for color coding.
type Phase string

// Phase constants for scenario stages.
const (
	PhaseBootstrap Phase = "bootstrap" // browser launch and login (info color)
	PhaseSteps     Phase = "steps"     // scripted interactions (green)
	PhaseAssert    Phase = "assert"    // final assertions (cyan)
	PhaseCapture   Phase = "capture"   // evidence capture (magenta)
)
