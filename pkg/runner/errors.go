package runner

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrTimeout is returned by Wait when the condition did not hold before the deadline.
var ErrTimeout = errors.New("timed out")

// ConfigError is raised before any network action: invalid scenario, missing credential,
// undefined placeholder.
type ConfigError struct {
	Scenario string
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error in %s: %v", e.Scenario, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// AssertionError reports a condition that was not met within its timeout.
type AssertionError struct {
	Target    string // element descriptor or "page"
	Condition string
	Expected  string
	Observed  string // last observed value
	Timeout   time.Duration
	Err       error // ErrTimeout or the context error
}

func (e *AssertionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Target, e.Condition)
	if e.Expected != "" {
		fmt.Fprintf(&b, " %q", e.Expected)
	}
	fmt.Fprintf(&b, " not met within %s", e.Timeout)
	if e.Observed != "" {
		fmt.Fprintf(&b, ", last observed: %s", e.Observed)
	}
	if e.Err != nil && !errors.Is(e.Err, ErrTimeout) {
		fmt.Fprintf(&b, " (%v)", e.Err)
	}
	return b.String()
}

func (e *AssertionError) Unwrap() error { return e.Err }

// NavigationError reports a failed goto, reload, load state or url wait.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation to %s failed: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// ActionError reports a click, fill, hover, viewport or capture failure from the engine.
type ActionError struct {
	Action string
	Target string
	Err    error
}

func (e *ActionError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s failed: %v", e.Action, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Action, e.Target, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// skipError stops a scenario without failing it, raised by require_env.
type skipError struct {
	missing []string
}

func (e *skipError) Error() string {
	return "missing environment " + strings.Join(e.missing, ", ")
}
