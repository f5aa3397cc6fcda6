package scenario

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/umputun/uicheck/pkg/evidence"
)

// Validate checks the scenario for structural errors. All problems are reported together.
func (s Scenario) Validate() error {
	var errs []error
	add := func(format string, args ...any) { errs = append(errs, fmt.Errorf(format, args...)) }

	if s.Name == "" {
		add("name is required")
	}
	if s.URL == "" {
		add("url is required")
	}
	switch s.Credentials {
	case "", CredentialsNone, CredentialsOptional, CredentialsRequired:
	default:
		add("unknown credentials mode %q", s.Credentials)
	}
	switch s.Console {
	case "", ConsoleOff, ConsoleStream, ConsoleOnFailure:
	default:
		add("unknown console mode %q", s.Console)
	}
	if s.Viewport != nil && (s.Viewport.Width <= 0 || s.Viewport.Height <= 0) {
		add("viewport must have positive width and height")
	}
	if s.Timeout < 0 {
		add("timeout must not be negative")
	}
	if len(s.Steps) == 0 && len(s.Assertions) == 0 {
		add("at least one step or assertion is required")
	}

	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			add("step %d (%s): %w", i+1, st.Action, err)
		}
	}
	for i, a := range s.Assertions {
		if err := a.validate(); err != nil {
			add("assertion %d (%s): %w", i+1, a.Condition, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("scenario %q: %w", s.Name, errors.Join(errs...))
}

func (st Step) validate() error {
	if st.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	switch st.Action {
	case ActionFill, ActionClick, ActionHover:
		return st.Target.validate()
	case ActionWait:
		switch st.State {
		case "", StateVisible, StateHidden, StateAttached, StateDetached:
		default:
			return fmt.Errorf("unknown state %q", st.State)
		}
		return st.Target.validate()
	case ActionNavigate:
		if st.Value == "" {
			return errors.New("value is required")
		}
	case ActionCapture:
		if st.Value == "" {
			return errors.New("value is required")
		}
		return evidence.CheckName(st.Value)
	case ActionWaitURL:
		if st.Value == "" {
			return errors.New("value is required")
		}
		if st.Regex {
			if _, err := regexp.Compile(st.Value); err != nil {
				return fmt.Errorf("invalid url pattern: %w", err)
			}
		}
	case ActionWaitLoad:
		if st.Value != "" && !loadStates[st.Value] {
			return fmt.Errorf("unknown load state %q", st.Value)
		}
	case ActionViewport:
		if st.Width <= 0 || st.Height <= 0 {
			return errors.New("width and height must be positive")
		}
	case ActionSleep:
		if st.Timeout <= 0 {
			return errors.New("timeout is required")
		}
	case ActionRequireEnv:
		if len(st.Vars) == 0 {
			return errors.New("vars are required")
		}
	case ActionReload:
	case ActionExpect:
		if st.Expect == nil {
			return errors.New("expect is required")
		}
		return st.Expect.validate()
	case "":
		return errors.New("action is required")
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

func (t *Target) validate() error {
	if t == nil {
		return errors.New("target is required")
	}
	set := 0
	for _, v := range []string{t.CSS, t.Role, t.Label, t.Text, t.TestID, t.Placeholder} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("target must set exactly one of css, role, label, text, test_id, placeholder, got %d", set)
	}
	if (t.Name != "" || t.NameRegex != "") && t.Role == "" {
		return errors.New("name and name_regex require role")
	}
	if t.Name != "" && t.NameRegex != "" {
		return errors.New("name and name_regex are mutually exclusive")
	}
	if t.NameRegex != "" {
		if _, err := regexp.Compile(t.NameRegex); err != nil {
			return fmt.Errorf("invalid name_regex: %w", err)
		}
	}
	if t.First && t.Nth != nil {
		return errors.New("first and nth are mutually exclusive")
	}
	if t.Nth != nil && *t.Nth < 0 {
		return errors.New("nth must not be negative")
	}
	return nil
}

func (a Assertion) validate() error {
	if a.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	switch a.Condition {
	case CondVisible, CondHidden, CondEnabled:
		return a.Target.validate()
	case CondCount, CondMinCount:
		if a.Count < 0 {
			return errors.New("count must not be negative")
		}
		return a.Target.validate()
	case CondContainsText, CondHasText:
		if a.Value == "" {
			return errors.New("value is required")
		}
		return a.Target.validate()
	case CondMatchesRegex:
		if _, err := regexp.Compile(a.Value); err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		return a.Target.validate()
	case CondHasURL:
		if a.Value == "" {
			return errors.New("value is required")
		}
	case CondURLMatches:
		if a.Value == "" {
			return errors.New("value is required")
		}
		if _, err := regexp.Compile(a.Value); err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
	case CondGeometry:
		if a.X == nil && a.Y == nil && a.Width == nil && a.Height == nil {
			return errors.New("at least one of x, y, width, height is required")
		}
		if a.Tolerance < 0 {
			return errors.New("tolerance must not be negative")
		}
		return a.Target.validate()
	case "":
		return errors.New("condition is required")
	default:
		return fmt.Errorf("unknown condition %q", a.Condition)
	}
	return nil
}
