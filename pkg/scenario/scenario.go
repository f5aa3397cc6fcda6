// Package scenario defines declarative browser scenarios: a start url, an ordered list of steps
// and the assertions checked once the steps are done. Scenarios are loaded from yaml files or
// from the embedded catalog and interpreted by the runner package.
package scenario

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CredentialMode tells whether a scenario needs EMAIL and PASS.
type CredentialMode string

// credential modes.
const (
	CredentialsNone     CredentialMode = "none"
	CredentialsOptional CredentialMode = "optional"
	CredentialsRequired CredentialMode = "required"
)

// ConsoleMode controls what happens to browser console messages.
type ConsoleMode string

// console modes.
const (
	ConsoleOff       ConsoleMode = "off"
	ConsoleStream    ConsoleMode = "stream"     // print every message as it arrives
	ConsoleOnFailure ConsoleMode = "on_failure" // collect and dump only when the scenario fails
)

// Action is the kind of a step.
type Action string

// step actions.
const (
	ActionFill       Action = "fill"
	ActionClick      Action = "click"
	ActionNavigate   Action = "navigate"
	ActionWait       Action = "wait"
	ActionHover      Action = "hover"
	ActionReload     Action = "reload"
	ActionWaitURL    Action = "wait_url"
	ActionWaitLoad   Action = "wait_load"
	ActionViewport   Action = "viewport"
	ActionSleep      Action = "sleep"
	ActionCapture    Action = "capture"
	ActionRequireEnv Action = "require_env"
	ActionExpect     Action = "expect"
)

// WaitState is the element state a wait step waits for.
type WaitState string

// wait states.
const (
	StateVisible  WaitState = "visible"
	StateHidden   WaitState = "hidden"
	StateAttached WaitState = "attached"
	StateDetached WaitState = "detached"
)

// Condition is what an assertion checks.
type Condition string

// assertion conditions.
const (
	CondVisible      Condition = "visible"
	CondHidden       Condition = "hidden"
	CondEnabled      Condition = "enabled"
	CondContainsText Condition = "contains_text"
	CondHasText      Condition = "has_text"
	CondMatchesRegex Condition = "matches_regex"
	CondHasURL       Condition = "has_url"
	CondURLMatches   Condition = "url_matches"
	CondGeometry     Condition = "geometry"
	CondCount        Condition = "count"
	CondMinCount     Condition = "min_count"
)

// Scenario is one named sequence of browser interactions and assertions.
type Scenario struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	URL         string            `yaml:"url"`
	Credentials CredentialMode    `yaml:"credentials"`
	Login       bool              `yaml:"login"`
	Vars        map[string]string `yaml:"vars"`
	Viewport    *Viewport         `yaml:"viewport"`
	Timeout     time.Duration     `yaml:"timeout"`
	Console     ConsoleMode       `yaml:"console"`
	OnFailure   FailurePolicy     `yaml:"on_failure"`
	Steps       []Step            `yaml:"steps"`
	Assertions  []Assertion       `yaml:"assertions"`

	Source string `yaml:"-"` // file the scenario came from, catalog:<file> for embedded ones
}

// Viewport is a page size in css pixels.
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FailurePolicy selects the diagnostics collected when a scenario fails.
type FailurePolicy struct {
	Screenshot *bool `yaml:"screenshot"` // nil means true
	Content    bool  `yaml:"content"`
	Console    bool  `yaml:"console"`
}

// TakeScreenshot reports whether an error screenshot is wanted.
func (f FailurePolicy) TakeScreenshot() bool {
	return f.Screenshot == nil || *f.Screenshot
}

// Step is a single interaction.
type Step struct {
	Name    string        `yaml:"name"`
	Action  Action        `yaml:"action"`
	Target  *Target       `yaml:"target"`
	Value   string        `yaml:"value"`
	Regex   bool          `yaml:"regex"`
	State   WaitState     `yaml:"state"`
	Timeout time.Duration `yaml:"timeout"`
	Width   int           `yaml:"width"`
	Height  int           `yaml:"height"`
	Vars    []string      `yaml:"vars"`
	Expect  *Assertion    `yaml:"expect"`
}

// Target describes how to find an element. Exactly one locator field is set,
// First, Nth and HasText narrow the match.
type Target struct {
	CSS         string `yaml:"css"`
	Role        string `yaml:"role"`
	Name        string `yaml:"name"`
	NameRegex   string `yaml:"name_regex"`
	Exact       bool   `yaml:"exact"`
	Label       string `yaml:"label"`
	Text        string `yaml:"text"`
	TestID      string `yaml:"test_id"`
	Placeholder string `yaml:"placeholder"`

	First   bool   `yaml:"first"`
	Nth     *int   `yaml:"nth"`
	HasText string `yaml:"has_text"`
}

// Assertion is a condition that must hold within its timeout.
type Assertion struct {
	Target     *Target       `yaml:"target"`
	Condition  Condition     `yaml:"condition"`
	Value      string        `yaml:"value"`
	IgnoreCase bool          `yaml:"ignore_case"`
	Width      *float64      `yaml:"width"`
	Height     *float64      `yaml:"height"`
	X          *float64      `yaml:"x"`
	Y          *float64      `yaml:"y"`
	Tolerance  float64       `yaml:"tolerance"` // allowed geometry deviation in pixels
	Count      int           `yaml:"count"`
	Timeout    time.Duration `yaml:"timeout"`
}

// NeedsCredentials reports whether EMAIL and PASS must be present before the browser starts.
func (s Scenario) NeedsCredentials() bool {
	return s.Login || s.Credentials == CredentialsRequired
}

// String renders the target the way it shows up in logs and errors, e.g. role=button[name=/Sign In|Masuk/].
func (t Target) String() string {
	var b strings.Builder
	switch {
	case t.CSS != "":
		b.WriteString("css=" + t.CSS)
	case t.Role != "":
		b.WriteString("role=" + t.Role)
		switch {
		case t.NameRegex != "":
			fmt.Fprintf(&b, "[name=/%s/]", t.NameRegex)
		case t.Name != "":
			fmt.Fprintf(&b, "[name=%q]", t.Name)
		}
	case t.Label != "":
		b.WriteString("label=" + t.Label)
	case t.Text != "":
		b.WriteString("text=" + t.Text)
	case t.TestID != "":
		b.WriteString("test_id=" + t.TestID)
	case t.Placeholder != "":
		b.WriteString("placeholder=" + t.Placeholder)
	default:
		b.WriteString("page")
	}
	if t.HasText != "" {
		fmt.Fprintf(&b, " has_text=%q", t.HasText)
	}
	if t.First {
		b.WriteString(" >> first")
	}
	if t.Nth != nil {
		b.WriteString(" >> nth=" + strconv.Itoa(*t.Nth))
	}
	return b.String()
}

// Describe returns a one-line description of the step for the run log.
// fill values are never included, they usually carry credentials.
func (st Step) Describe() string {
	if st.Name != "" {
		return st.Name
	}
	switch st.Action {
	case ActionFill:
		return fmt.Sprintf("fill %s", st.Target)
	case ActionClick, ActionHover:
		return fmt.Sprintf("%s %s", st.Action, st.Target)
	case ActionWait:
		state := st.State
		if state == "" {
			state = StateVisible
		}
		return fmt.Sprintf("wait for %s to be %s", st.Target, state)
	case ActionNavigate, ActionWaitURL, ActionCapture:
		return fmt.Sprintf("%s %s", st.Action, st.Value)
	case ActionWaitLoad:
		return fmt.Sprintf("wait for load state %s", loadStateOrDefault(st.Value))
	case ActionViewport:
		return fmt.Sprintf("set viewport %dx%d", st.Width, st.Height)
	case ActionSleep:
		return fmt.Sprintf("sleep %s", st.Timeout)
	case ActionRequireEnv:
		return "require env " + strings.Join(st.Vars, ", ")
	case ActionExpect:
		if st.Expect != nil {
			return "expect " + st.Expect.Describe()
		}
	}
	return string(st.Action)
}

// Describe returns a one-line description of the assertion.
func (a Assertion) Describe() string {
	subject := "page"
	if a.Target != nil {
		subject = a.Target.String()
	}
	switch a.Condition {
	case CondVisible, CondHidden, CondEnabled:
		return fmt.Sprintf("%s is %s", subject, a.Condition)
	case CondHasURL, CondURLMatches:
		return fmt.Sprintf("url %s %q", a.Condition, a.Value)
	case CondGeometry:
		return fmt.Sprintf("%s geometry %s", subject, a.geometryString())
	case CondCount, CondMinCount:
		return fmt.Sprintf("%s %s %d", subject, a.Condition, a.Count)
	default:
		return fmt.Sprintf("%s %s %q", subject, a.Condition, a.Value)
	}
}

func (a Assertion) geometryString() string {
	var parts []string
	for _, f := range []struct {
		name string
		v    *float64
	}{{"x", a.X}, {"y", a.Y}, {"width", a.Width}, {"height", a.Height}} {
		if f.v != nil {
			parts = append(parts, fmt.Sprintf("%s=%g", f.name, *f.v))
		}
	}
	return strings.Join(parts, " ")
}

// load states accepted by wait_load.
var loadStates = map[string]bool{"load": true, "domcontentloaded": true, "networkidle": true}

func loadStateOrDefault(v string) string {
	if v == "" {
		return "load"
	}
	return v
}
