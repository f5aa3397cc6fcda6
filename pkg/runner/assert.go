package runner

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/umputun/uicheck/pkg/browser"
	"github.com/umputun/uicheck/pkg/scenario"
)

// maxObserved limits how much element text goes into an error message.
const maxObserved = 200

// assert polls the assertion until it holds or timeout elapses.
func (r *Runner) assert(ctx context.Context, page browser.Page, a scenario.Assertion, timeout time.Duration) error {
	check, err := r.checkFor(page, a)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Describe(), err)
	}
	observed, err := Wait(ctx, timeout, r.cfg.PollInterval, check)
	if err == nil {
		return nil
	}

	target := "page"
	if a.Target != nil {
		target = a.Target.String()
	}
	expected := a.Value
	switch a.Condition {
	case scenario.CondCount, scenario.CondMinCount:
		expected = fmt.Sprintf("%d", a.Count)
	case scenario.CondGeometry:
		expected = geometryExpected(a)
	case scenario.CondHasURL:
		expected = r.resolveURL(a.Value)
	}
	return &AssertionError{
		Target:    target,
		Condition: string(a.Condition),
		Expected:  expected,
		Observed:  observed,
		Timeout:   timeout,
		Err:       err,
	}
}

// checkFor builds the probe for an assertion condition.
func (r *Runner) checkFor(page browser.Page, a scenario.Assertion) (Check, error) {
	switch a.Condition {
	case scenario.CondHasURL, scenario.CondURLMatches:
		match, _, err := r.urlMatcher(a.Value, a.Condition == scenario.CondURLMatches, a.IgnoreCase)
		if err != nil {
			return nil, err
		}
		return func() (bool, string, error) {
			u := page.URL()
			return match(u), u, nil
		}, nil
	}

	if a.Target == nil {
		return nil, fmt.Errorf("condition %s needs a target", a.Condition)
	}
	inspect := func(fn func(es browser.ElementState) (bool, string)) Check {
		return func() (bool, string, error) {
			es, err := page.Inspect(*a.Target)
			if err != nil {
				return false, "", err
			}
			ok, observed := fn(es)
			return ok, observed, nil
		}
	}

	switch a.Condition {
	case scenario.CondVisible:
		return inspect(func(es browser.ElementState) (bool, string) {
			return es.Count > 0 && es.Visible, describeState(es)
		}), nil
	case scenario.CondHidden:
		return inspect(func(es browser.ElementState) (bool, string) {
			return es.Count == 0 || !es.Visible, describeState(es)
		}), nil
	case scenario.CondEnabled:
		return inspect(func(es browser.ElementState) (bool, string) {
			return es.Count > 0 && es.Visible && es.Enabled, describeState(es)
		}), nil
	case scenario.CondCount:
		return inspect(func(es browser.ElementState) (bool, string) {
			return es.Count == a.Count, fmt.Sprintf("count=%d", es.Count)
		}), nil
	case scenario.CondMinCount:
		return inspect(func(es browser.ElementState) (bool, string) {
			return es.Count >= a.Count, fmt.Sprintf("count=%d", es.Count)
		}), nil
	case scenario.CondContainsText, scenario.CondHasText, scenario.CondMatchesRegex:
		match, err := textMatcher(a)
		if err != nil {
			return nil, err
		}
		return inspect(func(es browser.ElementState) (bool, string) {
			if es.Count == 0 {
				return false, describeState(es)
			}
			return match(es.Text), fmt.Sprintf("%q", truncate(es.Text, maxObserved))
		}), nil
	case scenario.CondGeometry:
		return inspect(func(es browser.ElementState) (bool, string) {
			if es.Box == nil {
				return false, "element not rendered"
			}
			return geometryMatches(a, *es.Box), describeBox(*es.Box)
		}), nil
	}
	return nil, fmt.Errorf("unknown condition %q", a.Condition)
}

// textMatcher returns a predicate over element text for the text conditions.
func textMatcher(a scenario.Assertion) (func(string) bool, error) {
	want := a.Value
	switch a.Condition {
	case scenario.CondContainsText:
		if a.IgnoreCase {
			want = strings.ToLower(want)
			return func(s string) bool { return strings.Contains(strings.ToLower(s), want) }, nil
		}
		return func(s string) bool { return strings.Contains(s, want) }, nil
	case scenario.CondHasText:
		return func(s string) bool {
			s = strings.TrimSpace(s)
			if a.IgnoreCase {
				return strings.EqualFold(s, want)
			}
			return s == want
		}, nil
	default:
		if a.IgnoreCase {
			want = "(?i)" + want
		}
		re, err := regexp.Compile(want)
		if err != nil {
			return nil, fmt.Errorf("invalid regex: %w", err)
		}
		return re.MatchString, nil
	}
}

func geometryMatches(a scenario.Assertion, box browser.Box) bool {
	within := func(want *float64, got float64) bool {
		return want == nil || math.Abs(*want-got) <= a.Tolerance
	}
	return within(a.X, box.X) && within(a.Y, box.Y) && within(a.Width, box.Width) && within(a.Height, box.Height)
}

func geometryExpected(a scenario.Assertion) string {
	var parts []string
	for _, f := range []struct {
		name string
		v    *float64
	}{{"x", a.X}, {"y", a.Y}, {"width", a.Width}, {"height", a.Height}} {
		if f.v != nil {
			parts = append(parts, fmt.Sprintf("%s=%g", f.name, *f.v))
		}
	}
	if a.Tolerance > 0 {
		parts = append(parts, fmt.Sprintf("±%g", a.Tolerance))
	}
	return strings.Join(parts, " ")
}

func describeBox(b browser.Box) string {
	return fmt.Sprintf("x=%g y=%g width=%g height=%g", b.X, b.Y, b.Width, b.Height)
}

// truncate keeps at most n bytes of s, cutting on a rune boundary.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
