package runner

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/umputun/uicheck/pkg/browser"
	"github.com/umputun/uicheck/pkg/scenario"
	"github.com/umputun/uicheck/pkg/status"
)

// step performs a single interaction. sc is the expanded scenario the step belongs to.
func (r *Runner) step(ctx context.Context, page browser.Page, sc scenario.Scenario, st scenario.Step, res *Result) error {
	timeout := r.timeout(sc, st.Timeout)

	switch st.Action {
	case scenario.ActionNavigate:
		u := r.resolveURL(st.Value)
		if err := page.Goto(u, timeout); err != nil {
			return &NavigationError{URL: u, Err: err}
		}

	case scenario.ActionReload:
		if err := page.Reload(timeout); err != nil {
			return &NavigationError{URL: page.URL(), Err: fmt.Errorf("reload: %w", err)}
		}

	case scenario.ActionWaitLoad:
		state := st.Value
		if state == "" {
			state = "load"
		}
		if err := page.WaitForLoadState(state, timeout); err != nil {
			return &NavigationError{URL: page.URL(), Err: fmt.Errorf("wait for %s: %w", state, err)}
		}

	case scenario.ActionWaitURL:
		return r.waitURL(ctx, page, st, timeout)

	case scenario.ActionFill:
		if err := page.Fill(*st.Target, st.Value, timeout); err != nil {
			return &ActionError{Action: "fill", Target: st.Target.String(), Err: err}
		}

	case scenario.ActionClick:
		if err := page.Click(*st.Target, timeout); err != nil {
			return &ActionError{Action: "click", Target: st.Target.String(), Err: err}
		}

	case scenario.ActionHover:
		if err := page.Hover(*st.Target, timeout); err != nil {
			return &ActionError{Action: "hover", Target: st.Target.String(), Err: err}
		}

	case scenario.ActionWait:
		return r.waitElement(ctx, page, *st.Target, st.State, timeout)

	case scenario.ActionViewport:
		if err := page.SetViewport(st.Width, st.Height); err != nil {
			return &ActionError{Action: "viewport", Err: err}
		}

	case scenario.ActionSleep:
		if err := sleep(ctx, st.Timeout); err != nil {
			return fmt.Errorf("sleep: %w", err)
		}

	case scenario.ActionCapture:
		r.setPhase(res, status.PhaseCapture)
		p, err := r.rec.Screenshot(page, st.Value)
		if err != nil {
			return &ActionError{Action: "capture", Target: st.Value, Err: err}
		}
		r.log.Print("screenshot saved to %s", p)
		res.Captures = append(res.Captures, p)

	case scenario.ActionRequireEnv:
		var missing []string
		for _, name := range st.Vars {
			if v, ok := r.cfg.Env(name); !ok || strings.TrimSpace(v) == "" {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return &skipError{missing: missing}
		}

	case scenario.ActionExpect:
		return r.assert(ctx, page, *st.Expect, r.timeout(sc, st.Expect.Timeout, st.Timeout))

	default:
		return fmt.Errorf("unsupported action %q", st.Action)
	}
	return nil
}

// waitURL waits until the page url equals the resolved value, or matches it when st.Regex is set.
func (r *Runner) waitURL(ctx context.Context, page browser.Page, st scenario.Step, timeout time.Duration) error {
	match, expected, err := r.urlMatcher(st.Value, st.Regex, false)
	if err != nil {
		return fmt.Errorf("wait_url: %w", err)
	}
	observed, err := Wait(ctx, timeout, r.cfg.PollInterval, func() (bool, string, error) {
		u := page.URL()
		return match(u), u, nil
	})
	if err != nil {
		return &NavigationError{URL: expected, Err: fmt.Errorf("url is %s after %s: %w", observed, timeout, err)}
	}
	return nil
}

// urlMatcher builds a url predicate. Plain values are resolved against the base url and compared
// ignoring a trailing slash, regex values are matched as given.
func (r *Runner) urlMatcher(value string, regex, ignoreCase bool) (match func(string) bool, expected string, err error) {
	if regex {
		if ignoreCase {
			value = "(?i)" + value
		}
		re, err := regexp.Compile(value)
		if err != nil {
			return nil, value, fmt.Errorf("invalid url pattern: %w", err)
		}
		return re.MatchString, value, nil
	}
	expected = r.resolveURL(value)
	want := strings.TrimRight(expected, "/")
	return func(u string) bool {
		got := strings.TrimRight(u, "/")
		if ignoreCase {
			return strings.EqualFold(got, want)
		}
		return got == want
	}, expected, nil
}

// waitElement waits for the target to reach state, visible by default.
func (r *Runner) waitElement(ctx context.Context, page browser.Page, t scenario.Target, state scenario.WaitState,
	timeout time.Duration) error {
	if state == "" {
		state = scenario.StateVisible
	}
	observed, err := Wait(ctx, timeout, r.cfg.PollInterval, func() (bool, string, error) {
		es, err := page.Inspect(t)
		if err != nil {
			return false, "", err
		}
		var ok bool
		switch state {
		case scenario.StateVisible:
			ok = es.Count > 0 && es.Visible
		case scenario.StateHidden:
			ok = es.Count == 0 || !es.Visible
		case scenario.StateAttached:
			ok = es.Count > 0
		case scenario.StateDetached:
			ok = es.Count == 0
		}
		return ok, describeState(es), nil
	})
	if err != nil {
		return &AssertionError{Target: t.String(), Condition: string(state), Observed: observed, Timeout: timeout, Err: err}
	}
	return nil
}

// describeState renders an element snapshot for error messages.
func describeState(es browser.ElementState) string {
	if es.Count == 0 {
		return "no matching element"
	}
	return fmt.Sprintf("count=%d visible=%t enabled=%t", es.Count, es.Visible, es.Enabled)
}
