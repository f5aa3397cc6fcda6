package scenario

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Expand replaces ${NAME} placeholders in text. Environment values win over vars,
// so catalog defaults can be overridden without editing scenarios. env defaults to os.LookupEnv.
// Unknown names are reported in the error; the text is expanded as far as possible.
func Expand(text string, vars map[string]string, env func(string) (string, bool)) (string, error) {
	if env == nil {
		env = os.LookupEnv
	}
	var missing []string
	res := placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := env(name); ok {
			return v
		}
		if v, ok := vars[name]; ok {
			return v
		}
		missing = append(missing, name)
		return m
	})
	if len(missing) > 0 {
		return res, fmt.Errorf("undefined variable %s", strings.Join(missing, ", "))
	}
	return res, nil
}

// Placeholders returns the sorted unique placeholder names used anywhere in the scenario.
func (s Scenario) Placeholders() []string {
	seen := map[string]bool{}
	s.walkStrings(func(p *string) {
		for _, m := range placeholderRe.FindAllStringSubmatch(*p, -1) {
			seen[m[1]] = true
		}
	})
	res := make([]string, 0, len(seen))
	for k := range seen {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// Expanded returns a deep copy of the scenario with all placeholders resolved from env and s.Vars.
func (s Scenario) Expanded(env func(string) (string, bool)) (Scenario, error) {
	res := s.clone()
	var errs []error
	res.walkStrings(func(p *string) {
		v, err := Expand(*p, s.Vars, env)
		if err != nil {
			errs = append(errs, err)
		}
		*p = v
	})
	if len(errs) > 0 {
		return res, fmt.Errorf("scenario %q: %w", s.Name, errors.Join(errs...))
	}
	return res, nil
}

// walkStrings calls fn for every expandable string field.
func (s *Scenario) walkStrings(fn func(*string)) {
	fn(&s.URL)
	for i := range s.Steps {
		st := &s.Steps[i]
		fn(&st.Value)
		st.Target.walkStrings(fn)
		st.Expect.walkStrings(fn)
	}
	for i := range s.Assertions {
		s.Assertions[i].walkStrings(fn)
	}
}

func (t *Target) walkStrings(fn func(*string)) {
	if t == nil {
		return
	}
	for _, p := range []*string{&t.CSS, &t.Name, &t.NameRegex, &t.Label, &t.Text, &t.TestID, &t.Placeholder, &t.HasText} {
		fn(p)
	}
}

func (a *Assertion) walkStrings(fn func(*string)) {
	if a == nil {
		return
	}
	fn(&a.Value)
	a.Target.walkStrings(fn)
}

// clone copies every pointer and slice so expansion never touches the original.
func (s Scenario) clone() Scenario {
	res := s
	if s.Vars != nil {
		res.Vars = make(map[string]string, len(s.Vars))
		for k, v := range s.Vars {
			res.Vars[k] = v
		}
	}
	if s.Viewport != nil {
		vp := *s.Viewport
		res.Viewport = &vp
	}
	res.Steps = make([]Step, len(s.Steps))
	for i, st := range s.Steps {
		st.Target = st.Target.clone()
		st.Expect = st.Expect.clone()
		st.Vars = append([]string(nil), st.Vars...)
		res.Steps[i] = st
	}
	res.Assertions = make([]Assertion, len(s.Assertions))
	for i := range s.Assertions {
		res.Assertions[i] = *s.Assertions[i].clone()
	}
	return res
}

func (t *Target) clone() *Target {
	if t == nil {
		return nil
	}
	c := *t
	if t.Nth != nil {
		n := *t.Nth
		c.Nth = &n
	}
	return &c
}

func (a *Assertion) clone() *Assertion {
	if a == nil {
		return nil
	}
	c := *a
	c.Target = a.Target.clone()
	return &c
}
