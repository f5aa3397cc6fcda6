package scenario

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yml
var catalogFS embed.FS

// Parse decodes one or more yaml documents into scenarios. Unknown keys are errors.
// Defaults are applied, validation is left to the caller.
func Parse(data []byte) ([]Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var res []Scenario
	for {
		var s Scenario
		err := dec.Decode(&s)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode scenario %d: %w", len(res)+1, err)
		}
		res = append(res, s.withDefaults())
	}
	return res, nil
}

// LoadFile reads and validates scenarios from a yaml file.
// A single unnamed scenario takes its name from the file stem.
func LoadFile(p string) ([]Scenario, error) {
	data, err := os.ReadFile(p) //nolint:gosec // user supplied scenario path
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	return parseNamed(data, p, p)
}

// LoadDir loads every *.yml and *.yaml file in dir, sorted by file name.
// Scenario names must be unique across the directory.
func LoadDir(dir string) ([]Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenarios dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	var res []Scenario
	for _, f := range files {
		ss, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		res = append(res, ss...)
	}
	if err := checkUnique(res); err != nil {
		return nil, err
	}
	return res, nil
}

// Catalog returns the built-in scenarios.
func Catalog() ([]Scenario, error) {
	entries, err := fs.ReadDir(catalogFS, "catalog")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var res []Scenario
	for _, e := range entries { // fs.ReadDir returns entries sorted by name
		data, err := catalogFS.ReadFile(path.Join("catalog", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", e.Name(), err)
		}
		ss, err := parseNamed(data, e.Name(), "catalog:"+e.Name())
		if err != nil {
			return nil, err
		}
		res = append(res, ss...)
	}
	if err := checkUnique(res); err != nil {
		return nil, err
	}
	return res, nil
}

// Select returns the scenarios matching names, in the order of names.
// Names may be shell patterns (login-*). Empty names select everything.
// A name that matches nothing is an error listing what is available.
func Select(all []Scenario, names []string) ([]Scenario, error) {
	if len(names) == 0 {
		return all, nil
	}
	var res []Scenario
	picked := map[string]bool{}
	for _, name := range names {
		matched := false
		for _, s := range all {
			ok, err := path.Match(name, s.Name)
			if err != nil {
				return nil, fmt.Errorf("bad scenario pattern %q: %w", name, err)
			}
			if !ok {
				continue
			}
			matched = true
			if !picked[s.Name] {
				picked[s.Name] = true
				res = append(res, s)
			}
		}
		if !matched {
			return nil, fmt.Errorf("unknown scenario %q, available: %s", name, strings.Join(Names(all), ", "))
		}
	}
	return res, nil
}

// Names returns scenario names in order.
func Names(ss []Scenario) []string {
	res := make([]string, len(ss))
	for i, s := range ss {
		res[i] = s.Name
	}
	return res
}

func parseNamed(data []byte, fileName, source string) ([]Scenario, error) {
	ss, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if len(ss) == 0 {
		return nil, fmt.Errorf("%s: no scenarios", source)
	}
	for i := range ss {
		ss[i].Source = source
		if ss[i].Name == "" && len(ss) == 1 {
			base := filepath.Base(fileName)
			ss[i].Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		if err := ss[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
	}
	return ss, nil
}

func checkUnique(ss []Scenario) error {
	seen := map[string]string{}
	for _, s := range ss {
		if prev, ok := seen[s.Name]; ok {
			return fmt.Errorf("duplicate scenario %q in %s and %s", s.Name, prev, s.Source)
		}
		seen[s.Name] = s.Source
	}
	return nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yml" || ext == ".yaml"
}

func (s Scenario) withDefaults() Scenario {
	if s.Credentials == "" {
		s.Credentials = CredentialsNone
		if s.Login {
			s.Credentials = CredentialsRequired
		}
	}
	if s.Console == "" {
		s.Console = ConsoleOnFailure
	}
	return s
}
