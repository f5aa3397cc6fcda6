package config

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// embeddedConfig is the path of the default config inside the embedded filesystem.
const embeddedConfig = "defaults/config"

// loadLayered builds T from three INI sources: embedded defaults, then globalPath, then localPath.
// each later layer overrides what it sets. Missing files and files with only comments are skipped.
func loadLayered[T any](fsys fs.ReadFileFS, localPath, globalPath string, parse func(*ini.Section) (T, error),
	merge func(dst, src *T)) (T, error) {
	var zero T

	data, err := fsys.ReadFile(embeddedConfig)
	if err != nil {
		return zero, fmt.Errorf("read embedded defaults: %w", err)
	}
	res, err := parseLayer(data, parse)
	if err != nil {
		return zero, fmt.Errorf("parse embedded defaults: %w", err)
	}

	for _, l := range []struct{ name, path string }{{"global", globalPath}, {"local", localPath}} {
		data, err := readLayer(l.path)
		if err != nil {
			return zero, fmt.Errorf("parse %s config: %w", l.name, err)
		}
		if data == nil {
			continue
		}
		v, err := parseLayer(data, parse)
		if err != nil {
			return zero, fmt.Errorf("parse %s config: %w", l.name, err)
		}
		merge(&res, &v)
	}
	return res, nil
}

// readLayer returns the file content, nil when path is empty, missing or holds nothing but comments.
func readLayer(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is constructed internally
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if strings.TrimSpace(stripComments(string(data))) == "" {
		return nil, nil
	}
	return data, nil
}

// parseLayer parses INI data and hands its default section to parse.
// '#' is not an inline comment marker, hex colors rely on it.
func parseLayer[T any](data []byte, parse func(*ini.Section) (T, error)) (T, error) {
	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("parse config: %w", err)
	}
	return parse(f.Section(""))
}
