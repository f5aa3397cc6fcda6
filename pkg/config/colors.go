package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// ColorConfig holds phase and message colors as "r,g,b" strings, ready for color.RGB.
type ColorConfig struct {
	Steps     string
	Assert    string
	Capture   string
	Bootstrap string
	Warn      string
	Error     string
	Timestamp string
	Info      string
}

// loadColors merges colors from the embedded defaults, the global and the local config.
func loadColors(fsys fs.ReadFileFS, localPath, globalPath string) (ColorConfig, error) {
	return loadLayered(fsys, localPath, globalPath, parseColors, (*ColorConfig).mergeFrom)
}

// parseColors converts the color_* hex keys of section into "r,g,b" strings.
func parseColors(section *ini.Section) (ColorConfig, error) {
	var colors ColorConfig
	colorKeys := []struct {
		key   string
		field *string
	}{
		{"color_steps", &colors.Steps},
		{"color_assert", &colors.Assert},
		{"color_capture", &colors.Capture},
		{"color_bootstrap", &colors.Bootstrap},
		{"color_warn", &colors.Warn},
		{"color_error", &colors.Error},
		{"color_timestamp", &colors.Timestamp},
		{"color_info", &colors.Info},
	}

	for _, ck := range colorKeys {
		key, err := section.GetKey(ck.key)
		if err != nil {
			continue
		}
		hex := strings.TrimSpace(key.String())
		if hex == "" {
			continue
		}
		r, g, b, err := parseHexColor(hex)
		if err != nil {
			return ColorConfig{}, fmt.Errorf("invalid %s: %w", ck.key, err)
		}
		*ck.field = fmt.Sprintf("%d,%d,%d", r, g, b)
	}

	return colors, nil
}

// parseHexColor parses a hex color string (e.g., "#ff0000") into RGB components.
// returns an error if the format is invalid.
func parseHexColor(hex string) (r, g, b int, err error) {
	if hex == "" || hex[0] != '#' {
		return 0, 0, 0, errors.New("hex color must start with #")
	}
	if len(hex) != 7 {
		return 0, 0, 0, errors.New("hex color must be 7 characters (e.g., #ff0000)")
	}

	// parse the hex value
	var val int64
	val, err = strconv.ParseInt(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	r = int((val >> 16) & 0xFF)
	g = int((val >> 8) & 0xFF)
	b = int(val & 0xFF)
	return r, g, b, nil
}

// mergeFrom merges non-empty color values from src into dst.
func (dst *ColorConfig) mergeFrom(src *ColorConfig) {
	for _, p := range []struct{ d, s *string }{
		{&dst.Steps, &src.Steps},
		{&dst.Assert, &src.Assert},
		{&dst.Capture, &src.Capture},
		{&dst.Bootstrap, &src.Bootstrap},
		{&dst.Warn, &src.Warn},
		{&dst.Error, &src.Error},
		{&dst.Timestamp, &src.Timestamp},
		{&dst.Info, &src.Info},
	} {
		if *p.s != "" {
			*p.d = *p.s
		}
	}
}
