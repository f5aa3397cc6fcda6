package progress

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/umputun/uicheck/pkg/config"
	"github.com/umputun/uicheck/pkg/status"
)

// Colors holds the terminal colors for phases and message kinds.
type Colors struct {
	phases    map[status.Phase]*color.Color
	warn      *color.Color
	err       *color.Color
	timestamp *color.Color
	info      *color.Color
}

// NewColors builds Colors from "r,g,b" values. Malformed entries fall back to a basic ansi color.
func NewColors(cfg config.ColorConfig) *Colors {
	return &Colors{
		phases: map[status.Phase]*color.Color{
			status.PhaseSteps:     rgbOr(cfg.Steps, color.FgGreen),
			status.PhaseAssert:    rgbOr(cfg.Assert, color.FgCyan),
			status.PhaseCapture:   rgbOr(cfg.Capture, color.FgMagenta),
			status.PhaseBootstrap: rgbOr(cfg.Bootstrap, color.FgBlue),
		},
		warn:      rgbOr(cfg.Warn, color.FgYellow),
		err:       rgbOr(cfg.Error, color.FgRed),
		timestamp: rgbOr(cfg.Timestamp, color.FgWhite),
		info:      rgbOr(cfg.Info, color.FgWhite),
	}
}

// defaultColors is used when the logger is created without explicit colors.
func defaultColors() *Colors {
	return NewColors(config.ColorConfig{})
}

// Phase returns the color for a phase, info color for unknown phases.
func (c *Colors) Phase(p status.Phase) *color.Color {
	if pc, ok := c.phases[p]; ok {
		return pc
	}
	return c.info
}

// Info returns the color for informational messages.
func (c *Colors) Info() *color.Color { return c.info }

// Error returns the color for error messages.
func (c *Colors) Error() *color.Color { return c.err }

func rgbOr(rgb string, fallback color.Attribute) *color.Color {
	r, g, b, err := parseRGB(rgb)
	if err != nil {
		return color.New(fallback)
	}
	return color.RGB(r, g, b)
}

func parseRGB(s string) (r, g, b int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid rgb %q", s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		v, convErr := strconv.Atoi(strings.TrimSpace(p))
		if convErr != nil || v < 0 || v > 255 {
			return 0, 0, 0, fmt.Errorf("invalid rgb component %q", p)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}
