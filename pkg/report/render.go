package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Render renders the markdown report for terminal display.
// If noColor is true, returns the content unchanged.
func Render(content string, noColor bool, width int) (string, error) {
	if noColor {
		return content, nil
	}
	if width <= 0 {
		width = 100
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}

	result, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return result, nil
}
