package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// RenderTerminal renders the document for display in a terminal.
func RenderTerminal(d *Document, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create terminal renderer: %w", err)
	}
	out, err := r.Render(d.Markdown())
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out, nil
}
