package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown for the terminal, wrapped at width. The
// style follows stdout: colors on a terminal, plain ASCII markers otherwise.
func RenderMarkdown(text string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(text)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// RenderMarkdownOrEmpty renders text, or a dimmed placeholder when it is
// blank. Rendering failures fall back to the plain text.
func RenderMarkdownOrEmpty(text string, width int, placeholder string) string {
	if strings.TrimSpace(text) == "" {
		return Dim(placeholder)
	}
	out, err := RenderMarkdown(text, width)
	if err != nil {
		return StyleFg.Render(text)
	}
	return out
}

// FormatMarkdownPlan renders a titled markdown plan as formatted text.
func FormatMarkdownPlan(title, text string, width int) string {
	return RenderBox(title, RenderMarkdownOrEmpty(text, width, "Empty."))
}
