package ui

import (
	"github.com/charmbracelet/glamour"
)

// DefaultWrap is the word wrap used when no terminal width is known
const DefaultWrap = 100

// RenderMarkdown renders a markdown report for the terminal. With plain set
// the output carries no ANSI styling.
func RenderMarkdown(md string, width int, plain bool) (string, error) {
	if width <= 0 {
		width = DefaultWrap
	}

	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}

	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}
