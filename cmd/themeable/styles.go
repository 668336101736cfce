package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/themeable/internal/output"
)

var (
	headingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	createStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	updateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	unchangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warningStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// painter renders styles only when writing to a terminal.
type painter struct {
	enabled bool
}

func newPainter(w io.Writer) painter {
	return painter{enabled: isTerminal(w)}
}

func (p painter) render(style lipgloss.Style, text string) string {
	if !p.enabled {
		return text
	}
	return style.Render(text)
}

func (p painter) heading(text string) string {
	return p.render(headingStyle, text)
}

func (p painter) warning(text string) string {
	return p.render(warningStyle, text)
}

func (p painter) action(a output.Action) string {
	label := string(a)
	switch a {
	case output.ActionCreate:
		return p.render(createStyle, label)
	case output.ActionUpdate:
		return p.render(updateStyle, label)
	default:
		return p.render(unchangedStyle, label)
	}
}
