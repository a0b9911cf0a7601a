package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles renders CLI output. Colour is dropped automatically when w is not a terminal.
type styles struct {
	path    lipgloss.Style
	lineNum lipgloss.Style
	dim     lipgloss.Style
	title   lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
	err     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		path:    r.NewStyle().Foreground(lipgloss.Color("12")),
		lineNum: r.NewStyle().Foreground(lipgloss.Color("10")),
		dim:     r.NewStyle().Faint(true),
		title:   r.NewStyle().Bold(true),
		added:   r.NewStyle().Foreground(lipgloss.Color("2")),
		removed: r.NewStyle().Foreground(lipgloss.Color("1")),
		err:     r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}
