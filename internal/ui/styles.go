package ui

import "github.com/charmbracelet/lipgloss"

var buttonColor = lipgloss.Color("#35898F")

type Styles struct {
	App     lipgloss.Style
	Button  lipgloss.Style
	Glyph   lipgloss.Style
	Spinner lipgloss.Style
	Status  lipgloss.Style
	Toast   lipgloss.Style
	Help    lipgloss.Style
}

func DefaultStyles() Styles {
	s := Styles{}
	s.App = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		Padding(1, 2)
	s.Button = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(buttonColor).
		Background(buttonColor).
		Padding(1, 3)
	s.Glyph = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(buttonColor).Bold(true)
	s.Spinner = s.Glyph
	s.Status = lipgloss.NewStyle().Faint(true)
	s.Toast = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#444444")).
		Padding(0, 1)
	s.Help = lipgloss.NewStyle().Faint(true)
	return s
}
