package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gabrielcapilla/playbutton/internal/domain"
)

var glyphs = map[domain.Glyph]string{
	domain.GlyphPlay:  "▶",
	domain.GlyphPause: "⏸",
}

// ButtonModel draws the round button for the current glyph.
type ButtonModel struct {
	glyph   domain.Glyph
	spinner spinner.Model
	styles  Styles
}

func NewButtonModel(styles Styles) ButtonModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner
	return ButtonModel{glyph: domain.GlyphPlay, spinner: s, styles: styles}
}

func (m ButtonModel) Init() tea.Cmd { return m.spinner.Tick }

func (m ButtonModel) Update(msg tea.Msg) (ButtonModel, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *ButtonModel) SetGlyph(g domain.Glyph) { m.glyph = g }

func (m ButtonModel) View() string {
	var content string
	if m.glyph == domain.GlyphLoading {
		content = m.spinner.View()
	} else {
		content = m.styles.Glyph.Render(glyphs[m.glyph])
	}
	return m.styles.Button.Render(content)
}
