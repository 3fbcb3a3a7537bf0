package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gabrielcapilla/playbutton/internal/domain"
)

// PlayerModel is the status line under the button.
type PlayerModel struct {
	width, height int
	resource      string
	state         domain.ButtonState
	styles        Styles
}

func NewPlayerModel(resource string, styles Styles) PlayerModel {
	return PlayerModel{resource: resource, styles: styles}
}

func (m *PlayerModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *PlayerModel) SetState(state domain.ButtonState) {
	m.state = state
}

func (m PlayerModel) View() string {
	var status string
	switch m.state.Phase {
	case domain.Idle:
		status = "Not loaded"
	case domain.Loading:
		status = "Loading"
	case domain.Playing:
		status = "Playing"
	case domain.Paused:
		status = "Paused"
	}
	if m.resource != "" && m.state.ContentReady {
		status += ": " + m.resource
	}
	if m.width > 0 {
		status = truncate(status, m.width)
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.styles.Status.Render(status))
}
