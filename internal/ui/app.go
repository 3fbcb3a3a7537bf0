package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gabrielcapilla/playbutton/internal/ports"
)

const (
	MIN_WIDTH  = 30
	MIN_HEIGHT = 12

	toastDuration = 2 * time.Second
)

type AppModel struct {
	width, height int
	controller    ports.ButtonController
	toasts        *ToastNotifier
	button        ButtonModel
	player        PlayerModel
	styles        Styles
	toast         string
	toastID       int
}

func InitialModel(controller ports.ButtonController, toasts *ToastNotifier, resource string) AppModel {
	styles := DefaultStyles()
	m := AppModel{
		controller: controller,
		toasts:     toasts,
		button:     NewButtonModel(styles),
		player:     NewPlayerModel(resource, styles),
		styles:     styles,
	}
	m.observe()
	return m
}

func (m AppModel) Init() tea.Cmd { return m.button.Init() }

func (m *AppModel) observe() {
	state := m.controller.Observe()
	m.button.SetGlyph(state.Glyph())
	m.player.SetState(state)
}

func (m *AppModel) showToasts() tea.Cmd {
	pending := m.toasts.drain()
	if len(pending) == 0 {
		return nil
	}
	m.toast = pending[len(pending)-1]
	m.toastID++
	id := m.toastID
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ", "enter":
			m.controller.Trigger()
		}
	case scheduledMsg:
		msg.fn()
	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
	}

	m.observe()
	cmds = append(cmds, m.showToasts())

	m.button, cmd = m.button.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m AppModel) View() string {
	if m.width < MIN_WIDTH || m.height < MIN_HEIGHT {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, "Terminal too small")
	}

	availableWidth := m.width - m.styles.App.GetHorizontalFrameSize()
	availableHeight := m.height - m.styles.App.GetVerticalFrameSize()

	m.player.SetSize(availableWidth, 1)

	toast := ""
	if m.toast != "" {
		toast = m.styles.Toast.Render(truncate(m.toast, availableWidth-2))
	}
	help := m.styles.Help.Render("[space/enter] play/pause | [q] quit")

	body := lipgloss.JoinVertical(lipgloss.Center,
		m.button.View(),
		"",
		m.player.View(),
		"",
		toast,
	)
	body = lipgloss.Place(availableWidth, availableHeight-1, lipgloss.Center, lipgloss.Center, body)

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		body,
		lipgloss.PlaceHorizontal(availableWidth, lipgloss.Center, help),
	))
}
