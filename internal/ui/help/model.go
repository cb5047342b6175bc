package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/keys"
	"github.com/nhle/dashboard/internal/theme"
)

// Model is the keyboard shortcut overlay.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(k *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.ShowAll = true
	m := Model{keys: k, help: h}
	m.SetSize(width, height)
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the overlay.
func (m Model) View() string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		theme.TitleStyle.Render("Keyboard Shortcuts"),
		m.help.View(m.keys),
	)

	return theme.PanelStyle.
		Width(max(m.width-4, 0)).
		Height(max(m.height-4, 0)).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = max(width-4, 0)
}
