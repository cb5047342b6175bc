package command

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/theme"
)

// Commands understood by the palette.
const (
	Tasks         = "tasks"
	Notifications = "notifications"
	Profile       = "profile"
	FilterAll     = "filter all"
	FilterUnread  = "filter unread"
	FilterRead    = "filter read"
	MarkAllRead   = "mark all read"
	ClearAll      = "clear notifications"
	Logout        = "logout"
	Quit          = "quit"
)

var known = []string{
	Tasks, Notifications, Profile,
	FilterAll, FilterUnread, FilterRead,
	MarkAllRead, ClearAll, Logout, Quit,
}

var aliases = map[string]string{
	"q":       Quit,
	"exit":    Quit,
	"signout": Logout,
	"feed":    Notifications,
	"inbox":   Notifications,
	"unread":  FilterUnread,
	"read":    FilterRead,
	"all":     FilterAll,
}

// CommandMsg is emitted when the user executes a known command.
type CommandMsg string

// CancelMsg is emitted when the palette is dismissed.
type CancelMsg struct{}

// Resolve maps user input to a known command.
func Resolve(input string) (string, bool) {
	s := strings.Join(strings.Fields(strings.ToLower(input)), " ")
	if a, ok := aliases[s]; ok {
		return a, true
	}
	for _, c := range known {
		if c == s {
			return c, true
		}
	}
	return "", false
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	errMsg string
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(known)

	m := Model{input: ti}
	m.SetSize(width, height)
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			raw := strings.TrimSpace(m.input.Value())
			if raw == "" {
				return m, nil
			}
			c, ok := Resolve(raw)
			if !ok {
				m.errMsg = fmt.Sprintf("unknown command %q", raw)
				return m, nil
			}
			m.input.Reset()
			m.errMsg = ""
			return m, func() tea.Msg { return CommandMsg(c) }

		case "esc":
			m.input.Reset()
			m.errMsg = ""
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	parts := []string{
		theme.TitleStyle.Render("Command Palette"),
		m.input.View(),
	}
	if m.errMsg != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.errMsg))
	}
	parts = append(parts, theme.HelpStyle.Render(strings.Join(known, " · ")))

	return theme.PanelStyle.
		Width(max(m.width-4, 0)).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-6, 0)
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
