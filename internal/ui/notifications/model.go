package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/keys"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/state"
	"github.com/nhle/dashboard/internal/theme"
	"github.com/nhle/dashboard/internal/timefmt"
	"github.com/nhle/dashboard/internal/ui"
)

// tickMsg refreshes relative timestamps.
type tickMsg time.Time

// Model is the Bubble Tea model for the notification feed.
type Model struct {
	feed        *state.Notifications
	keys        *keys.KeyMap
	now         func() time.Time
	selectedIdx int
	confirming  bool
	confirm     *bool
	form        *huh.Form
	width       int
	height      int
}

// New creates a feed view over feed.
func New(feed *state.Notifications, k *keys.KeyMap, width, height int) Model {
	return Model{
		feed:    feed,
		keys:    k,
		now:     time.Now,
		confirm: new(bool),
		width:   width,
		height:  height,
	}
}

// Init starts the once-a-minute refresh of relative times.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Capturing reports whether the clear-all confirmation has focus.
func (m Model) Capturing() bool {
	return m.confirming
}

// Selected returns the highlighted notification, if any.
func (m Model) Selected() (model.Notification, bool) {
	visible := m.feed.Filtered()
	if m.selectedIdx < 0 || m.selectedIdx >= len(visible) {
		return model.Notification{}, false
	}
	return visible[m.selectedIdx], true
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if !m.confirming {
			return m.handleKey(msg)
		}
	}

	if m.confirming {
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	ctx := context.Background()
	visible := m.feed.Filtered()
	m.clamp(len(visible))

	switch {
	case key.Matches(msg, m.keys.Down):
		if len(visible) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(visible)
		}

	case key.Matches(msg, m.keys.Up):
		if len(visible) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(visible) - 1
			}
		}

	case key.Matches(msg, m.keys.Filter):
		m.feed.SetFilter(m.feed.Filter().Next())
		m.selectedIdx = 0

	case key.Matches(msg, m.keys.ToggleRead):
		if n, ok := m.Selected(); ok {
			m.feed.ToggleRead(ctx, n.ID)
			m.clamp(len(m.feed.Filtered()))
		}

	case key.Matches(msg, m.keys.MarkAll):
		if m.feed.UnreadCount() > 0 {
			m.feed.MarkAllAsRead(ctx)
			m.clamp(len(m.feed.Filtered()))
		}

	case key.Matches(msg, m.keys.Delete):
		if n, ok := m.Selected(); ok {
			m.feed.Delete(ctx, n.ID)
			m.clamp(len(m.feed.Filtered()))
		}

	case key.Matches(msg, m.keys.ClearAll):
		if len(m.feed.Notifications()) == 0 {
			return m, nil
		}
		*m.confirm = false
		m.form = m.buildConfirmForm()
		m.confirming = true
		return m, m.form.Init()
	}
	return m, nil
}

func (m *Model) clamp(n int) {
	if m.selectedIdx >= n {
		m.selectedIdx = n - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}
}

func (m Model) buildConfirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear all notifications?").
				Affirmative("Clear").
				Negative("Cancel").
				Value(m.confirm),
		),
	).WithWidth(ui.FormWidth(m.width)).WithHeight(ui.FormHeight(m.height))
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.confirming = false
		if *m.confirm {
			m.feed.ClearAll(context.Background())
			m.selectedIdx = 0
			return m, ui.Toast(model.KindSuccess, "All notifications cleared")
		}
		return m, nil
	case huh.StateAborted:
		m.confirming = false
		return m, nil
	}
	return m, cmd
}

// View renders the feed.
func (m Model) View() string {
	if m.confirming && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}

	var b strings.Builder
	title := fmt.Sprintf("Notifications (%d unread) [%s]", m.feed.UnreadCount(), m.feed.Filter())
	b.WriteString(theme.TitleStyle.Render(title))
	b.WriteString("\n\n")

	visible := m.feed.Filtered()
	if len(visible) == 0 {
		b.WriteString(theme.EmptyStyle.Render("No notifications to show"))
	}

	now := m.now()
	for i, n := range visible {
		line := m.renderLine(n, now)
		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("f filter | r read/unread | A mark all read | d delete | C clear all"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

func (m Model) renderLine(n model.Notification, now time.Time) string {
	icon := theme.NotificationStyle(n.Type).Render(theme.Icon(n.Type))
	title := n.Title
	if n.IsRead {
		title = theme.DimmedStyle.Render(title)
	} else {
		title = lipgloss.NewStyle().Bold(true).Render(title)
	}
	ago := theme.DimmedStyle.Render(timefmt.Ago(n.Timestamp, now))
	return fmt.Sprintf("%s %s  %s", icon, title, ago)
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
