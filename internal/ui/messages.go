package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dashboard/internal/model"
)

// NotifyMsg asks the root model to add an entry to the notification feed.
type NotifyMsg struct {
	Kind  model.NotificationKind
	Title string
}

// ToastMsg asks the root model to flash a message in the status bar.
type ToastMsg struct {
	Kind model.NotificationKind
	Text string
}

// Notify returns a command emitting a NotifyMsg.
func Notify(kind model.NotificationKind, title string) tea.Cmd {
	return func() tea.Msg { return NotifyMsg{Kind: kind, Title: title} }
}

// Toast returns a command emitting a ToastMsg.
func Toast(kind model.NotificationKind, text string) tea.Cmd {
	return func() tea.Msg { return ToastMsg{Kind: kind, Text: text} }
}

// FormWidth clamps a form to a readable width inside a view of width w.
func FormWidth(w int) int {
	w -= 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

// FormHeight clamps a form height inside a view of height h.
func FormHeight(h int) int {
	h -= 4
	if h < 10 {
		h = 10
	}
	return h
}
