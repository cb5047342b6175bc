package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/theme"
)

// Layout manages the header / content / status bar split of the terminal.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// RenderHeader renders the top bar with a title on the left and a summary
// (user, unread count) on the right.
func (l Layout) RenderHeader(title string, summary string) string {
	titleRendered := theme.HeaderStyle.Render(title)
	summaryRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(summary)

	return l.fill(theme.HeaderStyle, titleRendered, summaryRendered)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	return l.fill(theme.StatusBarStyle, theme.StatusBarStyle.Render(hints), "")
}

// RenderToast renders a transient message in place of the status bar,
// colored by kind.
func (l Layout) RenderToast(kind model.NotificationKind, text string) string {
	style := theme.ToastStyle(kind)
	return l.fill(style, style.Render(text), "")
}

// fill joins left and right with a gap painted in style's background so
// the bar spans the full width.
func (l Layout) fill(style lipgloss.Style, left, right string) string {
	gap := l.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
