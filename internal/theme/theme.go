package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the top bar and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps boxed content such as the help overlay.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// TitleStyle is used for view headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	MarginBottom(1)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// DimmedStyle renders completed tasks and read notifications.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// CompletedStyle renders the title of a completed task.
var CompletedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// HelpStyle is used for keyboard shortcut hints.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// EmptyStyle is used for placeholder text in empty lists.
var EmptyStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ErrorStyle renders inline error messages.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed).
	Bold(true)

// ToastStyle returns the status bar style for a transient message of the
// given kind.
func ToastStyle(kind model.NotificationKind) lipgloss.Style {
	base := StatusBarStyle.Bold(true).Foreground(lipgloss.Color("#FFFFFF"))

	tmpl, err := kind.Template()
	if err != nil {
		return base
	}
	return base.Background(lipgloss.Color(tmpl.Color))
}

// NotificationStyle returns a color-coded style for a notification type.
func NotificationStyle(t model.NotificationType) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	kind, ok := t.Kind()
	if !ok {
		return base.Foreground(ColorGray)
	}
	tmpl, err := kind.Template()
	if err != nil {
		return base.Foreground(ColorGray)
	}
	return base.Foreground(lipgloss.Color(tmpl.Color))
}

// Icon returns a terminal glyph for a notification type.
func Icon(t model.NotificationType) string {
	switch t {
	case model.TypeSuccess:
		return "✔"
	case model.TypeWarning:
		return "▲"
	case model.TypeError:
		return "✖"
	case model.TypeInfo:
		return "●"
	default:
		return "·"
	}
}
