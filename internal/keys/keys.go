package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Help toggle
	Help key.Binding

	// Command palette
	Command key.Binding

	// View switching
	NextView          key.Binding
	ViewTasks         key.Binding
	ViewNotifications key.Binding
	ViewProfile       key.Binding

	// Tasks
	Add      key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding

	// Notifications
	Filter     key.Binding
	ToggleRead key.Binding
	MarkAll    key.Binding
	ClearAll   key.Binding

	// Profile
	Edit   key.Binding
	Avatar key.Binding

	// Session
	Logout key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		ViewTasks: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "tasks"),
		),
		ViewNotifications: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "notifications"),
		),
		ViewProfile: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "profile"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add task"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle filter"),
		),
		ToggleRead: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "read/unread"),
		),
		MarkAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "mark all read"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear all"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit profile"),
		),
		Avatar: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "set picture"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.NextView, k.Back,
		k.Quit, k.Help, k.Logout,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Back, k.Quit, k.Help, k.Command},
		{k.NextView, k.ViewTasks, k.ViewNotifications, k.ViewProfile, k.Logout},
		{k.Add, k.Toggle, k.Delete, k.MoveUp, k.MoveDown},
		{k.Filter, k.ToggleRead, k.MarkAll, k.ClearAll},
		{k.Edit, k.Avatar},
	}
}
