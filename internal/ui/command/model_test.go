package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"tasks":               Tasks,
		"  Mark   All  Read ": MarkAllRead,
		"q":                   Quit,
		"unread":              FilterUnread,
		"signout":             Logout,
	}
	for in, want := range cases {
		got, ok := Resolve(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := Resolve("launch rockets")
	assert.False(t, ok)
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestEnterEmitsKnownCommand(t *testing.T) {
	t.Parallel()
	m := New(80, 10)
	m.Focus()

	m = typeText(m, "logout")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg(Logout), cmd())
}

func TestEnterRejectsUnknownCommand(t *testing.T) {
	t.Parallel()
	m := New(80, 10)
	m.Focus()

	m = typeText(m, "nope")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), `unknown command "nope"`)
}

func TestEscCancels(t *testing.T) {
	t.Parallel()
	m := New(80, 10)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}
