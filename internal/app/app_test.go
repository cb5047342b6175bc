package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/state"
	"github.com/nhle/dashboard/internal/testutil"
	"github.com/nhle/dashboard/internal/ui"
	"github.com/nhle/dashboard/internal/ui/authform"
	"github.com/nhle/dashboard/internal/ui/command"
)

func newApp(t *testing.T) (Model, *state.Dashboard) {
	t.Helper()
	a, _ := testutil.NewTestAdapter(t)
	clock := testutil.NewClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	d := state.New(context.Background(), a, state.WithClock(clock))
	m := New(d, Options{ToastDuration: time.Second})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), d
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStartsOnAuthWhenSignedOut(t *testing.T) {
	t.Parallel()
	m, _ := newApp(t)

	assert.Equal(t, ViewAuth, m.CurrentView())
	assert.Contains(t, m.View(), "signed out")
}

func TestSignupSignsInAndSeedsProfile(t *testing.T) {
	t.Parallel()
	m, d := newApp(t)

	m, cmd := send(t, m, authform.SubmitMsg{Mode: authform.ModeSignup, Email: "ada@example.com", Name: "Ada Lovelace"})
	require.NotNil(t, cmd)
	assert.Equal(t, ViewTasks, m.CurrentView())
	assert.True(t, d.Auth.IsAuthenticated())
	assert.False(t, d.Auth.State().IsLoading)
	assert.Equal(t, "Lovelace", d.Profile.Profile().LastName)
	assert.Equal(t, "Registration successful", m.toast.text)
	assert.Contains(t, m.View(), "Ada Lovelace")
}

func TestNotifyMsgAddsToFeed(t *testing.T) {
	t.Parallel()
	m, d := newApp(t)
	m, _ = send(t, m, authform.SubmitMsg{Mode: authform.ModeLogin, Email: "ada@example.com", Name: "ada"})

	m, _ = send(t, m, ui.NotifyMsg{Kind: model.KindSuccess, Title: "New Task Added Successfully"})
	require.Len(t, d.Notifications.Notifications(), 1)
	assert.Equal(t, "New Task Added Successfully", d.Notifications.Notifications()[0].Title)
	assert.Contains(t, m.View(), "1 unread")

	_, _ = send(t, m, ui.NotifyMsg{Kind: model.NotificationKind("BOGUS"), Title: "x"})
	assert.Len(t, d.Notifications.Notifications(), 1)
}

func TestToastExpiresOnlyForLatest(t *testing.T) {
	t.Parallel()
	m, _ := newApp(t)

	m, _ = send(t, m, ui.ToastMsg{Kind: model.KindInfo, Text: "first"})
	first := m.toast.seq
	m, _ = send(t, m, ui.ToastMsg{Kind: model.KindInfo, Text: "second"})

	m, _ = send(t, m, toastExpiredMsg{seq: first})
	assert.Equal(t, "second", m.toast.text)

	m, _ = send(t, m, toastExpiredMsg{seq: m.toast.seq})
	assert.Empty(t, m.toast.text)
}

func TestViewSwitching(t *testing.T) {
	t.Parallel()
	m, _ := newApp(t)
	m, _ = send(t, m, authform.SubmitMsg{Mode: authform.ModeLogin, Email: "ada@example.com", Name: "ada"})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ViewNotifications, m.CurrentView())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ViewProfile, m.CurrentView())
	m, _ = send(t, m, keyPress("1"))
	assert.Equal(t, ViewTasks, m.CurrentView())

	m, _ = send(t, m, keyPress("?"))
	assert.Equal(t, ViewHelp, m.CurrentView())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewTasks, m.CurrentView())
}

func TestLogoutRunsCascade(t *testing.T) {
	t.Parallel()
	m, d := newApp(t)
	ctx := context.Background()
	m, _ = send(t, m, authform.SubmitMsg{Mode: authform.ModeLogin, Email: "ada@example.com", Name: "ada"})
	d.Tasks.Add(ctx, d.Tasks.NewTask("one"))
	m, _ = send(t, m, ui.NotifyMsg{Kind: model.KindInfo, Title: "hello"})

	m, _ = send(t, m, keyPress("L"))
	assert.Equal(t, ViewAuth, m.CurrentView())
	assert.False(t, d.Auth.IsAuthenticated())
	assert.Zero(t, d.Tasks.Len())
	assert.Empty(t, d.Notifications.Notifications())
	assert.True(t, d.Profile.Profile().IsEmpty())
	assert.Equal(t, "Logged out", m.toast.text)
}

func TestLogoutResetsProfileView(t *testing.T) {
	t.Parallel()
	m, _ := newApp(t)
	m, _ = send(t, m, authform.SubmitMsg{Mode: authform.ModeLogin, Email: "ada@example.com", Name: "ada"})

	m, _ = send(t, m, keyPress("3"))
	m, _ = send(t, m, keyPress("e"))
	require.True(t, m.profileView.Capturing())

	m, _ = m.logout()
	assert.False(t, m.profileView.Capturing())

	m, _ = send(t, m, authform.SubmitMsg{Mode: authform.ModeLogin, Email: "grace@example.com", Name: "grace"})
	m, _ = send(t, m, keyPress("3"))
	assert.Equal(t, ViewProfile, m.CurrentView())
	assert.False(t, m.profileView.Capturing())
}

func TestGlobalKeysIgnoredOnAuthView(t *testing.T) {
	t.Parallel()
	m, _ := newApp(t)

	m, _ = send(t, m, keyPress("2"))
	assert.Equal(t, ViewAuth, m.CurrentView())
}

func TestCommandPalette(t *testing.T) {
	t.Parallel()
	m, d := newApp(t)
	m, _ = send(t, m, authform.SubmitMsg{Mode: authform.ModeLogin, Email: "ada@example.com", Name: "ada"})
	m, _ = send(t, m, ui.NotifyMsg{Kind: model.KindInfo, Title: "hello"})

	m, _ = send(t, m, keyPress(":"))
	assert.Equal(t, ViewCommand, m.CurrentView())

	m, _ = send(t, m, command.CommandMsg(command.FilterUnread))
	assert.Equal(t, ViewNotifications, m.CurrentView())
	assert.Equal(t, model.FilterUnread, d.Notifications.Filter())

	m, _ = send(t, m, keyPress(":"))
	m, _ = send(t, m, command.CommandMsg(command.MarkAllRead))
	assert.Equal(t, ViewNotifications, m.CurrentView())
	assert.Zero(t, d.Notifications.UnreadCount())

	m, _ = send(t, m, keyPress(":"))
	m, _ = send(t, m, command.CancelMsg{})
	assert.Equal(t, ViewNotifications, m.CurrentView())
}
