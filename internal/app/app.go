package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/dashboard/internal/keys"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/state"
	"github.com/nhle/dashboard/internal/ui"
	"github.com/nhle/dashboard/internal/ui/authform"
	"github.com/nhle/dashboard/internal/ui/command"
	helpview "github.com/nhle/dashboard/internal/ui/help"
	"github.com/nhle/dashboard/internal/ui/notifications"
	"github.com/nhle/dashboard/internal/ui/profileform"
	"github.com/nhle/dashboard/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewAuth ViewState = iota
	ViewTasks
	ViewNotifications
	ViewProfile
	ViewHelp
	ViewCommand
)

func (v ViewState) String() string {
	switch v {
	case ViewAuth:
		return "Sign in"
	case ViewTasks:
		return "Tasks"
	case ViewNotifications:
		return "Notifications"
	case ViewProfile:
		return "Profile"
	case ViewHelp:
		return "Help"
	case ViewCommand:
		return "Command"
	default:
		return ""
	}
}

// toastExpiredMsg clears the toast it was scheduled for.
type toastExpiredMsg struct {
	seq int
}

type toast struct {
	kind model.NotificationKind
	text string
	seq  int
}

// Options configures the root model.
type Options struct {
	ToastDuration time.Duration
	Avatar        profileform.AvatarOptions
	Logger        *zap.Logger
}

// Model is the root Bubble Tea model that routes between views and owns
// the dashboard state.
type Model struct {
	currentView   ViewState
	previousView  ViewState
	layout        ui.Layout
	dash          *state.Dashboard
	keys          *keys.KeyMap
	logger        *zap.Logger
	authView      authform.Model
	taskView      tasklist.Model
	feedView      notifications.Model
	profileView   profileform.Model
	helpView      helpview.Model
	commandView   command.Model
	toast         toast
	toastDuration time.Duration
	avatarOpts    profileform.AvatarOptions
	ready         bool
}

// New creates the root model over d.
func New(d *state.Dashboard, opts Options) Model {
	k := keys.DefaultKeyMap()

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = 3 * time.Second
	}

	m := Model{
		currentView:   ViewAuth,
		dash:          d,
		keys:          k,
		logger:        logger.Named("app"),
		authView:      authform.New(d.Auth, 80, 24),
		taskView:      tasklist.New(d.Tasks, k, 80, 24),
		feedView:      notifications.New(d.Notifications, k, 80, 24),
		profileView:   profileform.New(d.Profile, k, opts.Avatar, 80, 24),
		helpView:      helpview.New(k, 80, 24),
		commandView:   command.New(80, 24),
		toastDuration: opts.ToastDuration,
		avatarOpts:    opts.Avatar,
	}
	if d.Auth.IsAuthenticated() {
		m.currentView = ViewTasks
	}
	return m
}

// CurrentView returns the active view.
func (m Model) CurrentView() ViewState {
	return m.currentView
}

// Init starts the auth form or the feed refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.authView.Init(),
		m.feedView.Init(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.authView.SetSize(w, h)
		m.taskView.SetSize(w, h)
		m.feedView.SetSize(w, h)
		m.profileView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		return m, nil

	case authform.SubmitMsg:
		return m.signIn(msg)

	case ui.NotifyMsg:
		m.notify(msg.Kind, msg.Title)
		return m, nil

	case ui.ToastMsg:
		return m, m.showToast(msg.Kind, msg.Text)

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.execute(string(msg))

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case toastExpiredMsg:
		if msg.seq == m.toast.seq {
			m.toast.text = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.currentView != ViewAuth && !m.capturing() {
			if next, cmd, handled := m.handleGlobalKey(msg); handled {
				return next, cmd
			}
		}
	}

	return m.updateViews(msg)
}

// handleGlobalKey processes shortcuts that apply to every signed-in view.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
		} else {
			m.previousView = m.currentView
			m.currentView = ViewHelp
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus(), true

	case key.Matches(msg, m.keys.Back):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}

	case key.Matches(msg, m.keys.NextView):
		switch m.currentView {
		case ViewTasks:
			m.currentView = ViewNotifications
		case ViewNotifications:
			m.currentView = ViewProfile
		default:
			m.currentView = ViewTasks
		}
		return m, nil, true

	case key.Matches(msg, m.keys.ViewTasks):
		m.currentView = ViewTasks
		return m, nil, true

	case key.Matches(msg, m.keys.ViewNotifications):
		m.currentView = ViewNotifications
		return m, nil, true

	case key.Matches(msg, m.keys.ViewProfile):
		m.currentView = ViewProfile
		return m, nil, true

	case key.Matches(msg, m.keys.Logout):
		next, cmd := m.logout()
		return next, cmd, true
	}
	return m, nil, false
}

// updateViews forwards msg to the active view. Non-key messages also reach
// the feed so its refresh tick keeps running while hidden.
func (m Model) updateViews(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAuth:
		m.authView, cmd = m.authView.Update(msg)
	case ViewTasks:
		m.taskView, cmd = m.taskView.Update(msg)
	case ViewNotifications:
		m.feedView, cmd = m.feedView.Update(msg)
	case ViewProfile:
		m.profileView, cmd = m.profileView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	if _, isKey := msg.(tea.KeyMsg); !isKey && m.currentView != ViewNotifications {
		var feedCmd tea.Cmd
		m.feedView, feedCmd = m.feedView.Update(msg)
		cmd = tea.Batch(cmd, feedCmd)
	}

	return m, cmd
}

func (m Model) capturing() bool {
	switch m.currentView {
	case ViewTasks:
		return m.taskView.Capturing()
	case ViewNotifications:
		return m.feedView.Capturing()
	case ViewProfile:
		return m.profileView.Capturing()
	case ViewCommand:
		return true
	default:
		return false
	}
}

func (m Model) signIn(msg authform.SubmitMsg) (Model, tea.Cmd) {
	ctx := context.Background()

	m.dash.Auth.SetLoading(true)
	var u model.User
	var cmd tea.Cmd
	if msg.Mode == authform.ModeSignup {
		u = m.dash.Signup(ctx, msg.Email, msg.Name)
		cmd = m.showToast(model.KindSuccess, "Registration successful")
	} else {
		u = m.dash.Login(ctx, msg.Email, msg.Name)
		cmd = m.showToast(model.KindSuccess, fmt.Sprintf("Welcome back, %s", u.FirstName))
	}

	m.logger.Info("signed in", zap.Int64("user_id", u.ID), zap.Bool("signup", msg.Mode == authform.ModeSignup))
	m.currentView = ViewTasks
	return m, cmd
}

func (m Model) logout() (Model, tea.Cmd) {
	m.dash.Logout(context.Background())
	m.logger.Info("signed out")

	m.currentView = ViewAuth
	m.taskView = tasklist.New(m.dash.Tasks, m.keys, m.layout.ContentWidth(), m.layout.ContentHeight())
	m.feedView = notifications.New(m.dash.Notifications, m.keys, m.layout.ContentWidth(), m.layout.ContentHeight())
	m.profileView = profileform.New(m.dash.Profile, m.keys, m.avatarOpts, m.layout.ContentWidth(), m.layout.ContentHeight())
	return m, tea.Batch(m.authView.Reset(), m.showToast(model.KindInfo, "Logged out"))
}

// execute runs a command palette entry.
func (m Model) execute(c string) (Model, tea.Cmd) {
	ctx := context.Background()
	feed := m.dash.Notifications

	switch c {
	case command.Tasks:
		m.currentView = ViewTasks
	case command.Notifications:
		m.currentView = ViewNotifications
	case command.Profile:
		m.currentView = ViewProfile
	case command.FilterAll:
		feed.SetFilter(model.FilterAll)
		m.currentView = ViewNotifications
	case command.FilterUnread:
		feed.SetFilter(model.FilterUnread)
		m.currentView = ViewNotifications
	case command.FilterRead:
		feed.SetFilter(model.FilterRead)
		m.currentView = ViewNotifications
	case command.MarkAllRead:
		feed.MarkAllAsRead(ctx)
	case command.ClearAll:
		feed.ClearAll(ctx)
		return m, m.showToast(model.KindSuccess, "All notifications cleared")
	case command.Logout:
		return m.logout()
	case command.Quit:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) notify(kind model.NotificationKind, title string) {
	if _, err := m.dash.Notifications.Add(context.Background(), kind, title, time.Time{}); err != nil {
		m.logger.Error("adding notification", zap.String("title", title), zap.Error(err))
	}
}

func (m *Model) showToast(kind model.NotificationKind, text string) tea.Cmd {
	m.toast.seq++
	m.toast.kind = kind
	m.toast.text = text

	seq := m.toast.seq
	return tea.Tick(m.toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Dashboard · "+m.currentView.String(), m.summary())

	var statusBar string
	if m.toast.text != "" {
		statusBar = m.layout.RenderToast(m.toast.kind, m.toast.text)
	} else {
		statusBar = m.layout.RenderStatusBar(m.keyHints())
	}

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewAuth:
		return m.authView.View()
	case ViewTasks:
		return m.taskView.View()
	case ViewNotifications:
		return m.feedView.View()
	case ViewProfile:
		return m.profileView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// summary returns the signed-in user and unread count for the header.
func (m Model) summary() string {
	u, ok := m.dash.Auth.User()
	if !ok {
		return "signed out"
	}
	unread := m.dash.Notifications.UnreadCount()
	if unread == 0 {
		return u.Name
	}
	return fmt.Sprintf("%s · %d unread", u.Name, unread)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewAuth:
		return "enter next | ctrl+t switch login/signup | ctrl+c quit"
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	default:
		if m.capturing() {
			return "enter submit | esc cancel"
		}
		return "tab switch view | 1 tasks | 2 notifications | 3 profile | L log out | ? help | q quit"
	}
}
