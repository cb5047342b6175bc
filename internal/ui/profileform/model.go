package profileform

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/avatar"
	"github.com/nhle/dashboard/internal/keys"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/state"
	"github.com/nhle/dashboard/internal/theme"
	"github.com/nhle/dashboard/internal/ui"
	"github.com/nhle/dashboard/internal/validation"
)

type mode int

const (
	modeView mode = iota
	modeEdit
	modeAvatar
)

// AvatarOptions bounds encoded avatar images.
type AvatarOptions struct {
	MaxDimension int
	Quality      int
}

type formBindings struct {
	firstName string
	lastName  string
	email     string
	age       string
	path      string
}

// Model is the Bubble Tea model for viewing and editing the profile.
type Model struct {
	mode    mode
	profile *state.Profile
	keys    *keys.KeyMap
	opts    AvatarOptions
	form    *huh.Form
	fb      *formBindings
	errMsg  string
	width   int
	height  int
}

// New creates a profile view over p.
func New(p *state.Profile, k *keys.KeyMap, opts AvatarOptions, width, height int) Model {
	return Model{
		mode:    modeView,
		profile: p,
		keys:    k,
		opts:    opts,
		fb:      &formBindings{},
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Capturing reports whether a form has keyboard focus.
func (m Model) Capturing() bool {
	return m.mode != modeView
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeView {
			return m.handleKey(msg)
		}
	}

	if m.mode == modeView || m.form == nil {
		return m, nil
	}
	return m.updateForm(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		p := m.profile.Profile()
		m.fb.firstName = p.FirstName
		m.fb.lastName = p.LastName
		m.fb.email = p.Email
		m.fb.age = p.Age
		m.errMsg = ""
		m.form = m.buildEditForm()
		m.mode = modeEdit
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Avatar):
		m.fb.path = ""
		m.errMsg = ""
		m.form = m.buildAvatarForm()
		m.mode = modeAvatar
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		var done tea.Cmd
		if m.mode == modeEdit {
			done = m.save()
		} else {
			done = m.setAvatar(m.fb.path)
		}
		m.mode = modeView
		return m, done
	case huh.StateAborted:
		m.mode = modeView
		return m, nil
	}
	return m, cmd
}

// save validates the bound fields and merges them into the profile.
func (m *Model) save() tea.Cmd {
	fields := validation.ProfileFields{
		FirstName: strings.TrimSpace(m.fb.firstName),
		LastName:  strings.TrimSpace(m.fb.lastName),
		Email:     strings.TrimSpace(m.fb.email),
		Age:       strings.TrimSpace(m.fb.age),
	}
	if err := validation.Struct(fields); err != nil {
		m.errMsg = err.Error()
		return ui.Toast(model.KindError, err.Error())
	}

	m.profile.Update(context.Background(), model.ProfileUpdate{
		FirstName: &fields.FirstName,
		LastName:  &fields.LastName,
		Email:     &fields.Email,
		Age:       &fields.Age,
	})
	return tea.Batch(
		ui.Notify(model.KindSuccess, "Profile Updated Successfully"),
		ui.Toast(model.KindSuccess, "Profile saved"),
	)
}

// setAvatar encodes the image at path and stores it on the profile.
func (m *Model) setAvatar(path string) tea.Cmd {
	path = model.ExpandHome(strings.TrimSpace(path))
	if path == "" {
		return nil
	}

	dataURL, err := avatar.EncodeFile(path, m.opts.MaxDimension, m.opts.Quality)
	if err != nil {
		m.errMsg = err.Error()
		return ui.Toast(model.KindError, "Could not load picture")
	}

	m.profile.SetAvatar(context.Background(), dataURL)
	return ui.Notify(model.KindSuccess, "Profile Picture Updated Successfully")
}

func (m Model) buildEditForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&m.fb.firstName).
				Validate(func(s string) error {
					return validation.Field("First name", strings.TrimSpace(s), "required")
				}),
			huh.NewInput().
				Title("Last name").
				Value(&m.fb.lastName),
			huh.NewInput().
				Title("Email").
				Value(&m.fb.email).
				Validate(func(s string) error {
					return validation.Field("Email", strings.TrimSpace(s), "required,email")
				}),
			huh.NewInput().
				Title("Age").
				Placeholder("optional").
				Value(&m.fb.age).
				Validate(func(s string) error {
					return validation.Field("Age", strings.TrimSpace(s), "age")
				}),
		),
	).WithWidth(ui.FormWidth(m.width)).WithHeight(ui.FormHeight(m.height))
}

func (m Model) buildAvatarForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Picture").
				Description("Path to a PNG, JPEG or GIF image").
				Placeholder("~/Pictures/me.png").
				Value(&m.fb.path),
		),
	).WithWidth(ui.FormWidth(m.width)).WithHeight(ui.FormHeight(m.height))
}

// View renders the profile or the active form.
func (m Model) View() string {
	if m.mode != modeView && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}

	p := m.profile.Profile()
	label := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(12)
	row := func(name, value string) string {
		if value == "" {
			value = theme.EmptyStyle.Render("not set")
		}
		return label.Render(name) + value
	}

	picture := ""
	if p.Avatar != "" {
		picture = fmt.Sprintf("set (%d KB)", (len(p.Avatar)+1023)/1024)
	}

	lines := []string{
		theme.TitleStyle.Render("Profile"),
		row("First name", p.FirstName),
		row("Last name", p.LastName),
		row("Email", p.Email),
		row("Age", p.Age),
		row("Picture", picture),
		"",
	}
	if m.errMsg != "" {
		lines = append(lines, theme.ErrorStyle.Render(m.errMsg), "")
	}
	lines = append(lines, theme.HelpStyle.Render("e edit | p set picture"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
