package authform

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/state"
	"github.com/nhle/dashboard/internal/theme"
	"github.com/nhle/dashboard/internal/ui"
	"github.com/nhle/dashboard/internal/validation"
)

// Mode selects between the login and signup forms.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// SubmitMsg is emitted once the form passes validation.
type SubmitMsg struct {
	Mode  Mode
	Email string
	Name  string
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name     string
	email    string
	password string
	confirm  string
}

// Model is the Bubble Tea model for the login and signup screens.
type Model struct {
	auth   *state.Auth
	mode   Mode
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates the auth form in login mode.
func New(auth *state.Auth, width, height int) Model {
	m := Model{
		auth:   auth,
		mode:   ModeLogin,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

// Mode reports which form is showing.
func (m Model) Mode() Mode {
	return m.mode
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Reset clears every field and returns to the login form.
func (m *Model) Reset() tea.Cmd {
	*m.fb = formBindings{}
	m.mode = ModeLogin
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+t" {
		if m.mode == ModeLogin {
			m.mode = ModeSignup
		} else {
			m.mode = ModeLogin
		}
		m.fb.password, m.fb.confirm = "", ""
		m.auth.ClearError()
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submit()
	case huh.StateAborted:
		m.form = m.buildForm()
		return m, m.form.Init()
	}
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	email := strings.TrimSpace(m.fb.email)
	name := strings.TrimSpace(m.fb.name)

	var err error
	if m.mode == ModeSignup {
		err = validation.Struct(validation.Signup{
			Name:            name,
			Email:           email,
			Password:        m.fb.password,
			ConfirmPassword: m.fb.confirm,
		})
	} else {
		err = validation.Struct(validation.Credentials{
			Email:    email,
			Password: m.fb.password,
		})
		name = localPart(email)
	}

	m.fb.password, m.fb.confirm = "", ""
	if err != nil {
		msg := sentence(err.Error())
		m.auth.SetError(&msg)
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	m.auth.ClearError()
	mode := m.mode
	return m, func() tea.Msg { return SubmitMsg{Mode: mode, Email: email, Name: name} }
}

// localPart returns the part of an address before the '@'.
// sentence upper-cases the first letter of an error message for display.
func sentence(msg string) string {
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

// View renders the form with any auth error above it.
func (m Model) View() string {
	title := "Welcome Back"
	hint := "ctrl+t create an account"
	if m.mode == ModeSignup {
		title = "Join Us Today"
		hint = "ctrl+t sign in instead"
	}

	parts := []string{theme.TitleStyle.Render(title)}
	if st := m.auth.State(); st.Error != nil {
		parts = append(parts, theme.ErrorStyle.Render(*st.Error))
	}
	parts = append(parts, m.form.View(), theme.HelpStyle.Render(hint))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.form = m.form.WithWidth(ui.FormWidth(width)).WithHeight(ui.FormHeight(height))
}

func (m Model) buildForm() *huh.Form {
	var fields []huh.Field
	if m.mode == ModeSignup {
		fields = append(fields,
			huh.NewInput().
				Title("Full name").
				Placeholder("Ada Lovelace").
				Value(&m.fb.name).
				Validate(func(s string) error {
					return validation.Field("Name", strings.TrimSpace(s), "required,min=2")
				}),
		)
	}

	fields = append(fields,
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&m.fb.email).
			Validate(func(s string) error {
				return validation.Field("Email", strings.TrimSpace(s), "required,email")
			}),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&m.fb.password).
			Validate(func(s string) error {
				return validation.Field("Password", s, "required,min=6")
			}),
	)

	if m.mode == ModeSignup {
		fields = append(fields,
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.confirm),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(ui.FormWidth(m.width)).WithHeight(ui.FormHeight(m.height))
}
