package tasklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/keys"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/state"
	"github.com/nhle/dashboard/internal/theme"
	"github.com/nhle/dashboard/internal/ui"
	"github.com/nhle/dashboard/internal/validation"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeConfirmDelete
)

type formBindings struct {
	title   string
	confirm bool
}

// Model is the Bubble Tea model for the ordered task list.
type Model struct {
	mode        mode
	tasks       *state.Tasks
	keys        *keys.KeyMap
	selectedIdx int
	deletingID  string
	form        *huh.Form
	fb          *formBindings
	width       int
	height      int
}

// New creates a task list over tasks.
func New(tasks *state.Tasks, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:   modeList,
		tasks:  tasks,
		keys:   k,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Selected returns the index of the highlighted task.
func (m Model) Selected() int {
	return m.selectedIdx
}

// Capturing reports whether a form has keyboard focus, so global
// shortcuts should not be intercepted.
func (m Model) Capturing() bool {
	return m.mode != modeList
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeList {
			return m.handleListKey(msg)
		}
	}

	return m.updateForm(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	items := m.tasks.Tasks()
	m.clampSelection(len(items))

	switch {
	case key.Matches(msg, m.keys.Down):
		if len(items) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(items)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(items) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(items) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.fb.title = ""
		m.form = m.buildAddForm()
		m.mode = modeAdd
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Toggle):
		if len(items) == 0 {
			return m, nil
		}
		return m, m.toggle(items[m.selectedIdx])

	case key.Matches(msg, m.keys.Delete):
		if len(items) == 0 {
			return m, nil
		}
		t := items[m.selectedIdx]
		m.deletingID = t.ID
		m.fb.confirm = false
		m.form = m.buildConfirmForm(t.Title)
		m.mode = modeConfirmDelete
		return m, m.form.Init()

	case key.Matches(msg, m.keys.MoveUp):
		return m.move(items, m.selectedIdx-1)

	case key.Matches(msg, m.keys.MoveDown):
		return m.move(items, m.selectedIdx+1)
	}
	return m, nil
}

// add appends a task titled title and announces it.
func (m Model) add(title string) tea.Cmd {
	t := m.tasks.NewTask(strings.TrimSpace(title))
	if !m.tasks.Add(context.Background(), t) {
		return nil
	}
	return tea.Batch(
		ui.Notify(model.KindSuccess, "New Task Added Successfully"),
		ui.Toast(model.KindSuccess, "Task added successfully"),
	)
}

func (m Model) toggle(t model.Task) tea.Cmd {
	m.tasks.Toggle(context.Background(), t.ID)

	verb := "Completed"
	if t.Completed {
		verb = "Uncompleted"
	}
	return ui.Notify(model.KindInfo, fmt.Sprintf("Task %s: %s", verb, t.Title))
}

func (m Model) remove(id string) tea.Cmd {
	t, ok := m.tasks.Get(id)
	if !ok {
		return nil
	}
	m.tasks.Remove(context.Background(), id)
	return ui.Toast(model.KindSuccess, fmt.Sprintf("Task %q has been deleted", t.Title))
}

// move shifts the selected task to index to and persists the new order.
func (m Model) move(items []model.Task, to int) (Model, tea.Cmd) {
	from := m.selectedIdx
	if len(items) < 2 || to < 0 || to >= len(items) {
		return m, nil
	}

	m.tasks.Reorder(context.Background(), model.MoveTask(items, from, to))
	m.selectedIdx = to
	return m, ui.Notify(model.KindInfo, "Tasks Order Updated")
}

func (m *Model) clampSelection(n int) {
	if m.selectedIdx >= n {
		m.selectedIdx = n - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}
}

func (m Model) buildAddForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task title").
				Placeholder("What needs to be done?").
				Value(&m.fb.title).
				Validate(func(s string) error {
					return validation.Struct(validation.TaskTitle{Title: s})
				}),
		),
	).WithWidth(ui.FormWidth(m.width)).WithHeight(ui.FormHeight(m.height))
}

func (m Model) buildConfirmForm(title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete task %q?", title)).
				Description("This cannot be undone.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(ui.FormWidth(m.width)).WithHeight(ui.FormHeight(m.height))
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil || m.mode == modeList {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		var done tea.Cmd
		switch m.mode {
		case modeAdd:
			done = m.add(m.fb.title)
			m.selectedIdx = m.tasks.Len() - 1
		case modeConfirmDelete:
			if m.fb.confirm {
				done = m.remove(m.deletingID)
			}
		}
		m.mode = modeList
		m.deletingID = ""
		m.clampSelection(m.tasks.Len())
		return m, done

	case huh.StateAborted:
		m.mode = modeList
		m.deletingID = ""
		return m, nil
	}
	return m, cmd
}

// View renders the task list or the active form.
func (m Model) View() string {
	if m.mode != modeList && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}

	var b strings.Builder
	items := m.tasks.Tasks()

	done := 0
	for _, t := range items {
		if t.Completed {
			done++
		}
	}
	b.WriteString(theme.TitleStyle.Render(fmt.Sprintf("Tasks (%d/%d done)", done, len(items))))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(theme.EmptyStyle.Render("No tasks yet. Press 'a' to add one."))
	}
	for i, t := range items {
		box := "[ ]"
		title := t.Title
		if t.Completed {
			box = "[x]"
			title = theme.CompletedStyle.Render(title)
		}
		label := box + " " + title

		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(label))
		} else {
			b.WriteString(theme.ListItemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("a add | x toggle | d delete | K/J move | j/k select"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
