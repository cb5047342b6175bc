package state

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/store"
)

// Tasks owns the ordered task list. Every mutation rewrites the whole
// stored sequence.
type Tasks struct {
	adapter *store.Adapter
	ids     idSource
	logger  *zap.Logger
	tasks   []model.Task
}

// NewTasks loads the stored sequence, falling back to an empty list.
func NewTasks(ctx context.Context, a *store.Adapter, opts ...Option) *Tasks {
	o := buildOptions(opts)
	t := &Tasks{
		adapter: a,
		ids:     idSource{clock: o.clock},
		logger:  o.logger.Named("tasks"),
		tasks:   []model.Task{},
	}

	var stored []model.Task
	if a.Read(ctx, store.KeyTasks, &stored) && stored != nil {
		t.tasks = stored
	}
	for _, task := range t.tasks {
		if id, err := strconv.ParseInt(task.ID, 10, 64); err == nil && id > t.ids.last {
			t.ids.last = id
		}
	}
	return t
}

// Tasks returns a copy of the sequence in display order.
func (t *Tasks) Tasks() []model.Task {
	out := make([]model.Task, len(t.tasks))
	copy(out, t.tasks)
	return out
}

// Len returns the number of tasks.
func (t *Tasks) Len() int {
	return len(t.tasks)
}

// Get returns the task with the given id.
func (t *Tasks) Get(id string) (model.Task, bool) {
	idx := model.TaskIndex(t.tasks, id)
	if idx < 0 {
		return model.Task{}, false
	}
	return t.tasks[idx], true
}

// NewTask builds an open task with a fresh timestamp id. It does not add
// the task to the list.
func (t *Tasks) NewTask(title string) model.Task {
	return model.Task{
		ID:    strconv.FormatInt(t.ids.next(), 10),
		Title: title,
	}
}

// Add appends task to the end of the list. A task whose id is already
// present is ignored, keeping ids unique. It reports whether task was added.
func (t *Tasks) Add(ctx context.Context, task model.Task) bool {
	if model.TaskIndex(t.tasks, task.ID) >= 0 {
		t.logger.Warn("ignoring duplicate task id", zap.String("task_id", task.ID))
		return false
	}
	t.tasks = append(t.tasks, task)
	t.persist(ctx)
	return true
}

// Remove deletes the task with the given id. Unknown ids are ignored.
func (t *Tasks) Remove(ctx context.Context, id string) {
	if idx := model.TaskIndex(t.tasks, id); idx >= 0 {
		t.tasks = append(t.tasks[:idx], t.tasks[idx+1:]...)
	}
	t.persist(ctx)
}

// Toggle flips the completed flag of the task with the given id.
// Unknown ids are ignored.
func (t *Tasks) Toggle(ctx context.Context, id string) {
	if idx := model.TaskIndex(t.tasks, id); idx >= 0 {
		t.tasks[idx].Completed = !t.tasks[idx].Completed
	}
	t.persist(ctx)
}

// Reorder replaces the list with ordered, which the caller computed as a
// permutation of the current list. It is stored as given.
func (t *Tasks) Reorder(ctx context.Context, ordered []model.Task) {
	t.replace(ctx, ordered)
}

// SetTasks replaces the whole list.
func (t *Tasks) SetTasks(ctx context.Context, tasks []model.Task) {
	t.replace(ctx, tasks)
}

// Reset empties the list.
func (t *Tasks) Reset(ctx context.Context) {
	t.replace(ctx, nil)
}

func (t *Tasks) replace(ctx context.Context, tasks []model.Task) {
	next := make([]model.Task, len(tasks))
	copy(next, tasks)
	t.tasks = next
	t.persist(ctx)
}

func (t *Tasks) persist(ctx context.Context) {
	t.adapter.Write(ctx, store.KeyTasks, t.tasks)
}
