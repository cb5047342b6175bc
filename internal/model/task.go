package model

// Task is a single entry in the user's ordered task list.
type Task struct {
	// ID is the creation time in Unix milliseconds, formatted as a string.
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// MoveTask returns a copy of tasks with the element at from moved to index
// to, shifting the elements in between. Out-of-range indexes return an
// unchanged copy.
func MoveTask(tasks []Task, from, to int) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}

// TaskIndex returns the position of the task with the given id, or -1.
func TaskIndex(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
