// Package task implements the in-memory task list and its line codec.
package task

import (
	"errors"
	"iter"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Delimiter separates the description and completion fields of a serialized task.
const Delimiter = ";"

var (
	// ErrEmptyDescription is returned when adding a task with blank text.
	ErrEmptyDescription = errors.New("task description is empty")

	// ErrNoSelection is returned when an index does not address a task.
	ErrNoSelection = errors.New("no task selected")

	// ErrNotFound is returned when no task has the given id.
	ErrNotFound = errors.New("task not found")
)

// ValidationError reports a rejected edit. The list is never mutated when one is returned.
type ValidationError struct {
	Op  string // "add", "complete" or "delete"
	Err error
}

func (e *ValidationError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// Task is a single entry of the list.
// ID is assigned when the task enters the list and is never persisted.
type Task struct {
	ID          uuid.UUID
	Description string
	Completed   bool
}

// String returns the persisted line form of the task.
func (t Task) String() string {
	return t.Description + Delimiter + strconv.FormatBool(t.Completed)
}

// List is an ordered, mutable sequence of tasks. It is not safe for concurrent use.
type List struct {
	tasks []Task
}

// NewList returns a list holding the given tasks in order.
// Tasks without an id are given one.
func NewList(tasks ...Task) *List {
	l := &List{tasks: make([]Task, 0, len(tasks))}
	for _, t := range tasks {
		l.push(t)
	}
	return l
}

func (l *List) push(t Task) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	l.tasks = append(l.tasks, t)
}

// Len returns the number of tasks.
func (l *List) Len() int { return len(l.tasks) }

// At returns the task at index i.
func (l *List) At(i int) (Task, bool) {
	if i < 0 || i >= len(l.tasks) {
		return Task{}, false
	}
	return l.tasks[i], true
}

// Tasks returns a copy of the tasks in order.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// All yields index/task pairs in order.
func (l *List) All() iter.Seq2[int, Task] {
	return func(yield func(int, Task) bool) {
		for i, t := range l.tasks {
			if !yield(i, t) {
				return
			}
		}
	}
}

// IndexOf returns the position of the task with the given id, or -1.
func (l *List) IndexOf(id uuid.UUID) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Add appends an open task. The description is trimmed of surrounding whitespace
// and must not be empty.
func (l *List) Add(description string) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, &ValidationError{Op: "add", Err: ErrEmptyDescription}
	}
	l.push(Task{Description: description})
	return l.tasks[len(l.tasks)-1], nil
}

// Complete replaces the task at index with a completed copy.
// Completing an already completed task is a no-op.
func (l *List) Complete(index int) error {
	if index < 0 || index >= len(l.tasks) {
		return &ValidationError{Op: "complete", Err: ErrNoSelection}
	}
	t := l.tasks[index]
	t.Completed = true
	l.tasks[index] = t
	return nil
}

// Delete removes the task at index, keeping the order of the others.
func (l *List) Delete(index int) error {
	if index < 0 || index >= len(l.tasks) {
		return &ValidationError{Op: "delete", Err: ErrNoSelection}
	}
	l.tasks = append(l.tasks[:index], l.tasks[index+1:]...)
	return nil
}

// CompleteID completes the task with the given id.
func (l *List) CompleteID(id uuid.UUID) error {
	i := l.IndexOf(id)
	if i < 0 {
		return &ValidationError{Op: "complete", Err: ErrNotFound}
	}
	return l.Complete(i)
}

// DeleteID removes the task with the given id.
func (l *List) DeleteID(id uuid.UUID) error {
	i := l.IndexOf(id)
	if i < 0 {
		return &ValidationError{Op: "delete", Err: ErrNotFound}
	}
	return l.Delete(i)
}

// Serialize yields one line per task in list order, without line terminators.
// Descriptions are written as is: a ';' or newline inside one does not survive a round trip.
func (l *List) Serialize() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, t := range l.tasks {
			if !yield(t.String()) {
				return
			}
		}
	}
}

// Deserialize builds a list from persisted lines. Lines that do not carry at
// least two fields are dropped; it never fails.
func Deserialize(lines iter.Seq[string]) *List {
	l := NewList()
	l.Append(lines)
	return l
}

// Append decodes lines onto the end of the list, dropping malformed ones.
func (l *List) Append(lines iter.Seq[string]) {
	for line := range lines {
		if t, ok := ParseLine(line); ok {
			l.push(t)
		}
	}
}

// ParseLine decodes a single persisted line.
func ParseLine(line string) (Task, bool) {
	if line == "" {
		return Task{}, false
	}
	parts := splitFields(line)
	if len(parts) < 2 {
		return Task{}, false
	}
	return Task{Description: parts[0], Completed: parts[1] == "true"}, true
}

// splitFields splits on the delimiter and drops trailing empty fields,
// so "desc;" has a single field.
func splitFields(line string) []string {
	parts := strings.Split(line, Delimiter)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
