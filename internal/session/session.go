// Package session adapts user commands from an interactive front-end to the task list.
//
// A Session owns one loaded list. Edits stay in memory until Save; nothing is
// written implicitly when a front-end exits.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"todo/internal/task"
	"todo/internal/taskfile"
)

// NoSelection is the selection value when nothing is selected.
const NoSelection = -1

// Storage persists a whole list.
type Storage interface {
	Save(l *task.List) error
}

// Session is one edit session over a task list. It is not safe for concurrent use.
type Session struct {
	tasks   *task.List
	storage Storage
	dirty   bool
}

// New returns a session editing tasks, saved through storage.
func New(tasks *task.List, storage Storage) *Session {
	if tasks == nil {
		tasks = task.NewList()
	}
	return &Session{tasks: tasks, storage: storage}
}

// Tasks returns the current tasks in display order.
func (s *Session) Tasks() []task.Task { return s.tasks.Tasks() }

// Dirty reports whether there are edits that have not been saved.
func (s *Session) Dirty() bool { return s.dirty }

// Add appends a task from user-entered text.
func (s *Session) Add(text string) (task.Task, error) {
	t, err := s.tasks.Add(text)
	if err != nil {
		return task.Task{}, err
	}
	s.dirty = true
	return t, nil
}

// Complete marks the selected task completed.
func (s *Session) Complete(selection int) error {
	if err := s.tasks.Complete(selection); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// Delete removes the selected task.
func (s *Session) Delete(selection int) error {
	if err := s.tasks.Delete(selection); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// CompleteID marks the task with the given id completed.
func (s *Session) CompleteID(id uuid.UUID) error {
	if err := s.tasks.CompleteID(id); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// DeleteID removes the task with the given id.
func (s *Session) DeleteID(id uuid.UUID) error {
	if err := s.tasks.DeleteID(id); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// Save writes the whole list. On failure the session keeps its edits.
func (s *Session) Save() error {
	if s.storage == nil {
		return errors.New("no storage configured")
	}
	if err := s.storage.Save(s.tasks); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Warning renders err as the message shown to the user.
func Warning(err error) string {
	var verr *task.ValidationError
	if errors.As(err, &verr) {
		switch {
		case errors.Is(err, task.ErrEmptyDescription):
			return "please enter a task description"
		case verr.Op == "complete":
			return "select a task to mark as completed"
		case verr.Op == "delete":
			return "select a task to delete"
		}
	}

	var perr *taskfile.PersistenceError
	if errors.As(err, &perr) {
		if perr.Op == "load" {
			return fmt.Sprintf("error loading tasks: %v", perr.Err)
		}
		return fmt.Sprintf("error saving tasks: %v", perr.Err)
	}
	return err.Error()
}
