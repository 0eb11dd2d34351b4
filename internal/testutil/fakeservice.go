// Package testutil provides fakes and helpers shared by tests.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"todo/internal/service"
)

// DefaultListID is the ID of the fake's default list.
const DefaultListID = "@default"

var (
	// ErrNotFound is returned for unknown lists and tasks.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when several lists share a title.
	ErrAmbiguous = errors.New("ambiguous")
)

// FakeService is an in-memory service.Service. Set the *Err fields to make
// the matching method fail.
type FakeService struct {
	mu     sync.RWMutex
	lists  []service.TaskList
	tasks  map[string][]service.Task
	nextID int

	ListListsErr     error
	DefaultListErr   error
	ResolveListErr   error
	ListOpenTasksErr error
	CreateTaskErr    error
	CompleteTaskErr  error
}

// NewFakeService returns a fake holding an empty default list "My Tasks".
func NewFakeService() *FakeService {
	return &FakeService{
		lists: []service.TaskList{{ID: DefaultListID, Title: "My Tasks", IsDefault: true}},
		tasks: map[string][]service.Task{DefaultListID: nil},
	}
}

// AddList adds an empty list.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if _, ok := f.tasks[id]; !ok {
		f.tasks[id] = nil
	}
}

// AddTask appends an open task with a generated id (t1, t2, ...).
func (f *FakeService) AddTask(listID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], f.newTask(title))
}

// Tasks returns a copy of every task of a list, open or completed.
func (f *FakeService) Tasks(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.tasks[listID])
}

func (f *FakeService) newTask(title string) service.Task {
	f.nextID++
	return service.Task{ID: fmt.Sprintf("t%d", f.nextID), Title: title, Status: service.StatusNeedsAction}
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.lists), nil
}

// DefaultList implements service.Service.
func (f *FakeService) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	return f.find(func(l service.TaskList) bool { return l.IsDefault })
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	name = strings.TrimSpace(name)
	return f.find(func(l service.TaskList) bool { return strings.EqualFold(strings.TrimSpace(l.Title), name) })
}

// find returns the single list matching pred.
func (f *FakeService) find(pred func(service.TaskList) bool) (service.TaskList, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var found []service.TaskList
	for _, l := range f.lists {
		if pred(l) {
			found = append(found, l)
		}
	}
	switch len(found) {
	case 0:
		return service.TaskList{}, ErrNotFound
	case 1:
		return found[0], nil
	}
	return service.TaskList{}, ErrAmbiguous
}

// ListOpenTasks implements service.Service.
func (f *FakeService) ListOpenTasks(ctx context.Context, listID string, page int) ([]service.Task, error) {
	if f.ListOpenTasksErr != nil {
		return nil, f.ListOpenTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	all, ok := f.tasks[listID]
	if !ok {
		return nil, ErrNotFound
	}
	open := slices.DeleteFunc(slices.Clone(all), func(t service.Task) bool {
		return t.Status != service.StatusNeedsAction
	})

	start := (page - 1) * service.PageSize
	if page < 1 || start >= len(open) {
		return nil, nil
	}
	return open[start:min(start+service.PageSize, len(open))], nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID, title string) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return service.Task{}, ErrNotFound
	}
	t := f.newTask(title)
	f.tasks[listID] = append(f.tasks[listID], t)
	return t, nil
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, listID, taskID string) error {
	if f.CompleteTaskErr != nil {
		return f.CompleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := slices.IndexFunc(f.tasks[listID], func(t service.Task) bool { return t.ID == taskID })
	if i < 0 {
		return ErrNotFound
	}
	f.tasks[listID][i].Status = service.StatusCompleted
	return nil
}
