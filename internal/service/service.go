// Package service defines the backend-agnostic interface for remote task lists.
package service

import "context"

// Service is a remote task backend used by push and pull.
// Commands never import a backend SDK directly.
type Service interface {
	// ListLists returns every task list of the account.
	ListLists(ctx context.Context) ([]TaskList, error)

	// DefaultList returns the account's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListOpenTasks returns open tasks for a list.
	// page is 1-based; page size is 100.
	// Returns an empty slice past the last page.
	ListOpenTasks(ctx context.Context, listID string, page int) ([]Task, error)

	// CreateTask creates a task in the list and returns it.
	CreateTask(ctx context.Context, listID, title string) (Task, error)

	// CompleteTask marks a task as completed.
	CompleteTask(ctx context.Context, listID, taskID string) error
}

// AuthError reports missing or unusable credentials. Msg is shown to the user as is.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }
