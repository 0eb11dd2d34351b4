package service

// Remote task statuses.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// PageSize is the number of tasks per ListOpenTasks page.
const PageSize = 100

// Task is a task as stored by the remote backend.
type Task struct {
	ID     string
	Title  string
	Status string
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
