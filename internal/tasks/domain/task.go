package domain

import "time"

// Status is a task's progress state.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority is a task's importance level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the enumerated priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work exclusively owned by one user. UserID is fixed at
// creation and never changes for the life of the task. Title is never empty.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     *time.Time // optional calendar date
	Tags        []string   // deduplicated set, order not significant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskStats are per-user aggregate counters, recomputed from the store on
// every call. Total always equals Todo+InProgress+Completed.
type TaskStats struct {
	Total      int
	Todo       int
	InProgress int
	Completed  int

	// Priority breakdown, shown as badges on the dashboard.
	Low    int
	Medium int
	High   int
}
