package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/taskhublabs/taskhub/internal/tasks/domain"
	"github.com/taskhublabs/taskhub/internal/tasks/store"
	"github.com/taskhublabs/taskhub/pkg/idx"
	"github.com/taskhublabs/taskhub/pkg/slogx"
)

// TaskService enforces ownership and validation over the task store. Every
// operation takes the caller's user ID explicitly and only ever touches
// that user's tasks.
type TaskService struct {
	Store store.Store
}

// CreateTaskInput carries the fields a caller may set at creation. Zero
// values for Status and Priority select the defaults.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.Status
	Priority    domain.Priority
	DueDate     *time.Time
	Tags        []string
}

// UpdateTaskInput is a partial patch. Nil pointers leave the field as-is.
// There is no owner field: ownership is immutable by construction, so an
// update request supplying a different owner has nothing to write to.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.Status
	Priority    *domain.Priority
	DueDate     *time.Time
	// ClearDueDate removes the due date; it wins over DueDate.
	ClearDueDate bool
	// Tags replaces the tag set when non-nil.
	Tags []string
}

// List returns the caller's tasks in creation order, optionally filtered.
// Filter enum values must be valid or empty.
func (s *TaskService) List(ctx context.Context, callerID string, f store.TaskFilter) ([]domain.Task, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, invalidf("status must be one of todo, in-progress, completed")
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return nil, invalidf("priority must be one of low, medium, high")
	}
	f.Search = strings.TrimSpace(f.Search)

	tasks, err := s.Store.Tasks().ListTasks(ctx, callerID, f)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// Get returns the task when it exists and the caller owns it. Absence and
// ownership mismatch are both ErrNotFound.
func (s *TaskService) Get(ctx context.Context, callerID, taskID string) (domain.Task, error) {
	return s.getOwned(ctx, callerID, taskID)
}

// Create validates the input and persists a new task owned by the caller.
func (s *TaskService) Create(ctx context.Context, callerID string, in CreateTaskInput) (domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Task{}, invalidf("title is required")
	}

	status := in.Status
	if status == "" {
		status = domain.StatusTodo
	}
	if !status.Valid() {
		return domain.Task{}, invalidf("status must be one of todo, in-progress, completed")
	}

	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return domain.Task{}, invalidf("priority must be one of low, medium, high")
	}

	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return domain.Task{}, err
	}

	now := time.Now().UTC()
	task := domain.Task{
		ID:          idx.New().String(),
		UserID:      callerID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Tasks().CreateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}

	slogx.FromContext(ctx).Info("task created", "task_id", task.ID, "user_id", callerID)
	return task, nil
}

// Update applies a partial patch to a task the caller owns, re-validating
// any supplied field. The stored owner reference is never written.
func (s *TaskService) Update(ctx context.Context, callerID, taskID string, in UpdateTaskInput) (domain.Task, error) {
	task, err := s.getOwned(ctx, callerID, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return domain.Task{}, invalidf("title is required")
		}
		task.Title = title
	}
	if in.Description != nil {
		task.Description = strings.TrimSpace(*in.Description)
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return domain.Task{}, invalidf("status must be one of todo, in-progress, completed")
		}
		task.Status = *in.Status
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return domain.Task{}, invalidf("priority must be one of low, medium, high")
		}
		task.Priority = *in.Priority
	}
	if in.ClearDueDate {
		task.DueDate = nil
	} else if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.Tags != nil {
		tags, err := normalizeTags(in.Tags)
		if err != nil {
			return domain.Task{}, err
		}
		task.Tags = tags
	}

	task.UpdatedAt = time.Now().UTC()

	if err := s.Store.Tasks().UpdateTask(ctx, task); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, ErrNotFound
		}
		return domain.Task{}, err
	}
	return task, nil
}

// Delete removes a task the caller owns. Deleting an absent or foreign
// task is ErrNotFound, so a second delete of the same id fails.
func (s *TaskService) Delete(ctx context.Context, callerID, taskID string) error {
	if _, err := s.getOwned(ctx, callerID, taskID); err != nil {
		return err
	}

	if err := s.Store.Tasks().DeleteTask(ctx, taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	slogx.FromContext(ctx).Info("task deleted", "task_id", taskID, "user_id", callerID)
	return nil
}

// Stats recomputes the caller's aggregate counters from the store. No
// caching: the numbers reflect the persisted state at call time.
func (s *TaskService) Stats(ctx context.Context, callerID string) (domain.TaskStats, error) {
	byStatus, err := s.Store.Tasks().CountTasksByStatus(ctx, callerID)
	if err != nil {
		return domain.TaskStats{}, err
	}
	byPriority, err := s.Store.Tasks().CountTasksByPriority(ctx, callerID)
	if err != nil {
		return domain.TaskStats{}, err
	}

	stats := domain.TaskStats{
		Todo:       byStatus[domain.StatusTodo],
		InProgress: byStatus[domain.StatusInProgress],
		Completed:  byStatus[domain.StatusCompleted],
		Low:        byPriority[domain.PriorityLow],
		Medium:     byPriority[domain.PriorityMedium],
		High:       byPriority[domain.PriorityHigh],
	}
	stats.Total = stats.Todo + stats.InProgress + stats.Completed
	return stats, nil
}

// getOwned fetches a task and verifies ownership, collapsing "missing" and
// "not yours" into the same ErrNotFound.
func (s *TaskService) getOwned(ctx context.Context, callerID, taskID string) (domain.Task, error) {
	task, err := s.Store.Tasks().GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, ErrNotFound
		}
		return domain.Task{}, err
	}
	if task.UserID != callerID {
		return domain.Task{}, ErrNotFound
	}
	return task, nil
}

// normalizeTags trims, drops empties and deduplicates while keeping first
// occurrence order. Tags are single whitespace-free identifiers; internal
// whitespace would not survive the round trip through storage, so it is
// rejected rather than silently split.
func normalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if strings.IndexFunc(tag, unicode.IsSpace) >= 0 {
			return nil, invalidf("tags must not contain whitespace")
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out, nil
}
