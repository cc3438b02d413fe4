package service

import (
	"context"
	"testing"
	"time"

	"github.com/taskhublabs/taskhub/internal/tasks/domain"
	"github.com/taskhublabs/taskhub/internal/tasks/store"
	"github.com/stretchr/testify/require"
)

// taskFixture wires a TaskService over a fresh in-memory store with two
// registered users, the usual cast for ownership tests.
type taskFixture struct {
	svc   *TaskService
	alice string
	bob   string
}

func newTaskFixture(t *testing.T) taskFixture {
	t.Helper()
	ctx := context.Background()

	auth := newAuthService(t)
	svc := &TaskService{Store: auth.Store}

	a, err := auth.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "sekrit1"})
	require.NoError(t, err)
	b, err := auth.Register(ctx, RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "sekrit2"})
	require.NoError(t, err)

	return taskFixture{svc: svc, alice: a.User.ID, bob: b.User.ID}
}

func strPtr(s string) *string                  { return &s }
func statusPtr(s domain.Status) *domain.Status { return &s }

func TestTaskCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns owner, id and defaults", func(t *testing.T) {
		f := newTaskFixture(t)

		task, err := f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "Buy milk"})
		require.NoError(t, err)
		require.Equal(t, f.alice, task.UserID)
		require.NotEmpty(t, task.ID)
		require.Equal(t, domain.StatusTodo, task.Status)
		require.Equal(t, domain.PriorityMedium, task.Priority)
		require.False(t, task.CreatedAt.IsZero())
	})

	t.Run("whitespace-only title fails and persists nothing", func(t *testing.T) {
		f := newTaskFixture(t)

		_, err := f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "   "})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)

		tasks, err := f.svc.List(ctx, f.alice, store.TaskFilter{})
		require.NoError(t, err)
		require.Empty(t, tasks)
	})

	t.Run("invalid enum values fail", func(t *testing.T) {
		f := newTaskFixture(t)

		var ve *ValidationError

		_, err := f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "x", Status: "done"})
		require.ErrorAs(t, err, &ve)

		_, err = f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "x", Priority: "urgent"})
		require.ErrorAs(t, err, &ve)
	})

	t.Run("tags are trimmed and deduplicated", func(t *testing.T) {
		f := newTaskFixture(t)

		task, err := f.svc.Create(ctx, f.alice, CreateTaskInput{
			Title: "Tagged",
			Tags:  []string{" home ", "home", "", "urgent"},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"home", "urgent"}, task.Tags)
	})

	t.Run("tags with internal whitespace fail validation", func(t *testing.T) {
		f := newTaskFixture(t)

		_, err := f.svc.Create(ctx, f.alice, CreateTaskInput{
			Title: "Tagged",
			Tags:  []string{"shopping list"},
		})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
	})

	t.Run("tags survive the write-read round trip", func(t *testing.T) {
		f := newTaskFixture(t)

		created, err := f.svc.Create(ctx, f.alice, CreateTaskInput{
			Title: "Tagged",
			Tags:  []string{"shopping", "errands"},
		})
		require.NoError(t, err)

		got, err := f.svc.Get(ctx, f.alice, created.ID)
		require.NoError(t, err)
		require.Equal(t, created.Tags, got.Tags)
	})
}

func TestTaskOwnershipBoundary(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)

	task, err := f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "Alice's task"})
	require.NoError(t, err)

	t.Run("get by another user is ErrNotFound", func(t *testing.T) {
		_, err := f.svc.Get(ctx, f.bob, task.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update by another user is ErrNotFound", func(t *testing.T) {
		_, err := f.svc.Update(ctx, f.bob, task.ID, UpdateTaskInput{Title: strPtr("stolen")})
		require.ErrorIs(t, err, ErrNotFound)

		// And the task is untouched.
		got, err := f.svc.Get(ctx, f.alice, task.ID)
		require.NoError(t, err)
		require.Equal(t, "Alice's task", got.Title)
	})

	t.Run("delete by another user is ErrNotFound", func(t *testing.T) {
		require.ErrorIs(t, f.svc.Delete(ctx, f.bob, task.ID), ErrNotFound)

		_, err := f.svc.Get(ctx, f.alice, task.ID)
		require.NoError(t, err)
	})

	t.Run("owner still sees the task", func(t *testing.T) {
		got, err := f.svc.Get(ctx, f.alice, task.ID)
		require.NoError(t, err)
		require.Equal(t, task.ID, got.ID)
	})
}

func TestTaskUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("partial patch leaves other fields alone", func(t *testing.T) {
		f := newTaskFixture(t)
		task, err := f.svc.Create(ctx, f.alice, CreateTaskInput{
			Title:       "Original",
			Description: "desc",
			Priority:    domain.PriorityHigh,
		})
		require.NoError(t, err)

		got, err := f.svc.Update(ctx, f.alice, task.ID, UpdateTaskInput{Status: statusPtr(domain.StatusCompleted)})
		require.NoError(t, err)
		require.Equal(t, "Original", got.Title)
		require.Equal(t, "desc", got.Description)
		require.Equal(t, domain.PriorityHigh, got.Priority)
		require.Equal(t, domain.StatusCompleted, got.Status)
	})

	t.Run("owner survives any update", func(t *testing.T) {
		f := newTaskFixture(t)
		task, err := f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "Mine"})
		require.NoError(t, err)

		got, err := f.svc.Update(ctx, f.alice, task.ID, UpdateTaskInput{Title: strPtr("Still mine")})
		require.NoError(t, err)
		require.Equal(t, f.alice, got.UserID)
	})

	t.Run("empty title patch is rejected", func(t *testing.T) {
		f := newTaskFixture(t)
		task, err := f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "Keep me"})
		require.NoError(t, err)

		_, err = f.svc.Update(ctx, f.alice, task.ID, UpdateTaskInput{Title: strPtr("  ")})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)

		got, err := f.svc.Get(ctx, f.alice, task.ID)
		require.NoError(t, err)
		require.Equal(t, "Keep me", got.Title)
	})

	t.Run("whitespace tag patch is rejected", func(t *testing.T) {
		f := newTaskFixture(t)
		task, err := f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "Keep me", Tags: []string{"home"}})
		require.NoError(t, err)

		_, err = f.svc.Update(ctx, f.alice, task.ID, UpdateTaskInput{Tags: []string{"shopping list"}})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)

		got, err := f.svc.Get(ctx, f.alice, task.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"home"}, got.Tags)
	})

	t.Run("due date can be set and cleared", func(t *testing.T) {
		f := newTaskFixture(t)
		task, err := f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "Dated"})
		require.NoError(t, err)

		due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		got, err := f.svc.Update(ctx, f.alice, task.ID, UpdateTaskInput{DueDate: &due})
		require.NoError(t, err)
		require.NotNil(t, got.DueDate)

		got, err = f.svc.Update(ctx, f.alice, task.ID, UpdateTaskInput{ClearDueDate: true})
		require.NoError(t, err)
		require.Nil(t, got.DueDate)
	})
}

func TestTaskDelete(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)

	task, err := f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, f.alice, task.ID))

	_, err = f.svc.Get(ctx, f.alice, task.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// Idempotent removal: the second delete reports not found.
	require.ErrorIs(t, f.svc.Delete(ctx, f.alice, task.ID), ErrNotFound)
}

func TestTaskList(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)

	_, err := f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "Buy milk"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "Clean house", Status: domain.StatusCompleted})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.bob, CreateTaskInput{Title: "Bob's chores", Status: domain.StatusCompleted})
	require.NoError(t, err)

	t.Run("status filter scopes to caller and status", func(t *testing.T) {
		tasks, err := f.svc.List(ctx, f.alice, store.TaskFilter{Status: domain.StatusCompleted})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.Equal(t, "Clean house", tasks[0].Title)
	})

	t.Run("invalid filter enum is a validation error", func(t *testing.T) {
		_, err := f.svc.List(ctx, f.alice, store.TaskFilter{Status: "wip"})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
	})

	t.Run("empty result is an empty slice, not nil", func(t *testing.T) {
		tasks, err := f.svc.List(ctx, f.alice, store.TaskFilter{Search: "no-such-task"})
		require.NoError(t, err)
		require.NotNil(t, tasks)
		require.Empty(t, tasks)
	})
}

func TestTaskStats(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)

	_, err := f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "a"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "b", Status: domain.StatusInProgress, Priority: domain.PriorityHigh})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.alice, CreateTaskInput{Title: "c", Status: domain.StatusCompleted})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.bob, CreateTaskInput{Title: "bob's"})
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx, f.alice)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 1, stats.Todo)
	require.Equal(t, 1, stats.InProgress)
	require.Equal(t, 1, stats.Completed)
	require.Equal(t, stats.Total, stats.Todo+stats.InProgress+stats.Completed)
	require.Equal(t, 1, stats.High)

	t.Run("reflects deletes immediately", func(t *testing.T) {
		tasks, err := f.svc.List(ctx, f.alice, store.TaskFilter{Status: domain.StatusCompleted})
		require.NoError(t, err)
		require.NoError(t, f.svc.Delete(ctx, f.alice, tasks[0].ID))

		stats, err := f.svc.Stats(ctx, f.alice)
		require.NoError(t, err)
		require.Equal(t, 2, stats.Total)
		require.Equal(t, 0, stats.Completed)
	})
}
