package api_test

import (
	"testing"

	"github.com/taskhublabs/taskhub/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

// TestTaskLifecycle walks a task through create, read, update and delete.
func TestTaskLifecycle(t *testing.T) {
	baseURL, cleanup := setupTasksContainer(t)
	defer cleanup()

	client := tasksdk.NewSDKClient(baseURL)
	ctx := t.Context()

	session := registerAccount(t, client, "Alice", "alice@example.com")

	created, err := session.CreateTask(ctx, tasksdk.CreateTaskRequest{
		Title:       "Water the plants",
		Description: "The ferns on the balcony",
		Priority:    "high",
		DueDate:     "2026-09-15",
		Tags:        []string{"garden", "weekly"},
	})
	require.NoError(t, err)
	require.Equal(t, "todo", created.Status, "status should default to todo")
	require.Equal(t, "high", created.Priority)
	require.NotNil(t, created.DueDate)
	require.Equal(t, []string{"garden", "weekly"}, created.Tags)

	got, err := session.GetTask(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "Water the plants", got.Title)

	newStatus := "completed"
	updated, err := session.UpdateTask(ctx, created.ID, tasksdk.UpdateTaskRequest{
		Status: &newStatus,
	})
	require.NoError(t, err)
	require.Equal(t, "completed", updated.Status)
	require.Equal(t, "Water the plants", updated.Title, "unpatched fields must survive")
	require.NotNil(t, updated.DueDate)

	clearDue := ""
	updated, err = session.UpdateTask(ctx, created.ID, tasksdk.UpdateTaskRequest{
		DueDate: &clearDue,
	})
	require.NoError(t, err)
	require.Nil(t, updated.DueDate, "empty dueDate should clear it")

	require.NoError(t, session.DeleteTask(ctx, created.ID))

	_, err = session.GetTask(ctx, created.ID)
	require.True(t, tasksdk.IsNotFound(err))

	err = session.DeleteTask(ctx, created.ID)
	require.True(t, tasksdk.IsNotFound(err), "second delete should report not found")
}

// TestTaskOwnershipBoundary verifies one user can never see or touch
// another user's tasks.
func TestTaskOwnershipBoundary(t *testing.T) {
	baseURL, cleanup := setupTasksContainer(t)
	defer cleanup()

	client := tasksdk.NewSDKClient(baseURL)
	ctx := t.Context()

	alice := registerAccount(t, client, "Alice", "alice@example.com")
	bob := registerAccount(t, client, "Bob", "bob@example.com")

	task, err := alice.CreateTask(ctx, tasksdk.CreateTaskRequest{Title: "Private plans"})
	require.NoError(t, err)

	_, err = bob.GetTask(ctx, task.ID)
	require.True(t, tasksdk.IsNotFound(err), "foreign get must read as not found")

	title := "hijacked"
	_, err = bob.UpdateTask(ctx, task.ID, tasksdk.UpdateTaskRequest{Title: &title})
	require.True(t, tasksdk.IsNotFound(err), "foreign update must read as not found")

	err = bob.DeleteTask(ctx, task.ID)
	require.True(t, tasksdk.IsNotFound(err), "foreign delete must read as not found")

	bobTasks, err := bob.ListTasks(ctx, tasksdk.TaskListOptions{})
	require.NoError(t, err)
	require.Empty(t, bobTasks)

	// Alice's task is untouched
	got, err := alice.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, "Private plans", got.Title)
}

// TestTwoUserScenario walks the canonical two-account flow: one user's
// task is visible only to them until they delete it.
func TestTwoUserScenario(t *testing.T) {
	baseURL, cleanup := setupTasksContainer(t)
	defer cleanup()

	client := tasksdk.NewSDKClient(baseURL)
	ctx := t.Context()

	alice := registerAccount(t, client, "Alice", "alice@example.com")

	task, err := alice.CreateTask(ctx, tasksdk.CreateTaskRequest{Title: "Buy milk"})
	require.NoError(t, err)

	tasks, err := alice.ListTasks(ctx, tasksdk.TaskListOptions{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, task.ID, tasks[0].ID)

	bob := registerAccount(t, client, "Bob", "bob@example.com")
	_, err = bob.GetTask(ctx, task.ID)
	require.True(t, tasksdk.IsNotFound(err))

	require.NoError(t, alice.DeleteTask(ctx, task.ID))
	_, err = alice.GetTask(ctx, task.ID)
	require.True(t, tasksdk.IsNotFound(err))
}

// TestTaskFilteringAndStats exercises list filters, search and aggregates.
func TestTaskFilteringAndStats(t *testing.T) {
	baseURL, cleanup := setupTasksContainer(t)
	defer cleanup()

	client := tasksdk.NewSDKClient(baseURL)
	ctx := t.Context()

	session := registerAccount(t, client, "Alice", "alice@example.com")

	seed := []tasksdk.CreateTaskRequest{
		{Title: "Water the plants", Status: "todo", Priority: "low"},
		{Title: "Prune the roses", Status: "in-progress", Priority: "medium"},
		{Title: "Order fertiliser", Description: "for the roses", Status: "completed", Priority: "high"},
		{Title: "Fix the fence", Status: "todo", Priority: "high"},
	}
	for _, req := range seed {
		_, err := session.CreateTask(ctx, req)
		require.NoError(t, err)
	}

	t.Run("list preserves creation order", func(t *testing.T) {
		tasks, err := session.ListTasks(ctx, tasksdk.TaskListOptions{})
		require.NoError(t, err)
		require.Len(t, tasks, 4)
		for i, req := range seed {
			require.Equal(t, req.Title, tasks[i].Title)
		}
	})

	t.Run("filter by status", func(t *testing.T) {
		tasks, err := session.ListTasks(ctx, tasksdk.TaskListOptions{Status: "todo"})
		require.NoError(t, err)
		require.Len(t, tasks, 2)
	})

	t.Run("filter by priority and status", func(t *testing.T) {
		tasks, err := session.ListTasks(ctx, tasksdk.TaskListOptions{Status: "todo", Priority: "high"})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.Equal(t, "Fix the fence", tasks[0].Title)
	})

	t.Run("search matches title and description", func(t *testing.T) {
		tasks, err := session.ListTasks(ctx, tasksdk.TaskListOptions{Search: "ROSES"})
		require.NoError(t, err)
		require.Len(t, tasks, 2, "search should span title and description, case-insensitively")
	})

	t.Run("stats add up", func(t *testing.T) {
		stats, err := session.GetStats(ctx)
		require.NoError(t, err)
		require.Equal(t, 4, stats.Total)
		require.Equal(t, 2, stats.Todo)
		require.Equal(t, 1, stats.InProgress)
		require.Equal(t, 1, stats.Completed)
		require.Equal(t, 1, stats.Low)
		require.Equal(t, 1, stats.Medium)
		require.Equal(t, 2, stats.High)
	})

	t.Run("stats follow deletion", func(t *testing.T) {
		tasks, err := session.ListTasks(ctx, tasksdk.TaskListOptions{Status: "completed"})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.NoError(t, session.DeleteTask(ctx, tasks[0].ID))

		stats, err := session.GetStats(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, stats.Total)
		require.Equal(t, 0, stats.Completed)
	})
}
