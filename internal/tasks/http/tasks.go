package http

import (
	"net/http"

	"github.com/taskhublabs/taskhub/internal/tasks/domain"
	"github.com/taskhublabs/taskhub/internal/tasks/service"
	"github.com/taskhublabs/taskhub/internal/tasks/store"
	"github.com/taskhublabs/taskhub/pkg/httpx"
	"github.com/taskhublabs/taskhub/pkg/tasksdk"
)

// TasksHandler serves the per-user task collection. Every operation is
// scoped to the authenticated caller; tasks of other users are invisible.
type TasksHandler struct {
	TaskService *service.TaskService
}

// HandleList returns the caller's tasks, optionally filtered.
//
//	@Summary		List tasks
//	@Description	Returns the authenticated user's tasks in creation order.
//	@Description	Supports filtering by status, priority and a case-insensitive search over title and description.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status		query		string			false	"Filter by status (todo, in-progress, completed)"
//	@Param			priority	query		string			false	"Filter by priority (low, medium, high)"
//	@Param			search		query		string			false	"Substring to match in title or description"
//	@Success		200			{array}		tasksdk.Task	"Matching tasks"
//	@Failure		400			{object}	httpx.Envelope	"Invalid filter value"
//	@Failure		401			{object}	httpx.Envelope	"Invalid or missing access token"
//	@Failure		500			{object}	httpx.Envelope	"Internal server error"
//	@Router			/api/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.ErrInvalidToken.WriteError(w)
		return
	}

	q := r.URL.Query()
	filter := store.TaskFilter{
		Status:   domain.Status(q.Get("status")),
		Priority: domain.Priority(q.Get("priority")),
		Search:   q.Get("search"),
	}

	tasks, err := h.TaskService.List(ctx, userID, filter)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, toTaskDTOs(tasks))
}

// HandleCreate creates a task owned by the caller.
//
//	@Summary		Create a task
//	@Description	Creates a task owned by the authenticated user. Status defaults to todo and priority to medium.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.CreateTaskRequest	true	"Task fields"
//	@Success		201		{object}	tasksdk.Task				"Created task"
//	@Failure		400		{object}	httpx.Envelope				"Validation failure"
//	@Failure		401		{object}	httpx.Envelope				"Invalid or missing access token"
//	@Failure		500		{object}	httpx.Envelope				"Internal server error"
//	@Router			/api/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.ErrInvalidToken.WriteError(w)
		return
	}

	var req tasksdk.CreateTaskRequest
	if apiErr := decodeJSON(r, &req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	in := service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.Status(req.Status),
		Priority:    domain.Priority(req.Priority),
		Tags:        req.Tags,
	}
	if req.DueDate != "" {
		due, err := parseDueDate(req.DueDate)
		if err != nil {
			httpx.ErrValidation.WithMessage("dueDate must be YYYY-MM-DD or RFC 3339").WriteError(w)
			return
		}
		in.DueDate = due
	}

	task, err := h.TaskService.Create(ctx, userID, in)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusCreated, toTaskDTO(task))
}

// HandleGet returns a single task by ID.
//
//	@Summary		Get a task
//	@Description	Returns one of the authenticated user's tasks. Tasks of other users report not found.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"Task ID"
//	@Success		200	{object}	tasksdk.Task	"The task"
//	@Failure		401	{object}	httpx.Envelope	"Invalid or missing access token"
//	@Failure		404	{object}	httpx.Envelope	"Task not found"
//	@Failure		500	{object}	httpx.Envelope	"Internal server error"
//	@Router			/api/tasks/{id} [get].
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.ErrInvalidToken.WriteError(w)
		return
	}

	task, err := h.TaskService.Get(ctx, userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, toTaskDTO(task))
}

// HandleUpdate applies a partial update to a task.
//
//	@Summary		Update a task
//	@Description	Applies a partial update to one of the authenticated user's tasks. Omitted fields are left unchanged.
//	@Description	An explicit empty dueDate clears the due date. Ownership cannot be changed.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Task ID"
//	@Param			request	body		tasksdk.UpdateTaskRequest	true	"Fields to change"
//	@Success		200		{object}	tasksdk.Task				"Updated task"
//	@Failure		400		{object}	httpx.Envelope				"Validation failure"
//	@Failure		401		{object}	httpx.Envelope				"Invalid or missing access token"
//	@Failure		404		{object}	httpx.Envelope				"Task not found"
//	@Failure		500		{object}	httpx.Envelope				"Internal server error"
//	@Router			/api/tasks/{id} [put].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.ErrInvalidToken.WriteError(w)
		return
	}

	var req tasksdk.UpdateTaskRequest
	if apiErr := decodeJSON(r, &req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	in := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		in.Status = &status
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		in.Priority = &priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			in.ClearDueDate = true
		} else {
			due, err := parseDueDate(*req.DueDate)
			if err != nil {
				httpx.ErrValidation.WithMessage("dueDate must be YYYY-MM-DD or RFC 3339").WriteError(w)
				return
			}
			in.DueDate = due
		}
	}

	task, err := h.TaskService.Update(ctx, userID, r.PathValue("id"), in)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, toTaskDTO(task))
}

// HandleDelete removes a task.
//
//	@Summary		Delete a task
//	@Description	Deletes one of the authenticated user's tasks. Deleting an unknown or foreign task reports not found.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"Task ID"
//	@Success		200	{object}	httpx.Envelope	"Deletion confirmation"
//	@Failure		401	{object}	httpx.Envelope	"Invalid or missing access token"
//	@Failure		404	{object}	httpx.Envelope	"Task not found"
//	@Failure		500	{object}	httpx.Envelope	"Internal server error"
//	@Router			/api/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.TaskService.Delete(ctx, userID, r.PathValue("id")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, nil)
}

// HandleStats returns aggregate counters over the caller's tasks.
//
//	@Summary		Task statistics
//	@Description	Returns per-status and per-priority counts over the authenticated user's tasks.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	tasksdk.Stats	"Aggregate counters"
//	@Failure		401	{object}	httpx.Envelope	"Invalid or missing access token"
//	@Failure		500	{object}	httpx.Envelope	"Internal server error"
//	@Router			/api/tasks/stats [get].
func (h *TasksHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.ErrInvalidToken.WriteError(w)
		return
	}

	stats, err := h.TaskService.Stats(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, toStatsDTO(stats))
}
