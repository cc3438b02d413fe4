package tasksdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session performs authenticated operations against the TaskHub service.
// Tokens are plain access tokens with no refresh flow; when one expires
// the caller logs in again.
type Session struct {
	client *SDKClient
	token  string
	user   User
}

func newSession(c *SDKClient, auth AuthResponse) *Session {
	return &Session{client: c, token: auth.Token, user: auth.User}
}

// Token returns the session's bearer token.
func (s *Session) Token() string { return s.token }

// User returns the account the session was created for. It reflects the
// state at login; use Me for the current profile.
func (s *Session) User() User { return s.user }

// Me fetches the current profile of the authenticated user.
func (s *Session) Me(ctx context.Context) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeData(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateProfile replaces the profile fields of the authenticated user.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/auth/profile", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeData(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// TaskListOptions narrows ListTasks results. Zero values mean no filter.
type TaskListOptions struct {
	Status   string
	Priority string
	Search   string
}

// ListTasks returns the user's tasks in creation order, optionally filtered.
func (s *Session) ListTasks(ctx context.Context, opts TaskListOptions) ([]Task, error) {
	path := "/api/tasks"

	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Priority != "" {
		q.Set("priority", opts.Priority)
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var tasks []Task
	if err := decodeData(resp, &tasks, http.StatusOK); err != nil {
		return nil, err
	}

	return tasks, nil
}

// CreateTask creates a task owned by the authenticated user.
func (s *Session) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/tasks", req)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := decodeData(resp, &task, http.StatusCreated); err != nil {
		return nil, err
	}

	return &task, nil
}

// GetTask fetches a single task by ID.
func (s *Session) GetTask(ctx context.Context, id string) (*Task, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := decodeData(resp, &task, http.StatusOK); err != nil {
		return nil, err
	}

	return &task, nil
}

// UpdateTask applies a partial update to a task.
func (s *Session) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*Task, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := decodeData(resp, &task, http.StatusOK); err != nil {
		return nil, err
	}

	return &task, nil
}

// DeleteTask removes a task.
func (s *Session) DeleteTask(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}

	return decodeData(resp, nil, http.StatusOK)
}

// GetStats returns aggregate counters over the user's tasks.
func (s *Session) GetStats(ctx context.Context) (*Stats, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/tasks/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats Stats
	if err := decodeData(resp, &stats, http.StatusOK); err != nil {
		return nil, err
	}

	return &stats, nil
}
