package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/taskhublabs/taskhub/internal/tasks/service"
	"github.com/taskhublabs/taskhub/internal/tasks/store/drivers/sqlite"
	"github.com/taskhublabs/taskhub/pkg/httpx"
	"github.com/taskhublabs/taskhub/pkg/jwtx"
	"github.com/taskhublabs/taskhub/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "taskhub-test")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(signer, "test", st, logger)
	router.AuthService = &service.AuthService{
		Store:     st,
		Signer:    signer,
		Issuer:    "taskhub-test",
		AccessTTL: time.Hour,
	}
	router.TaskService = &service.TaskService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// doJSON issues a request with an optional JSON body and bearer token and
// decodes the response envelope.
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, httpx.Envelope) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env httpx.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

// decodeData remarshals the envelope data into a typed value.
func decodeData[T any](t *testing.T, env httpx.Envelope) T {
	t.Helper()

	b, err := json.Marshal(env.Data)
	require.NoError(t, err)

	var v T
	require.NoError(t, json.Unmarshal(b, &v))
	return v
}

func registerUser(t *testing.T, srv *httptest.Server, name, email string) tasksdk.AuthResponse {
	t.Helper()

	status, env := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", tasksdk.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "sekrit1",
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Success)
	return decodeData[tasksdk.AuthResponse](t, env)
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	auth := registerUser(t, srv, "Alice", "alice@example.com")
	require.NotEmpty(t, auth.Token)
	require.Equal(t, "alice@example.com", auth.User.Email)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		status, env := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", tasksdk.RegisterRequest{
			Name:     "Alice Again",
			Email:    "alice@example.com",
			Password: "sekrit2",
		})
		require.Equal(t, http.StatusConflict, status)
		require.False(t, env.Success)
		require.Equal(t, httpx.CodeConflict, env.Error.Code)
	})

	t.Run("login with correct password", func(t *testing.T) {
		status, env := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", tasksdk.LoginRequest{
			Email:    "alice@example.com",
			Password: "sekrit1",
		})
		require.Equal(t, http.StatusOK, status)
		got := decodeData[tasksdk.AuthResponse](t, env)
		require.Equal(t, auth.User.ID, got.User.ID)
		require.NotEmpty(t, got.Token)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		status1, env1 := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", tasksdk.LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong",
		})
		status2, env2 := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", tasksdk.LoginRequest{
			Email:    "nobody@example.com",
			Password: "sekrit1",
		})
		require.Equal(t, http.StatusUnauthorized, status1)
		require.Equal(t, http.StatusUnauthorized, status2)
		require.Equal(t, env1.Error.Code, env2.Error.Code)
		require.Equal(t, env1.Error.Message, env2.Error.Message)
	})

	t.Run("malformed body is a validation error", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/auth/register", bytes.NewBufferString("{not json"))
		require.NoError(t, err)
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestProfileEndpoints(t *testing.T) {
	srv := newTestServer(t)
	auth := registerUser(t, srv, "Alice", "alice@example.com")

	t.Run("me requires a token", func(t *testing.T) {
		status, env := doJSON(t, srv, http.MethodGet, "/api/auth/me", "", nil)
		require.Equal(t, http.StatusUnauthorized, status)
		require.False(t, env.Success)
	})

	t.Run("me returns the profile", func(t *testing.T) {
		status, env := doJSON(t, srv, http.MethodGet, "/api/auth/me", auth.Token, nil)
		require.Equal(t, http.StatusOK, status)
		user := decodeData[tasksdk.User](t, env)
		require.Equal(t, auth.User.ID, user.ID)
		require.Equal(t, "Alice", user.Name)
	})

	t.Run("profile update changes name and bio", func(t *testing.T) {
		status, env := doJSON(t, srv, http.MethodPut, "/api/auth/profile", auth.Token, tasksdk.UpdateProfileRequest{
			Name:  "Alice Cooper",
			Email: "alice@example.com",
			Bio:   "gardener",
		})
		require.Equal(t, http.StatusOK, status)
		user := decodeData[tasksdk.User](t, env)
		require.Equal(t, "Alice Cooper", user.Name)
		require.Equal(t, "gardener", user.Bio)
	})

	t.Run("profile update rejects taken email", func(t *testing.T) {
		registerUser(t, srv, "Bob", "bob@example.com")
		status, _ := doJSON(t, srv, http.MethodPut, "/api/auth/profile", auth.Token, tasksdk.UpdateProfileRequest{
			Name:  "Alice Cooper",
			Email: "bob@example.com",
		})
		require.Equal(t, http.StatusConflict, status)
	})
}

func TestTaskEndpoints(t *testing.T) {
	srv := newTestServer(t)
	alice := registerUser(t, srv, "Alice", "alice@example.com")
	bob := registerUser(t, srv, "Bob", "bob@example.com")

	var created tasksdk.Task

	t.Run("create with defaults", func(t *testing.T) {
		status, env := doJSON(t, srv, http.MethodPost, "/api/tasks", alice.Token, tasksdk.CreateTaskRequest{
			Title:   "Water the plants",
			Tags:    []string{"garden", "weekly"},
			DueDate: "2026-09-15",
		})
		require.Equal(t, http.StatusCreated, status)
		created = decodeData[tasksdk.Task](t, env)
		require.Equal(t, "todo", created.Status)
		require.Equal(t, "medium", created.Priority)
		require.Equal(t, alice.User.ID, created.UserID)
		require.NotNil(t, created.DueDate)
		require.Equal(t, []string{"garden", "weekly"}, created.Tags)
	})

	t.Run("create rejects blank title", func(t *testing.T) {
		status, env := doJSON(t, srv, http.MethodPost, "/api/tasks", alice.Token, tasksdk.CreateTaskRequest{
			Title: "   ",
		})
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, httpx.CodeValidation, env.Error.Code)
	})

	t.Run("create rejects whitespace in tags", func(t *testing.T) {
		status, env := doJSON(t, srv, http.MethodPost, "/api/tasks", alice.Token, tasksdk.CreateTaskRequest{
			Title: "Tagged",
			Tags:  []string{"shopping list"},
		})
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, httpx.CodeValidation, env.Error.Code)
	})

	t.Run("create rejects bad due date", func(t *testing.T) {
		status, _ := doJSON(t, srv, http.MethodPost, "/api/tasks", alice.Token, tasksdk.CreateTaskRequest{
			Title:   "Bad date",
			DueDate: "next tuesday",
		})
		require.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("get own task", func(t *testing.T) {
		status, env := doJSON(t, srv, http.MethodGet, "/api/tasks/"+created.ID, alice.Token, nil)
		require.Equal(t, http.StatusOK, status)
		got := decodeData[tasksdk.Task](t, env)
		require.Equal(t, created.ID, got.ID)
	})

	t.Run("foreign task reads as not found", func(t *testing.T) {
		status, env := doJSON(t, srv, http.MethodGet, "/api/tasks/"+created.ID, bob.Token, nil)
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, httpx.CodeNotFound, env.Error.Code)
	})

	t.Run("partial update", func(t *testing.T) {
		newStatus := "in-progress"
		status, env := doJSON(t, srv, http.MethodPut, "/api/tasks/"+created.ID, alice.Token, tasksdk.UpdateTaskRequest{
			Status: &newStatus,
		})
		require.Equal(t, http.StatusOK, status)
		got := decodeData[tasksdk.Task](t, env)
		require.Equal(t, "in-progress", got.Status)
		require.Equal(t, "Water the plants", got.Title)
		require.NotNil(t, got.DueDate)
	})

	t.Run("empty dueDate clears it", func(t *testing.T) {
		clear := ""
		status, env := doJSON(t, srv, http.MethodPut, "/api/tasks/"+created.ID, alice.Token, tasksdk.UpdateTaskRequest{
			DueDate: &clear,
		})
		require.Equal(t, http.StatusOK, status)
		got := decodeData[tasksdk.Task](t, env)
		require.Nil(t, got.DueDate)
	})

	t.Run("foreign update reads as not found", func(t *testing.T) {
		title := "hijacked"
		status, _ := doJSON(t, srv, http.MethodPut, "/api/tasks/"+created.ID, bob.Token, tasksdk.UpdateTaskRequest{
			Title: &title,
		})
		require.Equal(t, http.StatusNotFound, status)
	})

	t.Run("list is scoped to the caller", func(t *testing.T) {
		status, env := doJSON(t, srv, http.MethodGet, "/api/tasks", bob.Token, nil)
		require.Equal(t, http.StatusOK, status)
		tasks := decodeData[[]tasksdk.Task](t, env)
		require.Empty(t, tasks)

		status, env = doJSON(t, srv, http.MethodGet, "/api/tasks", alice.Token, nil)
		require.Equal(t, http.StatusOK, status)
		tasks = decodeData[[]tasksdk.Task](t, env)
		require.Len(t, tasks, 1)
	})

	t.Run("list rejects invalid status filter", func(t *testing.T) {
		status, _ := doJSON(t, srv, http.MethodGet, "/api/tasks?status=bogus", alice.Token, nil)
		require.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("search filter matches title", func(t *testing.T) {
		status, env := doJSON(t, srv, http.MethodGet, "/api/tasks?search=plants", alice.Token, nil)
		require.Equal(t, http.StatusOK, status)
		tasks := decodeData[[]tasksdk.Task](t, env)
		require.Len(t, tasks, 1)

		status, env = doJSON(t, srv, http.MethodGet, "/api/tasks?search=zebra", alice.Token, nil)
		require.Equal(t, http.StatusOK, status)
		tasks = decodeData[[]tasksdk.Task](t, env)
		require.Empty(t, tasks)
	})

	t.Run("stats reflect the caller's tasks", func(t *testing.T) {
		status, env := doJSON(t, srv, http.MethodGet, "/api/tasks/stats", alice.Token, nil)
		require.Equal(t, http.StatusOK, status)
		stats := decodeData[tasksdk.Stats](t, env)
		require.Equal(t, 1, stats.Total)
		require.Equal(t, 1, stats.InProgress)
		require.Equal(t, 1, stats.Medium)
	})

	t.Run("delete then get reports not found", func(t *testing.T) {
		status, env := doJSON(t, srv, http.MethodDelete, "/api/tasks/"+created.ID, alice.Token, nil)
		require.Equal(t, http.StatusOK, status)
		require.True(t, env.Success)

		status, _ = doJSON(t, srv, http.MethodDelete, "/api/tasks/"+created.ID, alice.Token, nil)
		require.Equal(t, http.StatusNotFound, status)
	})
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/livez")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health tasksdk.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "ok", health.Status)

	resp2, err := srv.Client().Get(srv.URL + "/readyz")
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var ready tasksdk.HealthResponse
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&ready))
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}
