package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/taskhublabs/taskhub/internal/tasks/domain"
	"github.com/taskhublabs/taskhub/pkg/tasksdk"
)

func jsonDecode(r *http.Request, v any) error {
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

// parseDueDate accepts a bare calendar date or a full RFC 3339 timestamp.
func parseDueDate(s string) (*time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toUserDTO(u domain.User) tasksdk.User {
	return tasksdk.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toTaskDTO(t domain.Task) tasksdk.Task {
	return tasksdk.Task{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Tags:        t.Tags,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskDTOs(tasks []domain.Task) []tasksdk.Task {
	out := make([]tasksdk.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskDTO(t))
	}
	return out
}

func toStatsDTO(s domain.TaskStats) tasksdk.Stats {
	return tasksdk.Stats{
		Total:      s.Total,
		Todo:       s.Todo,
		InProgress: s.InProgress,
		Completed:  s.Completed,
		Low:        s.Low,
		Medium:     s.Medium,
		High:       s.High,
	}
}
