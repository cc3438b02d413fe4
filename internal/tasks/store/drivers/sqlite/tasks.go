package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/taskhublabs/taskhub/internal/tasks/domain"
	"github.com/taskhublabs/taskhub/internal/tasks/store"
)

type tasksRepo struct {
	db dbtx
}

const taskColumns = `id, user_id, title, description, status, priority, due_date, tags, created_at, updated_at`

func (r *tasksRepo) GetTask(ctx context.Context, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

func (r *tasksRepo) ListTasks(ctx context.Context, ownerID string, f store.TaskFilter) ([]domain.Task, error) {
	// ULID primary keys sort by creation time, so ORDER BY id is creation
	// order.
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`
	args := []any{ownerID}

	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.Priority != "" {
		query += ` AND priority = ?`
		args = append(args, string(f.Priority))
	}
	if f.Search != "" {
		query += ` AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)`
		needle := "%" + strings.ToLower(f.Search) + "%"
		args = append(args, needle, needle)
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, description, status, priority, due_date, tags, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, t.Description, string(t.Status), string(t.Priority),
		mapOptionalTime(t.DueDate), joinTags(t.Tags), t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	// user_id is deliberately absent from the SET list: ownership is fixed
	// at creation.
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, tags = ?, updated_at = ?
		 WHERE id = ?`,
		t.Title, t.Description, string(t.Status), string(t.Priority),
		mapOptionalTime(t.DueDate), joinTags(t.Tags), t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tasksRepo) CountTasksByStatus(ctx context.Context, ownerID string) (map[domain.Status]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM tasks WHERE user_id = ? GROUP BY status`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[domain.Status(status)] = n
	}
	return counts, rows.Err()
}

func (r *tasksRepo) CountTasksByPriority(ctx context.Context, ownerID string) (map[domain.Priority]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT priority, COUNT(*) FROM tasks WHERE user_id = ? GROUP BY priority`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Priority]int)
	for rows.Next() {
		var priority string
		var n int
		if err := rows.Scan(&priority, &n); err != nil {
			return nil, err
		}
		counts[domain.Priority(priority)] = n
	}
	return counts, rows.Err()
}

func scanTask(row rowScanner) (domain.Task, error) {
	var (
		t        domain.Task
		status   string
		priority string
		dueDate  sql.NullTime
		tags     string
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &status, &priority,
		&dueDate, &tags, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}

	t.Status = domain.Status(status)
	t.Priority = domain.Priority(priority)
	if dueDate.Valid {
		d := dueDate.Time
		t.DueDate = &d
	}
	t.Tags = splitTags(tags)
	return t, nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Tags are persisted as a space-delimited string. They are short labels,
// whitespace inside a tag is not supported.
func joinTags(tags []string) string {
	return strings.Join(tags, " ")
}

// splitTags parses the stored tag string back into a deduplicated set.
func splitTags(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	parts := strings.Fields(s)
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}
