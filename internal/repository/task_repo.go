package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"task_manager/internal/models"

	"github.com/google/uuid"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

var _ Tasks = (*TaskRepository)(nil)

const (
	insertTaskSQL = `INSERT INTO tasks (id, title, description, expiration_date, status) VALUES (?, ?, ?, ?, ?)`

	selectTaskByIDSQL = `SELECT id, title, description, expiration_date, status FROM tasks WHERE id = ?`

	updateTaskSQL = `UPDATE tasks SET title = ?, description = ?, expiration_date = ?, status = ? WHERE id = ?`

	deleteTaskSQL = `DELETE FROM tasks WHERE id = ?`
)

// Create inserts a new task. If the id is empty, one is generated.
func (r *TaskRepository) Create(ctx context.Context, t models.Task) (models.Task, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.ExpirationDate = t.ExpirationDate.UTC()

	_, err := r.db.ExecContext(ctx, insertTaskSQL,
		t.ID,
		t.Title,
		t.Description,
		t.ExpirationDate,
		t.Status,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task %q: %w", t.ID, err)
	}
	return t, nil
}

// GetByID fetches a single task. A miss is models.ErrTaskNotFound.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (models.Task, error) {
	var t models.Task
	err := r.db.QueryRowContext(ctx, selectTaskByIDSQL, id).
		Scan(&t.ID, &t.Title, &t.Description, &t.ExpirationDate, &t.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, models.ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("select task %q: %w", id, err)
	}
	t.ExpirationDate = t.ExpirationDate.UTC()
	return t, nil
}

// List returns tasks matching the filter, ordered by expiration date.
// Substring matching uses instr() rather than LIKE: sqlite LIKE folds
// ASCII case, and the filter contract is case-sensitive.
func (r *TaskRepository) List(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	var (
		conds []string
		args  []any
	)

	if f.Title != "" {
		conds = append(conds, "instr(title, ?) > 0")
		args = append(args, f.Title)
	}
	if f.Status != "" {
		conds = append(conds, "instr(status, ?) > 0")
		args = append(args, f.Status)
	}

	q := `SELECT id, title, description, expiration_date, status FROM tasks`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY expiration_date ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	out := make([]models.Task, 0, 16)
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.ExpirationDate, &t.Status); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		t.ExpirationDate = t.ExpirationDate.UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task rows: %w", err)
	}
	return out, nil
}

// Update fully replaces title/description/expiration/status for the given
// id. A miss is models.ErrTaskNotFound.
func (r *TaskRepository) Update(ctx context.Context, id string, t models.Task) error {
	res, err := r.db.ExecContext(ctx, updateTaskSQL,
		t.Title,
		t.Description,
		t.ExpirationDate.UTC(),
		t.Status,
		id,
	)
	if err != nil {
		return fmt.Errorf("update task %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for task %q: %w", id, err)
	}
	if n == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}

// Delete removes the task with the given id. A miss is models.ErrTaskNotFound.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteTaskSQL, id)
	if err != nil {
		return fmt.Errorf("delete task %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for task %q: %w", id, err)
	}
	if n == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}
