package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tasklight/tasklight-go/internal/model"
)

var ErrTodoNotFound = errors.New("todo not found")

const todoColumns = `id, user_id, title, description, completed, status, created_at, updated_at`

// TodoRepository handles todo persistence operations. All queries that take
// an owner are scoped to it in SQL, so another user's todo is
// indistinguishable from a missing one.
type TodoRepository struct {
	db *sql.DB
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create inserts a new pending todo and returns the freshly read row, so the
// caller sees server-assigned defaults and timestamps rather than an
// in-memory echo.
func (r *TodoRepository) Create(ctx context.Context, ownerID int64, title, description string) (*model.Todo, error) {
	query := `INSERT INTO todos (user_id, title, description) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, ownerID, title, description)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, ownerID, id)
}

// GetByID retrieves a todo by ID, scoped to its owner.
func (r *TodoRepository) GetByID(ctx context.Context, ownerID, id int64) (*model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = ? AND user_id = ?`
	return scanTodo(r.db.QueryRowContext(ctx, query, id, ownerID))
}

// ListByOwner retrieves all todos for a user, most recently created first.
// The id tiebreak keeps the order stable for rows created in the same instant.
func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = ? ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Description,
			&t.Completed, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

// Update applies the set fields of the patch to an owned todo and returns the
// row after the update. The patch is expected to already satisfy the
// completed/status invariant (see model.TodoPatch.Normalize). updated_at is
// refreshed on every call.
func (r *TodoRepository) Update(ctx context.Context, ownerID, id int64, patch model.TodoPatch) (*model.Todo, error) {
	assignments := []string{"updated_at = CURRENT_TIMESTAMP(6)"}
	args := []any{}

	if patch.Title != nil {
		assignments = append(assignments, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		assignments = append(assignments, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Completed != nil {
		assignments = append(assignments, "completed = ?")
		args = append(args, *patch.Completed)
	}
	if patch.Status != nil {
		assignments = append(assignments, "status = ?")
		args = append(args, string(*patch.Status))
	}

	query := `UPDATE todos SET ` + strings.Join(assignments, ", ") + ` WHERE id = ? AND user_id = ?`
	args = append(args, id, ownerID)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}

	// The read doubles as the existence check: an unmatched WHERE above
	// affected nothing and surfaces as ErrTodoNotFound here.
	return r.GetByID(ctx, ownerID, id)
}

// Toggle flips the completed flag and derives the matching status, done for
// a completed todo and pending otherwise. The read-modify-write runs in a
// transaction so concurrent toggles cannot lose an update.
func (r *TodoRepository) Toggle(ctx context.Context, ownerID, id int64) (*model.Todo, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = ? AND user_id = ? FOR UPDATE`
	todo, err := scanTodo(tx.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		return nil, err
	}

	completed := !todo.Completed
	status := model.StatusPending
	if completed {
		status = model.StatusDone
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE todos SET completed = ?, status = ?, updated_at = CURRENT_TIMESTAMP(6) WHERE id = ?`,
		completed, string(status), id,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, ownerID, id)
}

// Delete removes an owned todo and reports whether a row was deleted.
func (r *TodoRepository) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Exists reports whether any todo with the given ID exists, regardless of
// owner. Used to tell an idempotent delete from a forbidden one.
func (r *TodoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM todos WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// BelongsToOwner reports whether the todo exists and is owned by the user.
func (r *TodoRepository) BelongsToOwner(ctx context.Context, id, ownerID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM todos WHERE id = ? AND user_id = ?`, id, ownerID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*model.Todo, error) {
	t := &model.Todo{}
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description,
		&t.Completed, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return t, nil
}
