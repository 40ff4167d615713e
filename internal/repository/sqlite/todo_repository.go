package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todoapp/internal/domain"
	"todoapp/internal/repository"
)

const createTodosTable = `
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	is_done INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	user_id INTEGER NOT NULL REFERENCES users(id)
);
`

const todoColumns = `id, title, description, is_done, created_at, updated_at, user_id`

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) repository.TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTodosTable); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	return nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (int64, error) {
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO todos (title, description, is_done, created_at, updated_at, user_id)
VALUES (?, ?, ?, ?, ?, ?)`,
		todo.Title,
		todo.Description,
		todo.IsDone,
		todo.CreatedAt,
		todo.UpdatedAt,
		todo.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrConflict
		}
		return 0, fmt.Errorf("insert todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("todo last insert id: %w", err)
	}
	todo.ID = id
	return id, nil
}

func (r *TodoRepository) Get(ctx context.Context, userID, id int64) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+todoColumns+`
FROM todos
WHERE user_id = ? AND id = ?`,
		userID,
		id,
	)
	return scanTodo(row)
}

func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	todo.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE todos
SET title=?, description=?, is_done=?, updated_at=?
WHERE user_id=? AND id=?`,
		todo.Title,
		todo.Description,
		todo.IsDone,
		todo.UpdatedAt,
		todo.UserID,
		todo.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("update todo: %w", err)
	}

	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("todo update rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, userID, id int64) error {
	// idempotent: deleting an absent or non-owned row is not an error
	if _, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE user_id=? AND id=?`, userID, id); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) List(ctx context.Context, userID int64) ([]domain.Todo, error) {
	return r.queryTodos(ctx, `
SELECT `+todoColumns+`
FROM todos
WHERE user_id = ?
ORDER BY id ASC`,
		userID,
	)
}

func (r *TodoRepository) ListByStatus(ctx context.Context, userID int64, done bool) ([]domain.Todo, error) {
	return r.queryTodos(ctx, `
SELECT `+todoColumns+`
FROM todos
WHERE user_id = ? AND is_done = ?
ORDER BY id ASC`,
		userID,
		done,
	)
}

// Search matches query as a case-insensitive substring of title or
// description. An empty query matches every row, since every string contains
// the empty substring.
func (r *TodoRepository) Search(ctx context.Context, userID int64, query string) ([]domain.Todo, error) {
	return r.queryTodos(ctx, `
SELECT `+todoColumns+`
FROM todos
WHERE user_id = ?
  AND (lower(title) LIKE '%' || lower(?) || '%'
   OR lower(description) LIKE '%' || lower(?) || '%')
ORDER BY id ASC`,
		userID,
		query,
		query,
	)
}

func (r *TodoRepository) queryTodos(ctx context.Context, query string, args ...any) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}

	return todos, rows.Err()
}

func scanTodo(scanner interface {
	Scan(dest ...any) error
}) (*domain.Todo, error) {
	var todo domain.Todo
	if err := scanner.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.IsDone,
		&todo.CreatedAt,
		&todo.UpdatedAt,
		&todo.UserID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &todo, nil
}
