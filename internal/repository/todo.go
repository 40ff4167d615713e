package repository

import (
	"context"

	"todoapp/internal/domain"
)

// TodoRepository exposes persistence operations for Todo rows. Every lookup
// and mutation that targets a single row filters by both the row id and the
// owning user id, so ownership is enforced by query shape.
type TodoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, todo *domain.Todo) (int64, error)
	Get(ctx context.Context, userID, id int64) (*domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64) ([]domain.Todo, error)
	ListByStatus(ctx context.Context, userID int64, done bool) ([]domain.Todo, error)
	Search(ctx context.Context, userID int64, query string) ([]domain.Todo, error)
}
