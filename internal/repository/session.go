package repository

import (
	"context"

	"todoapp/internal/domain"
)

// SessionRepository stores server-side login sessions keyed by token.
type SessionRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}
