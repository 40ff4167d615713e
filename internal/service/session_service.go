package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"todoapp/internal/domain"
	"todoapp/internal/repository"
)

// ErrUnauthenticated indicates there is no valid session for the request.
var ErrUnauthenticated = errors.New("not authenticated")

// SessionService manages the Anonymous -> Authenticated -> Anonymous
// lifecycle of browser sessions. Tokens are opaque random values; all session
// state lives in the store, so revocation takes effect immediately.
type SessionService interface {
	Issue(ctx context.Context, userID int64) (*domain.Session, error)
	Resolve(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, token string) error
}

type sessionService struct {
	sessions repository.SessionRepository
	ttl      time.Duration
}

func NewSessionService(sessions repository.SessionRepository, ttl time.Duration) SessionService {
	return &sessionService{
		sessions: sessions,
		ttl:      ttl,
	}
}

func (s *sessionService) Issue(ctx context.Context, userID int64) (*domain.Session, error) {
	now := time.Now().UTC()
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve returns the user id bound to the token, or ErrUnauthenticated for
// missing, unknown, or expired tokens. Expired rows are deleted on the way out.
func (s *sessionService) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrUnauthenticated
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUnauthenticated
		}
		return 0, err
	}

	if session.Expired(time.Now().UTC()) {
		_ = s.sessions.Delete(ctx, token)
		return 0, ErrUnauthenticated
	}

	return session.UserID, nil
}

// Revoke ends the session. Revoking an unknown token is a no-op.
func (s *sessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}
