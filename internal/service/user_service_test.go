package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenAuthenticate(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewUserService(repos.users)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "a@x.com", "alice", "secret1", "secret1")
	require.NoError(t, err)
	assert.NotZero(t, registered.ID)
	assert.Equal(t, "a@x.com", registered.Email)
	assert.Equal(t, "alice", registered.Username)
	assert.Empty(t, registered.PasswordHash, "plaintext hash must not leak out of the service")

	authed, err := svc.Authenticate(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, authed.ID)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewUserService(repos.users)

	_, err := svc.Register(context.Background(), "a@x.com", "alice", "secret1", "secret2")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegisterValidation(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewUserService(repos.users)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		username string
		password string
	}{
		{"missing email", "", "alice", "secret1"},
		{"missing username", "a@x.com", "", "secret1"},
		{"missing password", "a@x.com", "alice", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.username, tt.password, tt.password)
			assert.Error(t, err)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewUserService(repos.users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "alice", "secret1", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@x.com", "alice2", "secret1", "secret1")
	assert.ErrorIs(t, err, ErrDuplicateAccount)

	// the failed insert must not leave a partial row behind
	stored, err := repos.users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewUserService(repos.users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "alice", "secret1", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "b@x.com", "alice", "secret1", "secret1")
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestAuthenticateFailures(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewUserService(repos.users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "alice", "secret1", "secret1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "a@x.com", "wrong"},
		{"unknown email", "b@x.com", "secret1"},
		{"empty password", "a@x.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}
