package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"todoapp/internal/repository"
	"todoapp/internal/repository/sqlite"
)

type testRepos struct {
	users    repository.UserRepository
	todos    repository.TodoRepository
	sessions repository.SessionRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	repos := testRepos{
		users:    sqlite.NewUserRepository(db),
		todos:    sqlite.NewTodoRepository(db),
		sessions: sqlite.NewSessionRepository(db),
	}
	require.NoError(t, repos.users.Init(ctx))
	require.NoError(t, repos.todos.Init(ctx))
	require.NoError(t, repos.sessions.Init(ctx))
	return repos
}

func registerTestUser(t *testing.T, users UserService, email, username string) int64 {
	t.Helper()
	user, err := users.Register(context.Background(), email, username, "secret1", "secret1")
	require.NoError(t, err)
	return user.ID
}
