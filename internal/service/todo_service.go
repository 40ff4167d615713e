package service

import (
	"context"
	"errors"
	"strings"

	"todoapp/internal/domain"
	"todoapp/internal/repository"
)

var (
	// ErrTodoNotFound covers both a missing todo and one owned by another
	// user; callers cannot distinguish the two.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrDuplicateTitle is returned when a title is already used by any todo
	// in the store, regardless of owner.
	ErrDuplicateTitle = errors.New("title already taken")
	// ErrTitleRequired is returned for an empty or blank title.
	ErrTitleRequired = errors.New("title is required")
)

// TodoService owns all todo lifecycle and query operations. Every method is
// scoped to the given user id; no method can touch another user's rows.
type TodoService interface {
	List(ctx context.Context, userID int64) ([]domain.Todo, error)
	ListByStatus(ctx context.Context, userID int64, done bool) ([]domain.Todo, error)
	Search(ctx context.Context, userID int64, query string) ([]domain.Todo, error)
	Get(ctx context.Context, userID, id int64) (*domain.Todo, error)
	Create(ctx context.Context, userID int64, title, description string, done bool) (*domain.Todo, error)
	Edit(ctx context.Context, userID, id int64, title, description string, done bool) (*domain.Todo, error)
	Toggle(ctx context.Context, userID, id int64) (*domain.Todo, error)
	Delete(ctx context.Context, userID, id int64) error
}

type todoService struct {
	todos repository.TodoRepository
}

func NewTodoService(todos repository.TodoRepository) TodoService {
	return &todoService{todos: todos}
}

func (s *todoService) List(ctx context.Context, userID int64) ([]domain.Todo, error) {
	return s.todos.List(ctx, userID)
}

func (s *todoService) ListByStatus(ctx context.Context, userID int64, done bool) ([]domain.Todo, error) {
	return s.todos.ListByStatus(ctx, userID, done)
}

// Search returns the user's todos whose title or description contains query,
// case-insensitively. An empty query matches everything, so Search(user, "")
// equals List(user).
func (s *todoService) Search(ctx context.Context, userID int64, query string) ([]domain.Todo, error) {
	return s.todos.Search(ctx, userID, query)
}

func (s *todoService) Get(ctx context.Context, userID, id int64) (*domain.Todo, error) {
	todo, err := s.todos.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Create(ctx context.Context, userID int64, title, description string, done bool) (*domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	todo := &domain.Todo{
		Title:       title,
		Description: description,
		IsDone:      done,
		UserID:      userID,
	}

	if _, err := s.todos.Create(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}
	return todo, nil
}

// Edit overwrites title, description and is_done. The id, owner and creation
// time are untouched.
func (s *todoService) Edit(ctx context.Context, userID, id int64, title, description string, done bool) (*domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	todo, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	todo.Title = title
	todo.Description = description
	todo.IsDone = done

	if err := s.todos.Update(ctx, todo); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrDuplicateTitle
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return todo, nil
}

// Toggle flips is_done and nothing else.
func (s *todoService) Toggle(ctx context.Context, userID, id int64) (*domain.Todo, error) {
	todo, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	todo.IsDone = !todo.IsDone

	if err := s.todos.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return todo, nil
}

// Delete removes the todo if it exists and is owned by the user. It succeeds
// silently either way; only a storage failure is reported.
func (s *todoService) Delete(ctx context.Context, userID, id int64) error {
	return s.todos.Delete(ctx, userID, id)
}
