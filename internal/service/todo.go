package service

import (
	"context"
	"errors"
	"strings"

	"github.com/tasklight/tasklight-go/internal/model"
	"github.com/tasklight/tasklight-go/internal/repository"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidStatus = errors.New("status must be one of pending, in_progress, done")
	ErrTodoNotFound  = errors.New("todo not found")
)

// TodoService handles todo business rules over an owner-scoped store.
type TodoService struct {
	todos repository.TodoStore
}

// NewTodoService creates a new TodoService.
func NewTodoService(todos repository.TodoStore) *TodoService {
	return &TodoService{todos: todos}
}

// Create adds a new pending todo for the owner. The title must be non-empty
// after trimming.
func (s *TodoService) Create(ctx context.Context, ownerID int64, req model.CreateTodoRequest) (*model.Todo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	return s.todos.Create(ctx, ownerID, title, req.Description)
}

// List returns the owner's todos, newest first.
func (s *TodoService) List(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	return s.todos.ListByOwner(ctx, ownerID)
}

// Get returns a single owned todo.
func (s *TodoService) Get(ctx context.Context, ownerID, id int64) (*model.Todo, error) {
	todo, err := s.todos.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return todo, nil
}

// Update applies a partial update to an owned todo. Setting the status
// overwrites the completed flag; setting completed alone flips the status
// between pending and done. An empty patch just returns the current row.
func (s *TodoService) Update(ctx context.Context, ownerID, id int64, patch model.TodoPatch) (*model.Todo, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, ErrTitleRequired
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if patch.Empty() {
		return s.Get(ctx, ownerID, id)
	}

	patch.Normalize()

	todo, err := s.todos.Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return todo, nil
}

// Toggle flips the completed flag of an owned todo, moving the status between
// pending and done. Applying it twice restores the original pair.
func (s *TodoService) Toggle(ctx context.Context, ownerID, id int64) (*model.Todo, error) {
	todo, err := s.todos.Toggle(ctx, ownerID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return todo, nil
}

// Delete removes an owned todo. Deleting an id that does not exist at all is
// a no-op success; an id owned by another user is reported as not found and
// the row is left untouched.
func (s *TodoService) Delete(ctx context.Context, ownerID, id int64) error {
	deleted, err := s.todos.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}

	exists, err := s.todos.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return ErrTodoNotFound
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrTodoNotFound) {
		return ErrTodoNotFound
	}
	return err
}
