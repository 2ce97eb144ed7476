package handler

import (
	"context"
	"time"

	"github.com/tasklight/tasklight-go/internal/model"
	"github.com/tasklight/tasklight-go/internal/repository"
)

// In-memory stores backing the HTTP tests so the full stack runs without a
// database.

type memUserStore struct {
	nextID int64
	users  map[int64]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{nextID: 1, users: make(map[int64]model.User)}
}

func (s *memUserStore) Create(_ context.Context, user *model.User) error {
	for _, u := range s.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if u.Email != nil && user.Email != nil && *u.Email == *user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email != nil && *u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	out := u
	return &out, nil
}

type memTodoStore struct {
	nextID int64
	todos  map[int64]model.Todo
}

func newMemTodoStore() *memTodoStore {
	return &memTodoStore{nextID: 1, todos: make(map[int64]model.Todo)}
}

func (s *memTodoStore) Create(_ context.Context, ownerID int64, title, description string) (*model.Todo, error) {
	now := time.Now()
	todo := model.Todo{
		ID:          s.nextID,
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Status:      model.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.todos[todo.ID] = todo
	out := todo
	return &out, nil
}

func (s *memTodoStore) GetByID(_ context.Context, ownerID, id int64) (*model.Todo, error) {
	t, ok := s.todos[id]
	if !ok || t.UserID != ownerID {
		return nil, repository.ErrTodoNotFound
	}
	out := t
	return &out, nil
}

func (s *memTodoStore) ListByOwner(_ context.Context, ownerID int64) ([]model.Todo, error) {
	todos := []model.Todo{}
	for id := s.nextID - 1; id >= 1; id-- {
		if t, ok := s.todos[id]; ok && t.UserID == ownerID {
			todos = append(todos, t)
		}
	}
	return todos, nil
}

func (s *memTodoStore) Update(ctx context.Context, ownerID, id int64, patch model.TodoPatch) (*model.Todo, error) {
	t, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	t.UpdatedAt = time.Now()
	s.todos[id] = *t
	out := *t
	return &out, nil
}

func (s *memTodoStore) Toggle(ctx context.Context, ownerID, id int64) (*model.Todo, error) {
	t, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	t.Completed = !t.Completed
	if t.Completed {
		t.Status = model.StatusDone
	} else {
		t.Status = model.StatusPending
	}
	t.UpdatedAt = time.Now()
	s.todos[id] = *t
	out := *t
	return &out, nil
}

func (s *memTodoStore) Delete(_ context.Context, ownerID, id int64) (bool, error) {
	t, ok := s.todos[id]
	if !ok || t.UserID != ownerID {
		return false, nil
	}
	delete(s.todos, id)
	return true, nil
}

func (s *memTodoStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.todos[id]
	return ok, nil
}

func (s *memTodoStore) BelongsToOwner(_ context.Context, id, ownerID int64) (bool, error) {
	t, ok := s.todos[id]
	return ok && t.UserID == ownerID, nil
}
