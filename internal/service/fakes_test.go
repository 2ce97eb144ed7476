package service

import (
	"context"
	"sync"
	"time"

	"github.com/tasklight/tasklight-go/internal/model"
	"github.com/tasklight/tasklight-go/internal/repository"
)

// In-memory stores mirroring the repository contracts, including owner
// scoping and the read-after-write shape of the SQL implementations.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[int64]model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

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
	s.users[user.ID] = cloneUser(*user)
	return nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			out := cloneUser(u)
			return &out, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email != nil && *u.Email == email {
			out := cloneUser(u)
			return &out, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

func (s *fakeUserStore) delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func cloneUser(u model.User) model.User {
	out := u
	if u.Email != nil {
		email := *u.Email
		out.Email = &email
	}
	return out
}

type fakeTodoStore struct {
	mu     sync.Mutex
	nextID int64
	todos  map[int64]model.Todo
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{nextID: 1, todos: make(map[int64]model.Todo)}
}

func (s *fakeTodoStore) Create(_ context.Context, ownerID int64, title, description string) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	todo := model.Todo{
		ID:          s.nextID,
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Completed:   false,
		Status:      model.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.todos[todo.ID] = todo
	out := todo
	return &out, nil
}

func (s *fakeTodoStore) GetByID(_ context.Context, ownerID, id int64) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOwnedLocked(ownerID, id)
}

func (s *fakeTodoStore) getOwnedLocked(ownerID, id int64) (*model.Todo, error) {
	t, ok := s.todos[id]
	if !ok || t.UserID != ownerID {
		return nil, repository.ErrTodoNotFound
	}
	out := t
	return &out, nil
}

func (s *fakeTodoStore) ListByOwner(_ context.Context, ownerID int64) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := []model.Todo{}
	// Newest first: ids are assigned in creation order.
	for id := s.nextID - 1; id >= 1; id-- {
		if t, ok := s.todos[id]; ok && t.UserID == ownerID {
			todos = append(todos, t)
		}
	}
	return todos, nil
}

func (s *fakeTodoStore) Update(_ context.Context, ownerID, id int64, patch model.TodoPatch) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.getOwnedLocked(ownerID, id)
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

func (s *fakeTodoStore) Toggle(_ context.Context, ownerID, id int64) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.getOwnedLocked(ownerID, id)
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

func (s *fakeTodoStore) Delete(_ context.Context, ownerID, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok || t.UserID != ownerID {
		return false, nil
	}
	delete(s.todos, id)
	return true, nil
}

func (s *fakeTodoStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.todos[id]
	return ok, nil
}

func (s *fakeTodoStore) BelongsToOwner(_ context.Context, id, ownerID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	return ok && t.UserID == ownerID, nil
}
