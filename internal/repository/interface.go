package repository

import (
	"context"

	"github.com/tasklight/tasklight-go/internal/model"
)

// UserStore persists user credentials.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// TodoStore persists todos. Every operation that names an owner is scoped to
// that owner; a todo belonging to someone else behaves as if it did not exist.
type TodoStore interface {
	Create(ctx context.Context, ownerID int64, title, description string) (*model.Todo, error)
	GetByID(ctx context.Context, ownerID, id int64) (*model.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error)
	Update(ctx context.Context, ownerID, id int64, patch model.TodoPatch) (*model.Todo, error)
	Toggle(ctx context.Context, ownerID, id int64) (*model.Todo, error)
	Delete(ctx context.Context, ownerID, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	BelongsToOwner(ctx context.Context, id, ownerID int64) (bool, error)
}
