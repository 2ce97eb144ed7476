package client

import (
	"context"

	"github.com/tasklight/tasklight-go/internal/model"
)

// TodoList holds the client-side copy of the authenticated user's todos and
// keeps it in sync with the server after each mutation. All derived views
// (counts, partitions) are computed from the local slice only; there is no
// second source of truth.
type TodoList struct {
	api   *Client
	todos []model.Todo
}

// NewTodoList creates a controller over an authenticated client.
func NewTodoList(api *Client) *TodoList {
	return &TodoList{api: api}
}

// Load replaces the local list with a full fetch from the server.
func (l *TodoList) Load(ctx context.Context) error {
	todos, err := l.api.Todos(ctx)
	if err != nil {
		return err
	}
	l.todos = todos
	return nil
}

// Add creates a todo and then reloads the full list. Re-fetching instead of
// appending the returned row means the local order can never drift from the
// server's newest-first ordering.
func (l *TodoList) Add(ctx context.Context, title, description string) error {
	if _, err := l.api.CreateTodo(ctx, title, description); err != nil {
		return err
	}
	return l.Load(ctx)
}

// Update applies a partial update and reloads the list, since an update can
// move the todo between groupings.
func (l *TodoList) Update(ctx context.Context, id int64, patch model.TodoPatch) error {
	if _, err := l.api.UpdateTodo(ctx, id, patch); err != nil {
		return err
	}
	return l.Load(ctx)
}

// Toggle flips a todo and patches the matching local entry with the returned
// row. No reload is needed: the toggled row is the only change.
func (l *TodoList) Toggle(ctx context.Context, id int64) error {
	updated, err := l.api.ToggleTodo(ctx, id)
	if err != nil {
		return err
	}
	for i := range l.todos {
		if l.todos[i].ID == id {
			l.todos[i] = *updated
			break
		}
	}
	return nil
}

// Remove deletes a todo server-side and drops the local entry by id. Deletion
// has no server-computed fields to reconcile, so no re-fetch.
func (l *TodoList) Remove(ctx context.Context, id int64) error {
	if err := l.api.DeleteTodo(ctx, id); err != nil {
		return err
	}
	kept := l.todos[:0]
	for _, t := range l.todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	l.todos = kept
	return nil
}

// Todos returns the current local list.
func (l *TodoList) Todos() []model.Todo {
	return l.todos
}

// Counts summarizes the local list by status.
type Counts struct {
	Total      int
	Pending    int
	InProgress int
	Done       int
}

// Counts tallies the local list by status.
func (l *TodoList) Counts() Counts {
	c := Counts{Total: len(l.todos)}
	for _, t := range l.todos {
		switch t.Status {
		case model.StatusPending:
			c.Pending++
		case model.StatusInProgress:
			c.InProgress++
		case model.StatusDone:
			c.Done++
		}
	}
	return c
}

// Partition splits the local list into active (pending or in progress) and
// done todos, preserving order.
func (l *TodoList) Partition() (active, done []model.Todo) {
	for _, t := range l.todos {
		if t.Status == model.StatusDone {
			done = append(done, t)
		} else {
			active = append(active, t)
		}
	}
	return active, done
}
