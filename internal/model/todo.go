package model

import "time"

// Status is the workflow state of a todo.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Completed returns the completed flag implied by the status.
func (s Status) Completed() bool {
	return s == StatusDone
}

// Todo represents a todo row in the database.
// Invariant: Completed is true exactly when Status is done.
type Todo struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTodoRequest represents a todo creation request.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TodoPatch represents a partial todo update. Nil fields are left untouched,
// so a request can flip completion without resending the title.
type TodoPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Status      *Status `json:"status"`
}

// Empty reports whether the patch changes nothing.
func (p TodoPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil && p.Status == nil
}

// Normalize enforces the completed/status invariant on the patch. A status
// change overwrites the completed flag; flipping completed alone moves the
// status between pending and done. The store applies the patch verbatim
// afterwards.
func (p *TodoPatch) Normalize() {
	if p.Status != nil {
		completed := p.Status.Completed()
		p.Completed = &completed
		return
	}
	if p.Completed != nil {
		status := StatusPending
		if *p.Completed {
			status = StatusDone
		}
		p.Status = &status
	}
}
