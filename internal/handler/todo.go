package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tasklight/tasklight-go/internal/middleware"
	"github.com/tasklight/tasklight-go/internal/model"
	"github.com/tasklight/tasklight-go/internal/service"
)

// TodoHandler handles HTTP requests for todo operations. All routes sit
// behind the auth middleware, so the identity is always present.
type TodoHandler struct {
	service *service.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// HandleList handles GET /api/todos requests.
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	todos, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error while fetching todos")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"todos": todos})
}

// HandleCreate handles POST /api/todos requests.
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.CreateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todo, err := h.service.Create(r.Context(), identity.UserID, req)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "server error while creating todo")
		return
	}

	writeData(w, http.StatusCreated, map[string]any{"todo": todo})
}

// HandleUpdate handles PUT /api/todos/{id} requests with a partial body.
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := todoID(w, r)
	if !ok {
		return
	}

	var patch model.TodoPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	todo, err := h.service.Update(r.Context(), identity.UserID, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrTodoNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "server error while updating todo")
		}
		return
	}

	writeData(w, http.StatusOK, map[string]any{"todo": todo})
}

// HandleToggle handles PATCH /api/todos/{id}/toggle requests.
func (h *TodoHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.service.Toggle(r.Context(), identity.UserID, id)
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "server error while toggling todo")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"todo": todo})
}

// HandleDelete handles DELETE /api/todos/{id} requests. Deleting an id that
// never existed succeeds; deleting another user's todo does not.
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := todoID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, id); err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "server error while deleting todo")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"message": "todo deleted successfully"})
}

func todoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid todo id")
		return 0, false
	}
	return id, true
}
