package todo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taskloop/todo-backend/internal/auth"
	"github.com/taskloop/todo-backend/pkg/utils"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func ownerFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "user not found in context")
		return 0, false
	}
	return u.ID, true
}

func todoIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "todo not found")
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, "todo not found")
	case errors.Is(err, ErrValidation):
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.WriteError(w, http.StatusInternalServerError, fallback)
	}
}

// POST /todos/
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var in CreateTodoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	t, err := h.svc.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, err, "failed to create todo")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, t)
}

// GET /todos/
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	f := ListFilter{Limit: DefaultListLimit}

	q := r.URL.Query()
	if raw := q.Get("status"); raw != "" {
		st := Status(raw)
		f.Status = &st
	}
	if raw := q.Get("priority"); raw != "" {
		pr := Priority(raw)
		f.Priority = &pr
	}
	if raw := q.Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			f.Offset = v
		}
	}
	if raw := q.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			f.Limit = v
		}
	}

	todos, err := h.svc.List(r.Context(), userID, f)
	if err != nil {
		writeServiceError(w, err, "failed to list todos")
		return
	}

	if todos == nil {
		todos = []Todo{}
	}
	utils.WriteJSON(w, http.StatusOK, todos)
}

// GET /todos/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	s, err := h.svc.Summarize(r.Context(), userID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to summarize todos")
		return
	}

	utils.WriteJSON(w, http.StatusOK, s)
}

// GET /todos/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := todoIDFromRequest(w, r)
	if !ok {
		return
	}

	t, err := h.svc.Get(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, err, "failed to get todo")
		return
	}

	utils.WriteJSON(w, http.StatusOK, t)
}

// PATCH /todos/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := todoIDFromRequest(w, r)
	if !ok {
		return
	}

	var in UpdateTodoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	t, err := h.svc.Update(r.Context(), id, userID, in)
	if err != nil {
		writeServiceError(w, err, "failed to update todo")
		return
	}

	utils.WriteJSON(w, http.StatusOK, t)
}

// POST /todos/{id}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := todoIDFromRequest(w, r)
	if !ok {
		return
	}

	t, err := h.svc.Complete(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, err, "failed to complete todo")
		return
	}

	utils.WriteJSON(w, http.StatusOK, t)
}

// DELETE /todos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := todoIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id, userID); err != nil {
		writeServiceError(w, err, "failed to delete todo")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Todo deleted successfully",
		"id":      id,
	})
}
