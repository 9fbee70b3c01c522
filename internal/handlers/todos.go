package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/apperror"
	"taskflow/internal/dto"
	"taskflow/internal/middleware"
	"taskflow/internal/models"
	"taskflow/internal/store"
	"taskflow/internal/utils"
)

// TodosHandler manages todo CRUD endpoints. Every operation is scoped to the
// authenticated owner at the store level.
type TodosHandler struct {
	store store.Store
}

// NewTodosHandler creates a new TodosHandler
func NewTodosHandler(s store.Store) *TodosHandler {
	return &TodosHandler{store: s}
}

// Todos dispatches by HTTP method for /api/todos and /api/todos/{id}
func (h *TodosHandler) Todos(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListTodos(w, r)
	case http.MethodPost:
		h.CreateTodo(w, r)
	case http.MethodPut:
		h.UpdateTodo(w, r)
	case http.MethodDelete:
		h.DeleteTodo(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListTodos handles GET /api/todos
// @Summary List todos
// @Description List all todos owned by the authenticated user, newest first
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Todo
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/todos [get]
func (h *TodosHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, r, apperror.NewUnauthenticatedError("Access token required", nil))
		return
	}

	todos, err := h.store.FindByOwner(r.Context(), owner)
	if err != nil {
		utils.WriteError(w, r, apperror.NewDatabaseError("Failed to fetch todos", err))
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, todos)
}

// CreateTodo handles POST /api/todos
// @Summary Create a todo
// @Description Create a new todo owned by the authenticated user
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTodoRequest true "Todo payload"
// @Success 201 {object} models.Todo
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/todos [post]
func (h *TodosHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, r, apperror.NewUnauthenticatedError("Access token required", nil))
		return
	}

	var req dto.CreateTodoRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		utils.WriteError(w, r, apperror.NewValidationError("Title is required", nil))
		return
	}

	if req.Category == "" {
		req.Category = models.CategoryPersonal
	}
	if !models.ValidCategory(req.Category) {
		utils.WriteError(w, r, apperror.NewValidationError("Category must be personal, work, learning, health, or finance", nil))
		return
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(req.Priority) {
		utils.WriteError(w, r, apperror.NewValidationError("Priority must be low, medium, or high", nil))
		return
	}

	now := time.Now()
	todo := models.Todo{
		ID:          uuid.New(),
		UserID:      owner,
		Title:       req.Title,
		Description: req.Description,
		Completed:   false,
		Category:    req.Category,
		Priority:    req.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.Insert(r.Context(), &todo); err != nil {
		utils.WriteError(w, r, apperror.NewDatabaseError("Failed to create todo", err))
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, todo)
}

// UpdateTodo handles PUT /api/todos/{id}
// @Summary Update a todo
// @Description Apply a partial update to a todo owned by the authenticated user. Omitted fields are left unchanged.
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Param request body dto.UpdateTodoRequest true "Fields to update"
// @Success 200 {object} models.Todo
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/todos/{id} [put]
func (h *TodosHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, r, apperror.NewUnauthenticatedError("Access token required", nil))
		return
	}

	id, err := todoIDFromPath(r.URL.Path)
	if err != nil {
		utils.WriteError(w, r, apperror.NewNotFoundError("Todo not found", nil))
		return
	}

	var req dto.UpdateTodoRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			utils.WriteError(w, r, apperror.NewValidationError("Title cannot be empty", nil))
			return
		}
		req.Title = &trimmed
	}

	todo, err := h.store.UpdateByID(r.Context(), owner, id, store.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, r, apperror.NewNotFoundError("Todo not found", nil))
			return
		}
		utils.WriteError(w, r, apperror.NewDatabaseError("Failed to update todo", err))
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, todo)
}

// DeleteTodo handles DELETE /api/todos/{id}
// @Summary Delete a todo
// @Description Delete a todo owned by the authenticated user
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/todos/{id} [delete]
func (h *TodosHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, r, apperror.NewUnauthenticatedError("Access token required", nil))
		return
	}

	id, err := todoIDFromPath(r.URL.Path)
	if err != nil {
		utils.WriteError(w, r, apperror.NewNotFoundError("Todo not found", nil))
		return
	}

	if err := h.store.DeleteByID(r.Context(), owner, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, r, apperror.NewNotFoundError("Todo not found", nil))
			return
		}
		utils.WriteError(w, r, apperror.NewDatabaseError("Failed to delete todo", err))
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Todo deleted successfully"})
}

// todoIDFromPath extracts the todo id from /api/todos/{id}.
// An unparseable id is treated the same as an unknown one.
func todoIDFromPath(path string) (uuid.UUID, error) {
	raw := strings.TrimPrefix(path, "/api/todos/")
	return uuid.Parse(strings.Trim(raw, "/"))
}
