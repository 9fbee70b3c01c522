package dto

// CreateTodoRequest represents the request payload for creating a todo.
// Category and priority are optional; the server fills in the defaults.
type CreateTodoRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// UpdateTodoRequest represents a partial update of a todo.
// Pointer fields distinguish "omitted" (nil, leave unchanged) from
// "explicitly set" (non-nil, including the empty string / false).
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// MessageResponse represents a simple confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}
