// Package client is the network half of the browser client: a typed HTTP
// client for the TaskFlow API that attaches the bearer token to every call
// after login.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/apperror"
	"taskflow/internal/dto"
	"taskflow/internal/models"
)

// Client talks to a TaskFlow server. It is not safe for concurrent use;
// the view model issues one call per user action and awaits it.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a Client for the given server base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token, if any.
func (c *Client) Token() string {
	return c.token
}

// Register creates an account and stores the returned session token.
func (c *Client) Register(ctx context.Context, username, email, password string) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/register", dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Login authenticates and stores the returned session token.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/login", dto.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// ListTodos fetches the signed-in user's todos, newest first.
func (c *Client) ListTodos(ctx context.Context) ([]models.Todo, error) {
	var todos []models.Todo
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// CreateTodo creates a todo and returns the server's record.
func (c *Client) CreateTodo(ctx context.Context, req dto.CreateTodoRequest) (*models.Todo, error) {
	var todo models.Todo
	if err := c.do(ctx, http.MethodPost, "/api/todos", req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo applies a partial update and returns the server's record.
func (c *Client) UpdateTodo(ctx context.Context, id uuid.UUID, req dto.UpdateTodoRequest) (*models.Todo, error) {
	var todo models.Todo
	if err := c.do(ctx, http.MethodPut, "/api/todos/"+id.String(), req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// DeleteTodo removes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+id.String(), nil, nil)
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

// do issues one request and decodes the response into out (if non-nil).
// Non-2xx responses are decoded into the API error envelope and returned as
// an *apperror.AppError carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeError turns a failure response into a typed AppError so callers can
// use the apperror predicates on client-side errors too.
func decodeError(resp *http.Response) error {
	var envelope apperror.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	message := envelope.Message
	if message == "" {
		message = resp.Status
	}

	// The error label distinguishes the 400-family types; the status code is
	// the fallback for servers that omit it.
	var errType apperror.ErrorType
	switch envelope.Error {
	case "conflict":
		errType = apperror.ConflictError
	case "invalid_credentials":
		errType = apperror.InvalidCredentialsError
	case "validation_error":
		errType = apperror.ValidationError
	case "unauthenticated":
		errType = apperror.UnauthenticatedError
	case "invalid_token":
		errType = apperror.InvalidTokenError
	case "not_found":
		errType = apperror.NotFoundError
	default:
		switch resp.StatusCode {
		case http.StatusBadRequest:
			errType = apperror.ValidationError
		case http.StatusUnauthorized:
			errType = apperror.UnauthenticatedError
		case http.StatusForbidden:
			errType = apperror.InvalidTokenError
		case http.StatusNotFound:
			errType = apperror.NotFoundError
		default:
			errType = apperror.InternalError
		}
	}
	return apperror.New(errType, message, nil)
}
