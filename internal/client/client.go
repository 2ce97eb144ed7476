// Package client is a Go counterpart of the browser client: a thin API
// wrapper plus a todo-list state controller that mirrors the UI's local
// state handling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tasklight/tasklight-go/internal/model"
)

// APIError is a non-2xx response surfaced through the response envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the REST API, attaching the session token once set.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New creates a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// SetToken installs a session token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register creates an account and stores the returned session token.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return model.AuthResponse{}, err
	}
	c.token = resp.Token
	return resp, nil
}

// Login authenticates and stores the returned session token.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return model.AuthResponse{}, err
	}
	c.token = resp.Token
	return resp, nil
}

// Me fetches the authenticated user.
func (c *Client) Me(ctx context.Context) (model.UserResponse, error) {
	var data struct {
		User model.UserResponse `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &data); err != nil {
		return model.UserResponse{}, err
	}
	return data.User, nil
}

// Todos fetches the full todo list.
func (c *Client) Todos(ctx context.Context) ([]model.Todo, error) {
	var data struct {
		Todos []model.Todo `json:"todos"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &data); err != nil {
		return nil, err
	}
	return data.Todos, nil
}

// CreateTodo creates a todo and returns the server-assigned row.
func (c *Client) CreateTodo(ctx context.Context, title, description string) (*model.Todo, error) {
	return c.todoCall(ctx, http.MethodPost, "/api/todos", model.CreateTodoRequest{
		Title:       title,
		Description: description,
	})
}

// UpdateTodo applies a partial update and returns the updated row.
func (c *Client) UpdateTodo(ctx context.Context, id int64, patch model.TodoPatch) (*model.Todo, error) {
	return c.todoCall(ctx, http.MethodPut, fmt.Sprintf("/api/todos/%d", id), patch)
}

// ToggleTodo flips the completed flag and returns the updated row.
func (c *Client) ToggleTodo(ctx context.Context, id int64) (*model.Todo, error) {
	return c.todoCall(ctx, http.MethodPatch, fmt.Sprintf("/api/todos/%d/toggle", id), nil)
}

// DeleteTodo removes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/todos/%d", id), nil, nil)
}

func (c *Client) todoCall(ctx context.Context, method, path string, body any) (*model.Todo, error) {
	var data struct {
		Todo model.Todo `json:"todo"`
	}
	if err := c.do(ctx, method, path, body, &data); err != nil {
		return nil, err
	}
	return &data.Todo, nil
}

// do performs a request and decodes the response envelope. The envelope's
// error field becomes an *APIError; transport failures pass through as-is.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}
