// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All remote API calls go through this interface.
// Commands never build HTTP requests directly.
type Service interface {
	// ListTasks returns all tasks in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task with the given title and returns the
	// server-assigned task. The title is sent as-is; the server is
	// trusted to validate it.
	CreateTask(ctx context.Context, title string) (Task, error)

	// UpdateTask applies a partial update and returns the full task
	// as echoed by the server.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error
}

// Authenticator defines the account operations that run without a token.
type Authenticator interface {
	// Register creates a new account.
	Register(ctx context.Context, username, password string) error

	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, username, password string) (Credentials, error)
}
