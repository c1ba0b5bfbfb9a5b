// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"taskman/internal/service"
)

// FakeService is an in-memory implementation of service.Service for
// testing. IDs are assigned sequentially ("t1", "t2", ...).
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task
	next  int

	// Call counters.
	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int

	// Error injection for testing.
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// Seed appends a task directly, bypassing the API surface.
func (f *FakeService) Seed(id, title string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title, Completed: completed})
}

// Tasks returns a snapshot of the fake's backing collection.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	f.next++
	t := service.Task{ID: fmt.Sprintf("t%d", f.next), Title: title}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			if patch.Title != nil {
				t.Title = *patch.Title
			}
			if patch.Completed != nil {
				t.Completed = *patch.Completed
			}
			f.tasks[i] = t
			return t, nil
		}
	}
	return service.Task{}, &service.RemoteError{StatusCode: 404, Msg: "task not found"}
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &service.RemoteError{StatusCode: 404, Msg: "task not found"}
}

// FakeAuth is an in-memory implementation of service.Authenticator.
type FakeAuth struct {
	mu    sync.Mutex
	users map[string]string // username -> password

	RegisterErr error
	LoginErr    error
}

// NewFakeAuth creates a FakeAuth with no accounts.
func NewFakeAuth() *FakeAuth {
	return &FakeAuth{users: make(map[string]string)}
}

// Register implements service.Authenticator.
func (f *FakeAuth) Register(ctx context.Context, username, password string) error {
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[username]; exists {
		return &service.RemoteError{StatusCode: 400, Msg: "user already exists"}
	}
	f.users[username] = password
	return nil
}

// Login implements service.Authenticator.
func (f *FakeAuth) Login(ctx context.Context, username, password string) (service.Credentials, error) {
	if f.LoginErr != nil {
		return service.Credentials{}, f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if pass, ok := f.users[username]; !ok || pass != password {
		return service.Credentials{}, &service.RemoteError{StatusCode: 401, Msg: "invalid credentials"}
	}
	return service.Credentials{Token: "token-" + username, Username: username}, nil
}
