// Package tasklist maintains the in-memory task collection and mediates
// every mutation through the task API. All mutations are
// confirm-then-apply: local state changes only after the server
// confirms, so a failed call leaves the collection untouched.
package tasklist

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"taskman/internal/service"
)

// MaxTitleLen is the client-side limit on task titles, in runes.
// The server is not trusted to enforce it.
const MaxTitleLen = 100

// ValidationError is a local precondition failure. It is rejected
// before any remote call and leaves all state unchanged.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

var (
	// ErrEmptyTitle rejects empty or whitespace-only titles.
	ErrEmptyTitle = &ValidationError{"title must not be empty"}

	// ErrTitleTooLong rejects titles over MaxTitleLen runes.
	ErrTitleTooLong = &ValidationError{"title is too long"}

	// ErrUnknownTask rejects operations on an id not in the collection.
	ErrUnknownTask = &ValidationError{"no such task"}

	// ErrNotEditing rejects SaveEdit when no edit is in progress.
	ErrNotEditing = &ValidationError{"no edit in progress"}
)

// Edit is an in-progress rename: the task being edited and the draft
// text. A nil *Edit means nothing is being edited, so at most one edit
// can exist at a time.
type Edit struct {
	ID    string
	Draft string
}

// Manager owns the task collection for the current session. Collection
// order is the server's list order, with newly created tasks prepended.
//
// Remote calls run outside the lock, so overlapping transitions race
// independently and each applies its own result on resolution, matching
// the last-response-wins behavior of the original client.
type Manager struct {
	mu     sync.Mutex
	svc    service.Service
	tasks  []service.Task
	filter Filter
	edit   *Edit
}

// New creates a Manager with an empty collection and FilterAll.
func New(svc service.Service) *Manager {
	return &Manager{svc: svc}
}

// Load replaces the collection with the server's task list, preserving
// the returned order. On failure the collection is unchanged.
func (m *Manager) Load(ctx context.Context) error {
	tasks, err := m.svc.ListTasks(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.tasks = tasks
	m.mu.Unlock()
	return nil
}

// Add creates a task and prepends the server-assigned result. The title
// is validated locally (trimmed non-empty, at most MaxTitleLen runes)
// but sent as given.
func (m *Manager) Add(ctx context.Context, title string) (service.Task, error) {
	if err := validateTitle(title); err != nil {
		return service.Task{}, err
	}
	created, err := m.svc.CreateTask(ctx, title)
	if err != nil {
		return service.Task{}, err
	}
	m.mu.Lock()
	m.tasks = append([]service.Task{created}, m.tasks...)
	m.mu.Unlock()
	return created, nil
}

// Remove deletes the task with the given id. The collection changes
// only after the server confirms the delete.
func (m *Manager) Remove(ctx context.Context, id string) error {
	if _, ok := m.Get(id); !ok {
		return ErrUnknownTask
	}
	if err := m.svc.DeleteTask(ctx, id); err != nil {
		return err
	}
	m.mu.Lock()
	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks = append(m.tasks[:i:i], m.tasks[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
	return nil
}

// Toggle flips the completion flag of the task with the given id,
// replacing the element with the server echo. Order is preserved.
func (m *Manager) Toggle(ctx context.Context, id string) (service.Task, error) {
	cur, ok := m.Get(id)
	if !ok {
		return service.Task{}, ErrUnknownTask
	}
	completed := !cur.Completed
	updated, err := m.svc.UpdateTask(ctx, id, service.TaskPatch{Completed: &completed})
	if err != nil {
		return service.Task{}, err
	}
	m.replace(updated)
	return updated, nil
}

// BeginEdit starts editing the task with the given id, seeding the
// draft with the current title. Starting a new edit replaces any edit
// already in progress.
func (m *Manager) BeginEdit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.ID == id {
			m.edit = &Edit{ID: id, Draft: t.Title}
			return nil
		}
	}
	return ErrUnknownTask
}

// SetDraft updates the draft text of the edit in progress. A no-op when
// nothing is being edited.
func (m *Manager) SetDraft(text string) {
	m.mu.Lock()
	if m.edit != nil {
		m.edit.Draft = text
	}
	m.mu.Unlock()
}

// CancelEdit discards the edit in progress. The collection is never
// touched, whatever was typed into the draft.
func (m *Manager) CancelEdit() {
	m.mu.Lock()
	m.edit = nil
	m.mu.Unlock()
}

// SaveEdit renames the edited task to the draft text. On a validation
// failure the draft is left intact so the user can correct it; on
// success the element is replaced with the server echo and the edit is
// cleared.
func (m *Manager) SaveEdit(ctx context.Context) (service.Task, error) {
	m.mu.Lock()
	edit := m.edit
	m.mu.Unlock()
	if edit == nil {
		return service.Task{}, ErrNotEditing
	}
	if err := validateTitle(edit.Draft); err != nil {
		return service.Task{}, err
	}
	title := edit.Draft
	updated, err := m.svc.UpdateTask(ctx, edit.ID, service.TaskPatch{Title: &title})
	if err != nil {
		return service.Task{}, err
	}
	m.replace(updated)
	m.mu.Lock()
	m.edit = nil
	m.mu.Unlock()
	return updated, nil
}

// Editing returns the edit in progress, if any.
func (m *Manager) Editing() (Edit, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.edit == nil {
		return Edit{}, false
	}
	return *m.edit, true
}

// SetFilter changes the view filter. Purely a derived-view change.
func (m *Manager) SetFilter(f Filter) {
	m.mu.Lock()
	m.filter = f
	m.mu.Unlock()
}

// Filter returns the current view filter.
func (m *Manager) Filter() Filter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter
}

// Tasks returns a snapshot of the full collection.
func (m *Manager) Tasks() []service.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]service.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// Visible returns the snapshot restricted to the current filter,
// preserving collection order.
func (m *Manager) Visible() []service.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]service.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if m.filter.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Get returns the task with the given id from the collection.
func (m *Manager) Get(id string) (service.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Len returns the collection size.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// CompletionRatio returns completed/total in [0,1], and 0 for an empty
// collection.
func (m *Manager) CompletionRatio() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range m.tasks {
		if t.Completed {
			done++
		}
	}
	return float64(done) / float64(len(m.tasks))
}

// replace swaps the element with a matching id for the server echo.
// An id that disappeared while the call was in flight is ignored.
func (m *Manager) replace(updated service.Task) {
	m.mu.Lock()
	for i, t := range m.tasks {
		if t.ID == updated.ID {
			m.tasks[i] = updated
			break
		}
	}
	m.mu.Unlock()
}

func validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLen {
		return ErrTitleTooLong
	}
	return nil
}
