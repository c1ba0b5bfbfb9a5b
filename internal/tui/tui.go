// Package tui is the interactive terminal renderer for the task list.
// It dispatches user intents into the tasklist manager, runs the remote
// transitions asynchronously, and reports every outcome on the status
// line, so a failed call never crashes the UI or blanks the list.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskman/internal/service"
	"taskman/internal/tasklist"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// Model is the bubbletea model for the task list screen.
type Model struct {
	ctx      context.Context
	mgr      *tasklist.Manager
	username string

	visible []service.Task
	cursor  int
	mode    mode

	input textinput.Model
	prog  progress.Model

	status    string
	statusErr bool
	loading   bool

	width  int
	height int
}

// Run starts the interactive UI and blocks until the user quits.
func Run(ctx context.Context, mgr *tasklist.Manager, username string) error {
	program := tea.NewProgram(NewModel(ctx, mgr, username))
	_, err := program.Run()
	return err
}

// NewModel creates the initial model. The collection is loaded by the
// command returned from Init.
func NewModel(ctx context.Context, mgr *tasklist.Manager, username string) Model {
	ti := textinput.New()
	ti.Placeholder = "New task"
	ti.CharLimit = tasklist.MaxTitleLen
	ti.Width = 40

	return Model{
		ctx:      ctx,
		mgr:      mgr,
		username: username,
		input:    ti,
		prog:     progress.New(progress.WithDefaultGradient()),
		status:   "loading...",
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCmd())
}

// Messages delivered when a remote transition resolves.
type (
	loadedMsg struct{ err error }
	addedMsg struct {
		task service.Task
		err  error
	}
	savedMsg struct {
		task service.Task
		err  error
	}
	toggledMsg struct {
		task service.Task
		err  error
	}
	removedMsg struct{ err error }
)

func (m Model) loadCmd() tea.Cmd {
	mgr, ctx := m.mgr, m.ctx
	return func() tea.Msg { return loadedMsg{err: mgr.Load(ctx)} }
}

func (m Model) addCmd(title string) tea.Cmd {
	mgr, ctx := m.mgr, m.ctx
	return func() tea.Msg {
		task, err := mgr.Add(ctx, title)
		return addedMsg{task: task, err: err}
	}
}

func (m Model) saveCmd() tea.Cmd {
	mgr, ctx := m.mgr, m.ctx
	return func() tea.Msg {
		task, err := mgr.SaveEdit(ctx)
		return savedMsg{task: task, err: err}
	}
}

func (m Model) toggleCmd(id string) tea.Cmd {
	mgr, ctx := m.mgr, m.ctx
	return func() tea.Msg {
		task, err := mgr.Toggle(ctx, id)
		return toggledMsg{task: task, err: err}
	}
}

func (m Model) removeCmd(id string) tea.Cmd {
	mgr, ctx := m.mgr, m.ctx
	return func() tea.Msg { return removedMsg{err: mgr.Remove(ctx, id)} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = clamp(msg.Width-10, 20, 80)
		m.prog.Width = clamp(msg.Width-10, 10, 60)
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus("load failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.refresh()
		m.setStatus("loaded", false)
		return m, nil

	case addedMsg:
		if msg.err != nil {
			// Input draft untouched so the user can correct it.
			m.setStatus("add failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.input.SetValue("")
		m.mode = modeList
		m.refresh()
		m.setStatus("added: "+msg.task.Title, false)
		return m, nil

	case savedMsg:
		if msg.err != nil {
			// Edit draft remains; the user may retry or cancel.
			m.setStatus("save failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.mode = modeList
		m.refresh()
		m.setStatus("renamed: "+msg.task.Title, false)
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.setStatus("update failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.refresh()
		state := "pending"
		if msg.task.Completed {
			state = "completed"
		}
		m.setStatus("marked "+state+": "+msg.task.Title, false)
		return m, nil

	case removedMsg:
		if msg.err != nil {
			m.setStatus("delete failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.refresh()
		m.setStatus("deleted", false)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg)
		case modeEdit:
			return m.updateEditMode(msg)
		default:
			return m.updateListMode(msg)
		}
	}
	return m, nil
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "New task"
		m.input.Focus()
		return m, textinput.Blink
	case "e":
		if t, ok := m.current(); ok {
			if err := m.mgr.BeginEdit(t.ID); err != nil {
				m.setStatus(err.Error(), true)
				return m, nil
			}
			edit, _ := m.mgr.Editing()
			m.mode = modeEdit
			m.input.Placeholder = "Title"
			m.input.SetValue(edit.Draft)
			m.input.CursorEnd()
			m.input.Focus()
			return m, textinput.Blink
		}
	case "enter", " ":
		if t, ok := m.current(); ok {
			return m, m.toggleCmd(t.ID)
		}
	case "d":
		if t, ok := m.current(); ok {
			return m, m.removeCmd(t.ID)
		}
	case "f":
		m.mgr.SetFilter(m.mgr.Filter().Next())
		m.refresh()
		m.setStatus("filter: "+m.mgr.Filter().String(), false)
	case "r":
		m.loading = true
		m.setStatus("loading...", false)
		return m, m.loadCmd()
	}
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.setStatus("cancelled", false)
		return m, nil
	case "enter":
		if strings.TrimSpace(m.input.Value()) == "" {
			m.setStatus(tasklist.ErrEmptyTitle.Error(), true)
			return m, nil
		}
		return m, m.addCmd(m.input.Value())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mgr.CancelEdit()
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.setStatus("edit cancelled", false)
		return m, nil
	case "enter":
		m.mgr.SetDraft(m.input.Value())
		if strings.TrimSpace(m.input.Value()) == "" {
			// Draft stays set so the user can correct it.
			m.setStatus(tasklist.ErrEmptyTitle.Error(), true)
			return m, nil
		}
		return m, m.saveCmd()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.mgr.SetDraft(m.input.Value())
	return m, cmd
}

// refresh re-derives the rendered snapshot from the manager.
func (m *Model) refresh() {
	m.visible = m.mgr.Visible()
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) current() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return service.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
