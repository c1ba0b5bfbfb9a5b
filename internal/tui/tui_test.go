package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"taskman/internal/service"
	"taskman/internal/tasklist"
	"taskman/internal/testutil"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func loadedModel(t *testing.T, svc *testutil.FakeService) Model {
	t.Helper()
	mgr := tasklist.New(svc)
	m := NewModel(context.Background(), mgr, "ana")

	next, _ := m.Update(loadedMsg{err: mgr.Load(context.Background())})
	return next.(Model)
}

func TestLoadedPopulatesVisibleList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	svc.Seed("2", "walk dog", true)

	m := loadedModel(t, svc)

	if m.loading {
		t.Error("loading should be cleared")
	}
	if len(m.visible) != 2 {
		t.Fatalf("visible = %d tasks", len(m.visible))
	}
}

func TestLoadFailureKeepsUIAlive(t *testing.T) {
	svc := testutil.NewFakeService()
	mgr := tasklist.New(svc)
	m := NewModel(context.Background(), mgr, "ana")

	next, _ := m.Update(loadedMsg{err: &service.RemoteError{StatusCode: 500, Msg: "boom"}})
	m = next.(Model)

	if !m.statusErr {
		t.Error("status should show the failure")
	}
	if m.View() == "" {
		t.Error("view should still render")
	}
}

func TestFilterKeyCycles(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	svc.Seed("2", "walk dog", true)
	m := loadedModel(t, svc)

	next, _ := m.Update(keyMsg("f"))
	m = next.(Model)

	if m.mgr.Filter() != tasklist.FilterCompleted {
		t.Errorf("filter = %v, want completed", m.mgr.Filter())
	}
	if len(m.visible) != 1 || m.visible[0].ID != "2" {
		t.Errorf("visible = %+v", m.visible)
	}
}

func TestAddFailureKeepsInputDraft(t *testing.T) {
	svc := testutil.NewFakeService()
	m := loadedModel(t, svc)

	next, _ := m.Update(keyMsg("a"))
	m = next.(Model)
	m.input.SetValue("half typed task")

	next, _ = m.Update(addedMsg{err: &service.RemoteError{StatusCode: 500, Msg: "boom"}})
	m = next.(Model)

	if m.mode != modeAdd {
		t.Error("should stay in add mode on failure")
	}
	if m.input.Value() != "half typed task" {
		t.Errorf("input draft lost: %q", m.input.Value())
	}
	if !m.statusErr {
		t.Error("status should show the failure")
	}
}

func TestAddSuccessClearsInput(t *testing.T) {
	svc := testutil.NewFakeService()
	m := loadedModel(t, svc)

	next, _ := m.Update(keyMsg("a"))
	m = next.(Model)
	m.input.SetValue("buy milk")

	next, _ = m.Update(addedMsg{task: service.Task{ID: "t1", Title: "buy milk"}})
	m = next.(Model)

	if m.mode != modeList {
		t.Error("should return to list mode on success")
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", m.input.Value())
	}
}

func TestEditEscCancelsWithoutTouchingCollection(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	m := loadedModel(t, svc)

	next, _ := m.Update(keyMsg("e"))
	m = next.(Model)
	if m.mode != modeEdit {
		t.Fatal("expected edit mode")
	}
	m.input.SetValue("something else")

	next, _ = m.Update(keyMsg("esc"))
	m = next.(Model)

	if m.mode != modeList {
		t.Error("esc should leave edit mode")
	}
	if _, ok := m.mgr.Editing(); ok {
		t.Error("edit draft should be cleared")
	}
	if got := m.mgr.Tasks()[0].Title; got != "buy milk" {
		t.Errorf("collection changed by cancelled edit: %q", got)
	}
	if svc.UpdateCalls != 0 {
		t.Error("cancelled edit made a remote call")
	}
}

func TestSaveFailureStaysInEditMode(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	m := loadedModel(t, svc)

	next, _ := m.Update(keyMsg("e"))
	m = next.(Model)

	next, _ = m.Update(savedMsg{err: &service.RemoteError{StatusCode: 500, Msg: "boom"}})
	m = next.(Model)

	if m.mode != modeEdit {
		t.Error("should stay in edit mode on failure")
	}
	if _, ok := m.mgr.Editing(); !ok {
		t.Error("edit draft should survive a failed save")
	}
}

func TestBlankAddIsRejectedLocally(t *testing.T) {
	svc := testutil.NewFakeService()
	m := loadedModel(t, svc)

	next, _ := m.Update(keyMsg("a"))
	m = next.(Model)
	m.input.SetValue("   ")

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)

	if cmd != nil {
		t.Error("blank title should not trigger a remote command")
	}
	if !m.statusErr {
		t.Error("status should show the validation failure")
	}
	if svc.CreateCalls != 0 {
		t.Error("remote call made for blank title")
	}
}
