package tasklist_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"taskman/internal/service"
	"taskman/internal/tasklist"
	"taskman/internal/testutil"
)

var errRemote = &service.RemoteError{StatusCode: 500, Msg: "boom"}

func loadedManager(t *testing.T, svc *testutil.FakeService) *tasklist.Manager {
	t.Helper()
	mgr := tasklist.New(svc)
	if err := mgr.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return mgr
}

func TestLoadReplacesCollectionInServerOrder(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	svc.Seed("2", "walk dog", true)

	mgr := loadedManager(t, svc)

	got := mgr.Tasks()
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("unexpected collection: %+v", got)
	}
}

func TestLoadFailureLeavesCollectionUnchanged(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	mgr := loadedManager(t, svc)

	svc.Seed("2", "walk dog", false)
	svc.ListErr = errRemote

	if err := mgr.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := mgr.Tasks(); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("collection changed on failed load: %+v", got)
	}
}

func TestAddPrependsServerAssignedTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	mgr := loadedManager(t, svc)

	created, err := mgr.Add(context.Background(), "walk dog")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if created.Completed {
		t.Error("new task should not be completed")
	}

	got := mgr.Tasks()
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].Title != "walk dog" || got[0].Completed {
		t.Errorf("first element should be the new task, got %+v", got[0])
	}
	if got[1].ID != "1" {
		t.Errorf("existing task displaced: %+v", got)
	}
}

func TestAddBlankTitleNeverCallsRemote(t *testing.T) {
	for _, title := range []string{"", "   "} {
		svc := testutil.NewFakeService()
		svc.Seed("1", "buy milk", false)
		mgr := loadedManager(t, svc)

		_, err := mgr.Add(context.Background(), title)
		if !errors.Is(err, tasklist.ErrEmptyTitle) {
			t.Errorf("Add(%q): expected ErrEmptyTitle, got %v", title, err)
		}
		if svc.CreateCalls != 0 {
			t.Errorf("Add(%q): remote call made", title)
		}
		if mgr.Len() != 1 {
			t.Errorf("Add(%q): collection length changed", title)
		}
	}
}

func TestAddTitleOverLimitNeverCallsRemote(t *testing.T) {
	long := make([]rune, tasklist.MaxTitleLen+1)
	for i := range long {
		long[i] = 'x'
	}

	svc := testutil.NewFakeService()
	mgr := loadedManager(t, svc)

	_, err := mgr.Add(context.Background(), string(long))
	if !errors.Is(err, tasklist.ErrTitleTooLong) {
		t.Fatalf("expected ErrTitleTooLong, got %v", err)
	}
	if svc.CreateCalls != 0 {
		t.Error("remote call made for over-limit title")
	}
}

func TestToggleFlipsExactlyOneTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	svc.Seed("2", "walk dog", false)
	svc.Seed("3", "water plants", true)
	mgr := loadedManager(t, svc)

	updated, err := mgr.Toggle(context.Background(), "2")
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !updated.Completed {
		t.Error("toggle should flip completed to true")
	}

	got := mgr.Tasks()
	want := []service.Task{
		{ID: "1", Title: "buy milk", Completed: false},
		{ID: "2", Title: "walk dog", Completed: true},
		{ID: "3", Title: "water plants", Completed: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("collection mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestToggleUnknownTask(t *testing.T) {
	svc := testutil.NewFakeService()
	mgr := loadedManager(t, svc)

	if _, err := mgr.Toggle(context.Background(), "nope"); !errors.Is(err, tasklist.ErrUnknownTask) {
		t.Errorf("expected ErrUnknownTask, got %v", err)
	}
	if svc.UpdateCalls != 0 {
		t.Error("remote call made for unknown id")
	}
}

func TestRemoveDeletesExactlyOne(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	svc.Seed("2", "walk dog", false)
	mgr := loadedManager(t, svc)

	if err := mgr.Remove(context.Background(), "1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	got := mgr.Tasks()
	if len(got) != 1 {
		t.Fatalf("expected length 1, got %d", len(got))
	}
	if got[0].ID == "1" {
		t.Error("removed task still present")
	}
}

func TestMutationFailureLeavesCollectionUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		inject func(*testutil.FakeService)
		run    func(*tasklist.Manager) error
	}{
		{
			name:   "add",
			inject: func(svc *testutil.FakeService) { svc.CreateErr = errRemote },
			run: func(mgr *tasklist.Manager) error {
				_, err := mgr.Add(context.Background(), "new task")
				return err
			},
		},
		{
			name:   "remove",
			inject: func(svc *testutil.FakeService) { svc.DeleteErr = errRemote },
			run: func(mgr *tasklist.Manager) error {
				return mgr.Remove(context.Background(), "1")
			},
		},
		{
			name:   "toggle",
			inject: func(svc *testutil.FakeService) { svc.UpdateErr = errRemote },
			run: func(mgr *tasklist.Manager) error {
				_, err := mgr.Toggle(context.Background(), "1")
				return err
			},
		},
		{
			name:   "saveEdit",
			inject: func(svc *testutil.FakeService) { svc.UpdateErr = errRemote },
			run: func(mgr *tasklist.Manager) error {
				if err := mgr.BeginEdit("1"); err != nil {
					return err
				}
				mgr.SetDraft("renamed")
				_, err := mgr.SaveEdit(context.Background())
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			svc.Seed("1", "buy milk", false)
			svc.Seed("2", "walk dog", true)
			mgr := loadedManager(t, svc)

			before := mgr.Tasks()
			tt.inject(svc)

			err := tt.run(mgr)
			if !errors.Is(err, errRemote) {
				t.Fatalf("expected injected error, got %v", err)
			}
			if after := mgr.Tasks(); !reflect.DeepEqual(before, after) {
				t.Errorf("collection changed on failure:\nbefore %+v\nafter  %+v", before, after)
			}
		})
	}
}

func TestVisibleUnderEachFilter(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	svc.Seed("2", "walk dog", true)
	svc.Seed("3", "water plants", false)
	mgr := loadedManager(t, svc)

	tests := []struct {
		filter tasklist.Filter
		want   []string
	}{
		{tasklist.FilterAll, []string{"1", "2", "3"}},
		{tasklist.FilterCompleted, []string{"2"}},
		{tasklist.FilterPending, []string{"1", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			mgr.SetFilter(tt.filter)
			visible := mgr.Visible()
			var ids []string
			for _, task := range visible {
				ids = append(ids, task.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("visible ids = %v, want %v", ids, tt.want)
			}
		})
	}

	// Filtering never alters the underlying collection.
	if mgr.Len() != 3 {
		t.Errorf("collection length changed by filtering: %d", mgr.Len())
	}
}

func TestCompletionRatio(t *testing.T) {
	mgr := tasklist.New(testutil.NewFakeService())
	if got := mgr.CompletionRatio(); got != 0 {
		t.Errorf("empty collection ratio = %v, want 0", got)
	}

	svc := testutil.NewFakeService()
	svc.Seed("1", "a", true)
	svc.Seed("2", "b", false)
	svc.Seed("3", "c", false)
	svc.Seed("4", "d", false)
	mgr = loadedManager(t, svc)

	if got := mgr.CompletionRatio(); got != 0.25 {
		t.Errorf("ratio = %v, want 0.25", got)
	}
}

func TestLoadThenAddScenario(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	mgr := loadedManager(t, svc)

	if visible := mgr.Visible(); len(visible) != 1 || visible[0].Title != "buy milk" {
		t.Fatalf("unexpected visible list: %+v", visible)
	}
	if got := mgr.CompletionRatio(); got != 0 {
		t.Errorf("ratio = %v, want 0", got)
	}

	created, err := mgr.Add(context.Background(), "walk dog")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got := mgr.Tasks()
	if len(got) != 2 || got[0].ID != created.ID || got[1].ID != "1" {
		t.Errorf("new task not prepended: %+v", got)
	}
}

func TestSaveEditBlankDraftKeepsDraftAndSkipsRemote(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	mgr := loadedManager(t, svc)

	if err := mgr.BeginEdit("1"); err != nil {
		t.Fatalf("BeginEdit failed: %v", err)
	}
	mgr.SetDraft("   ")

	_, err := mgr.SaveEdit(context.Background())
	if !errors.Is(err, tasklist.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if svc.UpdateCalls != 0 {
		t.Error("remote call made for blank draft")
	}
	edit, ok := mgr.Editing()
	if !ok {
		t.Fatal("edit draft should remain set")
	}
	if edit.ID != "1" || edit.Draft != "   " {
		t.Errorf("unexpected draft state: %+v", edit)
	}
}

func TestSaveEditReplacesTaskAndClearsDraft(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	svc.Seed("2", "walk dog", false)
	mgr := loadedManager(t, svc)

	if err := mgr.BeginEdit("1"); err != nil {
		t.Fatalf("BeginEdit failed: %v", err)
	}
	mgr.SetDraft("buy oat milk")

	updated, err := mgr.SaveEdit(context.Background())
	if err != nil {
		t.Fatalf("SaveEdit failed: %v", err)
	}
	if updated.Title != "buy oat milk" {
		t.Errorf("unexpected title: %q", updated.Title)
	}

	got := mgr.Tasks()
	if got[0].Title != "buy oat milk" || got[1].Title != "walk dog" {
		t.Errorf("unexpected collection: %+v", got)
	}
	if _, ok := mgr.Editing(); ok {
		t.Error("edit draft should be cleared after save")
	}
}

func TestSaveEditFailureKeepsDraft(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	mgr := loadedManager(t, svc)

	if err := mgr.BeginEdit("1"); err != nil {
		t.Fatalf("BeginEdit failed: %v", err)
	}
	mgr.SetDraft("renamed")
	svc.UpdateErr = errRemote

	if _, err := mgr.SaveEdit(context.Background()); !errors.Is(err, errRemote) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if edit, ok := mgr.Editing(); !ok || edit.Draft != "renamed" {
		t.Errorf("draft should survive a failed save, got %+v ok=%v", edit, ok)
	}
}

func TestCancelEditRestoresPriorState(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	mgr := loadedManager(t, svc)
	before := mgr.Tasks()

	if err := mgr.BeginEdit("1"); err != nil {
		t.Fatalf("BeginEdit failed: %v", err)
	}
	mgr.SetDraft("something else entirely")
	mgr.CancelEdit()

	if _, ok := mgr.Editing(); ok {
		t.Error("edit should be cleared after cancel")
	}
	if after := mgr.Tasks(); !reflect.DeepEqual(before, after) {
		t.Errorf("collection changed by cancelled edit:\nbefore %+v\nafter  %+v", before, after)
	}
	if svc.UpdateCalls != 0 {
		t.Error("cancelled edit made a remote call")
	}
}

func TestBeginEditReplacesPriorEdit(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("1", "buy milk", false)
	svc.Seed("2", "walk dog", false)
	mgr := loadedManager(t, svc)

	if err := mgr.BeginEdit("1"); err != nil {
		t.Fatalf("BeginEdit failed: %v", err)
	}
	mgr.SetDraft("half-typed")
	if err := mgr.BeginEdit("2"); err != nil {
		t.Fatalf("BeginEdit failed: %v", err)
	}

	edit, ok := mgr.Editing()
	if !ok || edit.ID != "2" || edit.Draft != "walk dog" {
		t.Errorf("expected fresh edit for task 2, got %+v ok=%v", edit, ok)
	}
}

func TestBeginEditUnknownTask(t *testing.T) {
	mgr := tasklist.New(testutil.NewFakeService())
	if err := mgr.BeginEdit("nope"); !errors.Is(err, tasklist.ErrUnknownTask) {
		t.Errorf("expected ErrUnknownTask, got %v", err)
	}
}

func TestSaveEditWithoutEdit(t *testing.T) {
	mgr := tasklist.New(testutil.NewFakeService())
	if _, err := mgr.SaveEdit(context.Background()); !errors.Is(err, tasklist.ErrNotEditing) {
		t.Errorf("expected ErrNotEditing, got %v", err)
	}
}
