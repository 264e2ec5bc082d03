package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/julianstephens/daypad/internal/models"
)

func TestMoveToDate_FromResident(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWith(t, "2026-10-17", "a", "b", "c")
	f.store.records["2026-10-18"] = models.DayRecord{
		Date:  "2026-10-18",
		Todos: []models.TaskItem{{ID: "x", Text: "x"}},
	}
	if err := f.session.ToggleCompleted(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if err := f.session.Select(2); err != nil {
		t.Fatal(err)
	}

	if err := f.session.MoveToDate(ctx, "b", "2026-10-17", "2026-10-18"); err != nil {
		t.Fatalf("MoveToDate() error = %v", err)
	}

	if got := ids(f.session.Snapshot()); !equalStrings(got, []string{"a", "c"}) {
		t.Errorf("resident after move = %v", got)
	}
	if sel, _ := f.session.Selection(); sel != 1 {
		t.Errorf("selection = %d, want 1 (still on c)", sel)
	}

	target := f.store.stored("2026-10-18")
	if got := ids(target); !equalStrings(got, []string{"x", "b"}) {
		t.Errorf("target = %v, want [x b]", got)
	}
	if target.Todos[1].Completed || target.Todos[1].MoveToNextDay {
		t.Errorf("moved task not reset: %+v", target.Todos[1])
	}
	if got := ids(f.store.stored("2026-10-17")); !equalStrings(got, []string{"a", "c"}) {
		t.Errorf("stored source = %v", got)
	}
}

func TestMoveToDate_IntoResident(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.records["2026-10-16"] = models.DayRecord{
		Date:  "2026-10-16",
		Todos: []models.TaskItem{{ID: "old", Text: "old", Completed: true, MoveToNextDay: true}},
	}
	f.openWith(t, "2026-10-17", "a")

	if err := f.session.MoveToDate(ctx, "old", "2026-10-16", "2026-10-17"); err != nil {
		t.Fatalf("MoveToDate() error = %v", err)
	}

	snap := f.session.Snapshot()
	if got := ids(snap); !equalStrings(got, []string{"a", "old"}) {
		t.Fatalf("resident = %v", got)
	}
	if snap.Todos[1].Completed || snap.Todos[1].MoveToNextDay {
		t.Errorf("moved task not reset: %+v", snap.Todos[1])
	}
	if len(f.store.stored("2026-10-16").Todos) != 0 {
		t.Error("source still holds the task")
	}
}

func TestMoveToDate_RoundTripResetsCompleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWith(t, "2026-10-17", "a")
	if err := f.session.ToggleCompleted(ctx, 0); err != nil {
		t.Fatal(err)
	}

	if err := f.session.MoveToDate(ctx, "a", "2026-10-17", "2026-10-18"); err != nil {
		t.Fatal(err)
	}
	if err := f.session.MoveToDate(ctx, "a", "2026-10-18", "2026-10-17"); err != nil {
		t.Fatal(err)
	}

	snap := f.session.Snapshot()
	if len(snap.Todos) != 1 || snap.Todos[0].ID != "a" {
		t.Fatalf("after round trip: %+v", snap.Todos)
	}
	if snap.Todos[0].Completed {
		t.Error("Completed survived the round trip")
	}
	if len(f.store.stored("2026-10-18").Todos) != 0 {
		t.Error("intermediate date still holds the task")
	}
}

func TestMoveToDate_SameDate(t *testing.T) {
	f := newFixture(t)
	f.openWith(t, "2026-10-17", "a")
	err := f.session.MoveToDate(context.Background(), "a", "2026-10-17", "2026-10-17")
	if !errors.Is(err, ErrSameDate) {
		t.Errorf("MoveToDate() = %v, want ErrSameDate", err)
	}
	if f.store.saveCount() != 0 {
		t.Error("same-date move saved")
	}
}

func TestMoveToDate_UnknownTask(t *testing.T) {
	f := newFixture(t)
	f.openWith(t, "2026-10-17", "a")
	err := f.session.MoveToDate(context.Background(), "ghost", "2026-10-17", "2026-10-18")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("MoveToDate() = %v, want ErrTaskNotFound", err)
	}
}

func TestMoveToDate_TargetSaveFailureLeavesSource(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWith(t, "2026-10-17", "a", "b")
	if err := f.session.Select(1); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("target unwritable")
	f.store.saveErr["2026-10-18"] = boom

	err := f.session.MoveToDate(ctx, "a", "2026-10-17", "2026-10-18")
	if !errors.Is(err, boom) {
		t.Fatalf("MoveToDate() = %v, want %v", err, boom)
	}
	if got := ids(f.session.Snapshot()); !equalStrings(got, []string{"a", "b"}) {
		t.Errorf("source changed after failed move: %v", got)
	}
	if sel, _ := f.session.Selection(); sel != 1 {
		t.Errorf("selection changed after failed move: %d", sel)
	}
	if f.store.saveCount() != 0 {
		t.Errorf("saves = %d, want 0", f.store.saveCount())
	}
}

func TestMoveToDate_TargetLoadFailure(t *testing.T) {
	f := newFixture(t)
	f.openWith(t, "2026-10-17", "a")
	boom := errors.New("unreadable")
	f.store.loadErr["2026-10-18"] = boom

	if err := f.session.MoveToDate(context.Background(), "a", "2026-10-17", "2026-10-18"); !errors.Is(err, boom) {
		t.Fatalf("MoveToDate() = %v, want %v", err, boom)
	}
	if len(f.session.Snapshot().Todos) != 1 {
		t.Error("source changed after failed target load")
	}
}

func TestMoveToDate_ResidentTargetNotMutatedOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.records["2026-10-16"] = models.DayRecord{
		Date:  "2026-10-16",
		Todos: []models.TaskItem{{ID: "m", Text: "m"}},
	}
	f.openWith(t, "2026-10-17", "a")
	f.store.saveErr["2026-10-17"] = errors.New("nope")

	if err := f.session.MoveToDate(ctx, "m", "2026-10-16", "2026-10-17"); err == nil {
		t.Fatal("expected error")
	}
	if got := ids(f.session.Snapshot()); !equalStrings(got, []string{"a"}) {
		t.Errorf("resident target = %v, want unchanged", got)
	}
}

func TestMoveToDate_SourceSaveFailureDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWith(t, "2026-10-17", "a")
	f.store.saveErr["2026-10-17"] = errors.New("source stuck")

	if err := f.session.MoveToDate(ctx, "a", "2026-10-17", "2026-10-18"); err == nil {
		t.Fatal("expected error")
	}
	if got := ids(f.store.stored("2026-10-18")); !equalStrings(got, []string{"a"}) {
		t.Errorf("target = %v, want the task saved there", got)
	}
}

func TestMoveToDate_IntoDetachedDateKeepsPendingNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWith(t, "2026-10-18")
	if err := f.session.SetNotes("pending"); err != nil {
		t.Fatal(err)
	}
	f.openWith(t, "2026-10-17", "a")

	if err := f.session.MoveToDate(ctx, "a", "2026-10-17", "2026-10-18"); err != nil {
		t.Fatal(err)
	}

	target := f.store.stored("2026-10-18")
	if target.Notes != "pending" || len(target.Todos) != 1 {
		t.Errorf("target = %+v, want pending notes and the moved task", target)
	}

	// the pending notes save must not drop the moved task
	f.clock.Advance(2 * f.session.notes.Channel(notesChannel("2026-10-18")).Delay())
	if got := f.store.stored("2026-10-18"); len(got.Todos) != 1 {
		t.Errorf("debounced notes save lost the moved task: %+v", got)
	}
}
