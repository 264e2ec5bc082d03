package planner

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/julianstephens/daypad/internal/models"
)

func TestDropHalf(t *testing.T) {
	tests := []struct {
		y    float64
		want Half
	}{
		{100, HalfUpper},
		{109.9, HalfUpper},
		{110, HalfLower},
		{119, HalfLower},
	}
	for _, tt := range tests {
		if got := DropHalf(tt.y, 100, 20); got != tt.want {
			t.Errorf("DropHalf(%v, 100, 20) = %v, want %v", tt.y, got, tt.want)
		}
	}
}

func TestItemDropIndex(t *testing.T) {
	tests := []struct {
		name    string
		dragged int
		target  int
		half    Half
		want    int
	}{
		{"down, before target", 0, 2, HalfUpper, 1},
		{"down, after target", 0, 2, HalfLower, 2},
		{"up, before target", 2, 0, HalfUpper, 0},
		{"up, after target", 2, 0, HalfLower, 1},
		{"onto itself upper", 1, 1, HalfUpper, 1},
		{"onto itself lower", 1, 1, HalfLower, 1},
		{"after previous neighbour", 2, 1, HalfLower, 2},
		{"before next neighbour", 1, 2, HalfUpper, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ItemDropIndex(tt.dragged, tt.target, tt.half); got != tt.want {
				t.Errorf("ItemDropIndex(%d, %d, %v) = %d, want %d", tt.dragged, tt.target, tt.half, got, tt.want)
			}
		})
	}
}

func TestZoneDropIndex(t *testing.T) {
	if got := ZoneDropIndex(0, 3, ZoneBottom); got != 2 {
		t.Errorf("bottom from 0 = %d, want 2", got)
	}
	if got := ZoneDropIndex(2, 3, ZoneTop); got != 0 {
		t.Errorf("top from 2 = %d, want 0", got)
	}
	if got := ZoneDropIndex(2, 3, ZoneBottom); got != 2 {
		t.Errorf("bottom from last = %d, want 2 (no-op)", got)
	}
}

func TestRemapSelection(t *testing.T) {
	tests := []struct {
		name                         string
		selection, dragged, newIndex int
		want                         int
	}{
		{"none stays none", -1, 0, 2, -1},
		{"selected item follows", 0, 0, 2, 2},
		{"shifted up by downward move", 2, 0, 3, 1},
		{"shifted down by upward move", 1, 3, 0, 2},
		{"outside range untouched", 4, 0, 2, 4},
		{"below upward range untouched", 0, 3, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemapSelection(tt.selection, tt.dragged, tt.newIndex); got != tt.want {
				t.Errorf("RemapSelection(%d, %d, %d) = %d, want %d", tt.selection, tt.dragged, tt.newIndex, got, tt.want)
			}
		})
	}
}

// Remapping by index must agree with following the selected id through the splice.
func TestRemapSelection_MatchesSplice(t *testing.T) {
	todos := []models.TaskItem{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}
	for dragged := range todos {
		for to := range todos {
			moved := Splice(todos, dragged, to)
			for sel := range todos {
				got := RemapSelection(sel, dragged, to)
				if moved[got].ID != todos[sel].ID {
					t.Errorf("drag %d->%d, sel %d: remapped to %d (%s), want %s", dragged, to, sel, got, moved[got].ID, todos[sel].ID)
				}
			}
		}
	}
}

func TestDropOnZone_SelectionFollowsItem(t *testing.T) {
	f := newFixture(t)
	f.openWith(t, "2026-10-17", "A", "B", "C")
	if err := f.session.Select(0); err != nil {
		t.Fatal(err)
	}

	moved, err := f.session.DropOnZone(context.Background(), 0, ZoneBottom)
	if err != nil || !moved {
		t.Fatalf("DropOnZone() = (%v, %v)", moved, err)
	}
	if got := ids(f.session.Snapshot()); !equalStrings(got, []string{"B", "C", "A"}) {
		t.Errorf("order = %v, want [B C A]", got)
	}
	if sel, _ := f.session.Selection(); sel != 2 {
		t.Errorf("selection = %d, want 2", sel)
	}
	if f.store.saveCount() != 1 {
		t.Errorf("saves = %d, want 1", f.store.saveCount())
	}
	if len(f.saved) != 1 {
		t.Errorf("OnSaved calls = %d, want 1", len(f.saved))
	}
}

func TestDropOnItem(t *testing.T) {
	f := newFixture(t)
	f.openWith(t, "2026-10-17", "A", "B", "C", "D")
	ctx := context.Background()

	if _, err := f.session.DropOnItem(ctx, 3, 1, HalfUpper); err != nil {
		t.Fatal(err)
	}
	if got := ids(f.session.Snapshot()); !equalStrings(got, []string{"A", "D", "B", "C"}) {
		t.Errorf("after D before B: %v", got)
	}

	if _, err := f.session.DropOnItem(ctx, 0, 2, HalfLower); err != nil {
		t.Fatal(err)
	}
	if got := ids(f.session.Snapshot()); !equalStrings(got, []string{"D", "B", "A", "C"}) {
		t.Errorf("after A after B: %v", got)
	}
}

func TestDrop_NoOpDoesNotSave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWith(t, "2026-10-17", "A", "B", "C")

	cases := []struct {
		name string
		drop func() (bool, error)
	}{
		{"onto itself", func() (bool, error) { return f.session.DropOnItem(ctx, 1, 1, HalfUpper) }},
		{"after previous", func() (bool, error) { return f.session.DropOnItem(ctx, 1, 0, HalfLower) }},
		{"first to top", func() (bool, error) { return f.session.DropOnZone(ctx, 0, ZoneTop) }},
		{"last to bottom", func() (bool, error) { return f.session.DropOnZone(ctx, 2, ZoneBottom) }},
	}
	for _, c := range cases {
		moved, err := c.drop()
		if err != nil || moved {
			t.Errorf("%s: (%v, %v), want no-op", c.name, moved, err)
		}
	}
	if f.store.saveCount() != 0 {
		t.Errorf("no-op drops saved %d times", f.store.saveCount())
	}
	if got := ids(f.session.Snapshot()); !equalStrings(got, []string{"A", "B", "C"}) {
		t.Errorf("no-op drops changed order: %v", got)
	}
}

func TestDrop_SingleElement(t *testing.T) {
	f := newFixture(t)
	f.openWith(t, "2026-10-17", "only")
	for _, z := range []Zone{ZoneTop, ZoneBottom} {
		moved, err := f.session.DropOnZone(context.Background(), 0, z)
		if err != nil || moved {
			t.Errorf("DropOnZone(%v) = (%v, %v)", z, moved, err)
		}
	}
}

func TestDrop_InvalidIndex(t *testing.T) {
	f := newFixture(t)
	f.openWith(t, "2026-10-17", "A", "B")
	if _, err := f.session.DropOnItem(context.Background(), 0, 5, HalfUpper); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("DropOnItem() = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := f.session.DropOnZone(context.Background(), -1, ZoneTop); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("DropOnZone() = %v, want ErrIndexOutOfRange", err)
	}
}

func TestReorder_PreservesIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWith(t, "2026-10-17", "a", "b", "c", "d", "e", "f")
	want := ids(f.session.Snapshot())
	sort.Strings(want)

	rng := rand.New(rand.NewSource(42))
	if err := f.session.Select(3); err != nil {
		t.Fatal(err)
	}
	selected, _ := f.session.SelectedTask()

	for i := 0; i < 200; i++ {
		n := len(f.session.Snapshot().Todos)
		dragged := rng.Intn(n)
		var err error
		if rng.Intn(3) == 0 {
			_, err = f.session.DropOnZone(ctx, dragged, Zone(rng.Intn(2)))
		} else {
			_, err = f.session.DropOnItem(ctx, dragged, rng.Intn(n), Half(rng.Intn(2)))
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}

		got := ids(f.session.Snapshot())
		sort.Strings(got)
		if !equalStrings(got, want) {
			t.Fatalf("step %d: id multiset changed: %v", i, got)
		}
		if task, ok := f.session.SelectedTask(); !ok || task.ID != selected.ID {
			t.Fatalf("step %d: selection drifted to %+v", i, task)
		}
	}
}

func TestSplice(t *testing.T) {
	in := []models.TaskItem{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	out := Splice(in, 2, 0)
	if got := []string{out[0].ID, out[1].ID, out[2].ID}; !equalStrings(got, []string{"c", "a", "b"}) {
		t.Errorf("Splice(2->0) = %v", got)
	}
	if in[0].ID != "a" || in[2].ID != "c" {
		t.Error("Splice mutated its input")
	}
}
