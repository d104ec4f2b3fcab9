package bridge

import (
	"bytes"
	"context"
	"strings"
	"testing"

	apperrors "github.com/hallforge/seatplan/pkg/errors"
	"github.com/hallforge/seatplan/pkg/geom"
	"github.com/hallforge/seatplan/pkg/layout"
	"github.com/hallforge/seatplan/pkg/store"
)

func seedStore(t *testing.T, layouts string) store.Store {
	t.Helper()
	s := store.NewMemoryStore()
	if layouts != "" {
		if err := s.Set(context.Background(), KeyLayouts, layouts); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return s
}

const twoSectionLayout = `[{
	"id": "main",
	"name": "Main Hall",
	"sections": [
		{"id": "a", "grid": [["A1","A2"]], "meta": {"x": 10, "y": 10, "rotation": 0}},
		{"id": "b", "grid": [["B1"]]}
	]
}]`

func TestLoadEmptyStore(t *testing.T) {
	r := NewRepository(seedStore(t, ""), nil)
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(r.Layouts()) != 0 {
		t.Errorf("Layouts = %d, want 0", len(r.Layouts()))
	}
}

func TestLoadCorruptStorageDegrades(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"invalid json", `{{{not json`},
		{"non-array shape", `{"id": "main"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRepository(seedStore(t, tt.raw), nil)
			if err := r.Load(context.Background()); err != nil {
				t.Fatalf("corrupt storage must not error: %v", err)
			}
			if len(r.Layouts()) != 0 {
				t.Errorf("Layouts = %d, want empty collection", len(r.Layouts()))
			}
		})
	}
}

func TestSelectHydratesDefaults(t *testing.T) {
	r := NewRepository(seedStore(t, twoSectionLayout), nil)
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	_, placements, err := r.Select(context.Background(), "main")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	a, _ := placements.Get("a")
	if a.X != 10 || a.Y != 10 || a.Rotation != 0 {
		t.Errorf("a = %+v, want meta values", a)
	}
	// b has no meta: index 1 gets 50+20*1.
	b, _ := placements.Get("b")
	if b.X != 70 || b.Y != 70 || b.Rotation != 0 {
		t.Errorf("b = %+v, want {70 70 0}", b)
	}
}

func TestSelectUnknownLayout(t *testing.T) {
	r := NewRepository(seedStore(t, twoSectionLayout), nil)
	_ = r.Load(context.Background())

	_, _, err := r.Select(context.Background(), "ghost")
	if !apperrors.Is(err, apperrors.ErrCodeLayoutNotFound) {
		t.Errorf("err = %v, want LAYOUT_NOT_FOUND", err)
	}
}

func TestSaveReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t, twoSectionLayout)

	r := NewRepository(s, nil)
	_ = r.Load(ctx)
	_, placements, _ := r.Select(ctx, "main")

	// Drag a from (10,10) to (30,30) at zoom 1.0.
	placements.MoveTo("a", geom.Point{X: 30, Y: 30})
	if err := r.Save(ctx, placements); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Reload from the same store.
	fresh := NewRepository(s, nil)
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	_, reloaded, err := fresh.Select(ctx, "main")
	if err != nil {
		t.Fatalf("reselect: %v", err)
	}

	a, _ := reloaded.Get("a")
	if a.X != 30 || a.Y != 30 || a.Rotation != 0 {
		t.Errorf("a = %+v, want {30 30 0}", a)
	}
	// b was never edited; the fold wrote its hydrated default, so it
	// reports the same position after reload.
	b, _ := reloaded.Get("b")
	if b.X != 70 || b.Y != 70 {
		t.Errorf("b = %+v, want {70 70}", b)
	}
}

func TestSaveIdempotent(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t, twoSectionLayout)

	r := NewRepository(s, nil)
	_ = r.Load(ctx)
	_, placements, _ := r.Select(ctx, "main")

	if err := r.Save(ctx, placements); err != nil {
		t.Fatalf("first save: %v", err)
	}
	first, _ := s.Get(ctx, KeyLayouts)

	if err := r.Save(ctx, placements); err != nil {
		t.Fatalf("second save: %v", err)
	}
	second, _ := s.Get(ctx, KeyLayouts)

	if first != second {
		t.Error("repeated save without edits should be byte-identical")
	}
}

func TestSaveWithoutActiveLayout(t *testing.T) {
	r := NewRepository(seedStore(t, twoSectionLayout), nil)
	_ = r.Load(context.Background())

	err := r.Save(context.Background(), nil)
	if !apperrors.Is(err, apperrors.ErrCodeNoActiveLayout) {
		t.Errorf("err = %v, want NO_ACTIVE_LAYOUT", err)
	}
}

func TestExportDoesNotTouchStore(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t, twoSectionLayout)

	r := NewRepository(s, nil)
	_ = r.Load(ctx)
	_, placements, _ := r.Select(ctx, "main")
	placements.MoveTo("a", geom.Point{X: 99, Y: 99})

	before, _ := s.Get(ctx, KeyLayouts)

	var buf bytes.Buffer
	if err := r.Export(&buf, placements); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), `"id": "main"`) {
		t.Errorf("export output missing document: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "99") {
		t.Error("export should contain the folded live position")
	}

	after, _ := s.Get(ctx, KeyLayouts)
	if before != after {
		t.Error("export must not mutate stored state")
	}
}

func TestExportWithoutActiveLayout(t *testing.T) {
	r := NewRepository(seedStore(t, twoSectionLayout), nil)
	_ = r.Load(context.Background())

	var buf bytes.Buffer
	err := r.Export(&buf, nil)
	if !apperrors.Is(err, apperrors.ErrCodeNoActiveLayout) {
		t.Errorf("err = %v, want NO_ACTIVE_LAYOUT", err)
	}
	if buf.Len() != 0 {
		t.Error("failed export must write nothing")
	}
}

func TestExportFilename(t *testing.T) {
	r := NewRepository(seedStore(t, twoSectionLayout), nil)
	_ = r.Load(context.Background())
	_, _, _ = r.Select(context.Background(), "main")

	name, err := r.ExportFilename()
	if err != nil {
		t.Fatalf("ExportFilename: %v", err)
	}
	if name != "Main_Hall.json" {
		t.Errorf("name = %q, want Main_Hall.json", name)
	}
}

func TestLastSelectedRestored(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t, twoSectionLayout)

	r := NewRepository(s, nil)
	_ = r.Load(ctx)
	_, _, _ = r.Select(ctx, "main")

	fresh := NewRepository(s, nil)
	_ = fresh.Load(ctx)
	if active, ok := fresh.Active(); !ok || active.ID != "main" {
		t.Errorf("Active after reload = %v ok=%v, want main", active.ID, ok)
	}
}

func TestAddPersists(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t, "")

	r := NewRepository(s, nil)
	_ = r.Load(ctx)
	if err := r.Add(ctx, layout.Layout{ID: "new", Name: "New Hall"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	fresh := NewRepository(s, nil)
	_ = fresh.Load(ctx)
	if _, ok := fresh.Layout("new"); !ok {
		t.Error("added layout not found after reload")
	}
}
