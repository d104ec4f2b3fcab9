package grid

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/hallforge/seatplan/pkg/layout"
)

func testSection() layout.Section {
	return layout.Section{
		ID:       "stalls",
		SeatSize: 2,
		GapSize:  1,
		Grid: []layout.Row{
			{"A1", "A2", "A3"},
			{"B1", "", "B3"},
		},
	}
}

func TestSeatWidthScalesWithZoom(t *testing.T) {
	sec := testSection()

	if w := SeatWidth(sec, 1.0); w != 2 {
		t.Errorf("width at 1.0 = %d, want 2", w)
	}
	if w := SeatWidth(sec, 2.0); w != 4 {
		t.Errorf("width at 2.0 = %d, want 4", w)
	}
	// Never collapses below one cell.
	if w := SeatWidth(sec, 0.1); w != 1 {
		t.Errorf("width at 0.1 = %d, want 1", w)
	}
}

func TestSeatWidthDefaults(t *testing.T) {
	if w := SeatWidth(layout.Section{}, 1.0); w != DefaultSeatSize {
		t.Errorf("width = %d, want default %d", w, DefaultSeatSize)
	}
}

func TestQuarterTurns(t *testing.T) {
	tests := []struct {
		rotation float64
		want     int
	}{
		{0, 0},
		{90, 1},
		{180, 2},
		{270, 3},
		{360, 0},
		{89, 1},
		{271, 3},
	}
	for _, tt := range tests {
		if got := QuarterTurns(tt.rotation); got != tt.want {
			t.Errorf("QuarterTurns(%v) = %d, want %d", tt.rotation, got, tt.want)
		}
	}
}

func TestRotateClockwise(t *testing.T) {
	rows := []layout.Row{
		{"A1", "A2"},
		{"B1", "B2"},
	}

	turned := Rotate(rows, 1)
	// Clockwise: first column becomes first row, bottom-up.
	want := []layout.Row{
		{"B1", "A1"},
		{"B2", "A2"},
	}
	for y := range want {
		for x := range want[y] {
			if turned[y][x] != want[y][x] {
				t.Fatalf("turned = %v, want %v", turned, want)
			}
		}
	}

	// Four turns are an identity.
	back := Rotate(rows, 4)
	if back[0][0] != "A1" || back[1][1] != "B2" {
		t.Errorf("four turns = %v, want original", back)
	}
}

func TestRotateSquaresRaggedRows(t *testing.T) {
	rows := []layout.Row{
		{"A1", "A2", "A3"},
		{"B1"},
	}
	turned := Rotate(rows, 1)
	if len(turned) != 3 {
		t.Fatalf("rows after turn = %d, want 3", len(turned))
	}
	for _, row := range turned {
		if len(row) != 2 {
			t.Errorf("ragged row not squared: %v", turned)
		}
	}
}

func TestRenderDimensions(t *testing.T) {
	sec := testSection()
	cells := Render(sec, 0, 1.0, nil)

	if len(cells) != 2 {
		t.Fatalf("rows = %d, want 2", len(cells))
	}
	// 3 seats of width 2 with 2 single-cell gaps.
	w, h := Size(sec, 0, 1.0)
	if w != 8 || h != 2 {
		t.Errorf("Size = %dx%d, want 8x2", w, h)
	}
	if len(cells[0]) != w {
		t.Errorf("row width = %d, want %d", len(cells[0]), w)
	}
}

func TestRenderGapCellsAreSpacing(t *testing.T) {
	cells := Render(testSection(), 0, 1.0, nil)

	// Row B: seat, gap column, empty seat cell, gap column, seat.
	row := cells[1]
	for _, c := range row[3:5] {
		if !c.Seat.IsGap() || c.Ch != ' ' {
			t.Errorf("gap cell rendered as seat: %+v", c)
		}
	}
	if row[0].Seat != "B1" {
		t.Errorf("first cell = %+v, want seat B1", row[0])
	}
}

func TestRenderDecoration(t *testing.T) {
	clicked := ""
	dec := func(seat layout.SeatID, row, col int) *Decoration {
		if seat == "A2" {
			return &Decoration{
				Highlight: lipgloss.Color("205"),
				OnClick:   func() { clicked = string(seat) },
			}
		}
		return nil
	}

	cells := Render(testSection(), 0, 1.0, dec)

	var a2 *Cell
	for i := range cells[0] {
		if cells[0][i].Seat == "A2" {
			a2 = &cells[0][i]
			break
		}
	}
	if a2 == nil {
		t.Fatal("A2 not rendered")
	}
	if a2.Click == nil {
		t.Fatal("decoration click handler not attached")
	}
	a2.Click()
	if clicked != "A2" {
		t.Errorf("clicked = %q", clicked)
	}
}

func TestRenderRowLabels(t *testing.T) {
	sec := testSection()
	sec.RowLabels = []string{"A", "B"}

	cells := Render(sec, 0, 1.0, nil)
	if cells[0][0].Ch != 'A' || cells[1][0].Ch != 'B' {
		t.Errorf("row labels not rendered: %c %c", cells[0][0].Ch, cells[1][0].Ch)
	}

	// Labels are dropped in rotated orientations.
	w0, _ := Size(sec, 0, 1.0)
	w90, _ := Size(sec, 90, 1.0)
	if w90 >= w0 {
		t.Errorf("rotated width %d should drop the label gutter (unrotated %d)", w90, w0)
	}
}

func TestLines(t *testing.T) {
	lines := Lines(Render(testSection(), 0, 1.0, nil))
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	if lines[0] == "" {
		t.Error("empty rendered line")
	}
}
