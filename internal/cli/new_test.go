package cli

import "testing"

func TestRowLabel(t *testing.T) {
	tests := []struct {
		i    int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
	}
	for _, tt := range tests {
		if got := rowLabel(tt.i); got != tt.want {
			t.Errorf("rowLabel(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}

func TestNewLayoutShape(t *testing.T) {
	l := newLayout("Main Hall", "Stalls", 3, 4)

	if l.ID == "" || l.Name != "Main Hall" {
		t.Fatalf("layout = %+v", l)
	}
	if len(l.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(l.Sections))
	}

	sec := l.Sections[0]
	if sec.Title != "Stalls" || sec.ID == "" {
		t.Errorf("section = %+v", sec)
	}
	if len(sec.Grid) != 3 || len(sec.Grid[0]) != 4 {
		t.Fatalf("grid = %dx%d, want 3x4", len(sec.Grid), len(sec.Grid[0]))
	}
	if sec.Grid[0][0] != "A1" || sec.Grid[2][3] != "C4" {
		t.Errorf("seat ids = %v", sec.Grid)
	}
	if len(sec.RowLabels) != 3 || sec.RowLabels[2] != "C" {
		t.Errorf("row labels = %v", sec.RowLabels)
	}
}

func TestNewLayoutClampsDimensions(t *testing.T) {
	l := newLayout("x", "s", 0, -2)
	if len(l.Sections[0].Grid) != 1 || len(l.Sections[0].Grid[0]) != 1 {
		t.Errorf("grid = %v, want 1x1", l.Sections[0].Grid)
	}
}
