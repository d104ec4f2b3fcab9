package layout

import (
	"encoding/json"
	"testing"
)

func TestSeatIDNullRoundTrip(t *testing.T) {
	row := Row{"A1", "", "A3"}

	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["A1",null,"A3"]` {
		t.Errorf("marshal = %s, want gap as null", data)
	}

	var back Row
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 3 || back[0] != "A1" || !back[1].IsGap() || back[2] != "A3" {
		t.Errorf("round-trip = %v", back)
	}
}

func TestSectionRaggedGrid(t *testing.T) {
	s := Section{
		ID: "stalls",
		Grid: []Row{
			{"A1", "A2", "A3"},
			{"B1"},
			{"C1", "C2"},
		},
	}

	if s.Rows() != 3 {
		t.Errorf("Rows = %d, want 3", s.Rows())
	}
	if s.Cols() != 3 {
		t.Errorf("Cols = %d, want widest row 3", s.Cols())
	}
}

func TestSectionLabel(t *testing.T) {
	if got := (Section{ID: "s1", Title: "Balcony"}).Label(); got != "Balcony" {
		t.Errorf("Label = %q", got)
	}
	if got := (Section{ID: "s1"}).Label(); got != "s1" {
		t.Errorf("Label fallback = %q", got)
	}
}

func TestLayoutSectionLookup(t *testing.T) {
	l := Layout{
		ID:       "main",
		Sections: []Section{{ID: "a"}, {ID: "b"}},
	}

	if _, ok := l.Section("b"); !ok {
		t.Error("Section(b) not found")
	}
	if _, ok := l.Section("zzz"); ok {
		t.Error("Section(zzz) should not be found")
	}
}

func TestExportName(t *testing.T) {
	tests := []struct {
		name string
		in   Layout
		want string
	}{
		{"spaces collapse", Layout{ID: "l1", Name: "Main  Hall Floor"}, "Main_Hall_Floor"},
		{"tabs and newlines", Layout{ID: "l1", Name: "a\tb\nc"}, "a_b_c"},
		{"empty name falls back to id", Layout{ID: "l1"}, "l1"},
		{"whitespace-only name falls back", Layout{ID: "l1", Name: "   "}, "l1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.ExportName(); got != tt.want {
				t.Errorf("ExportName = %q, want %q", got, tt.want)
			}
		})
	}
}
