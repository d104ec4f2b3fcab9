// Package layout defines the persisted layout document model and the live
// placement state derived from it.
//
// A Layout is the top-level persisted unit: a named, ordered collection of
// sections. A Section is an independently positionable block holding a grid
// of seats. Grids may be ragged and individual cells may be empty; an empty
// cell is serialized as JSON null and rendered as spacing, not a seat.
//
// Position and rotation are persisted inside each section's free-form meta
// map. [Hydrate] turns that metadata into live [Placements] once per layout
// load, and [Fold] writes edited placements back when saving or exporting.
package layout

import (
	"encoding/json"
	"strings"
)

// Meta keys carrying a section's persisted geometry.
const (
	MetaX        = "x"
	MetaY        = "y"
	MetaRotation = "rotation"
)

// SeatID identifies a single seat within a section's grid. The empty value
// marks a gap cell and round-trips as JSON null.
type SeatID string

// IsGap reports whether the cell holds no seat.
func (s SeatID) IsGap() bool {
	return s == ""
}

// MarshalJSON encodes gap cells as null.
func (s SeatID) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON decodes null as a gap cell.
func (s *SeatID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = SeatID(v)
	return nil
}

// Row is one row of a section grid. Rows within a grid may differ in length.
type Row []SeatID

// Section is a named, independently positionable block of seats.
type Section struct {
	ID        string         `json:"id"`
	Title     string         `json:"title,omitempty"`
	Grid      []Row          `json:"grid"`
	RowLabels []string       `json:"rowLabels,omitempty"`
	SeatSize  int            `json:"seatSize,omitempty"`
	GapSize   int            `json:"gapSize,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
}

// Rows returns the number of grid rows.
func (s Section) Rows() int {
	return len(s.Grid)
}

// Cols returns the widest row length. Ragged grids report the maximum.
func (s Section) Cols() int {
	cols := 0
	for _, row := range s.Grid {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// Label returns the display title, falling back to the id.
func (s Section) Label() string {
	if s.Title != "" {
		return s.Title
	}
	return s.ID
}

// Layout is the top-level persisted unit: a named collection of sections.
// Identity is the id; the name is a display label and need not be unique.
type Layout struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Sections []Section `json:"sections"`
}

// Section returns the section with the given id.
func (l Layout) Section(id string) (Section, bool) {
	for _, s := range l.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// ExportName returns the layout's display name with whitespace collapsed to
// underscores, suitable for a downloadable filename. Falls back to the id
// when the name is empty.
func (l Layout) ExportName() string {
	name := strings.Join(strings.Fields(l.Name), "_")
	if name == "" {
		name = l.ID
	}
	return name
}
