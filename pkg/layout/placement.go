package layout

import (
	"encoding/json"
	"math"

	"github.com/hallforge/seatplan/pkg/geom"
)

// Cascading default applied when a section carries no persisted position:
// section i lands at (50 + 20*i, 50 + 20*i) so freshly imported sections
// fan out diagonally instead of stacking.
const (
	defaultOrigin float64 = 50
	defaultStep   float64 = 20
)

// Placement is the canonical geometry of one section on the canvas: a
// logical (unzoomed) position and a rotation in degrees, kept normalized to
// [0, 360).
type Placement struct {
	X        float64
	Y        float64
	Rotation float64
}

// Pos returns the placement position as a point in logical space.
func (p Placement) Pos() geom.Point {
	return geom.Point{X: p.X, Y: p.Y}
}

// NormalizeRotation wraps degrees into [0, 360). Negative deltas are wrapped
// rather than stored signed, so four +90 rotations and one -360 rotation are
// both identities.
func NormalizeRotation(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// Placements is the live, editor-owned geometry for every section of the
// active layout. It is created by [Hydrate] when a layout is loaded,
// mutated only by the interaction session during drag and rotate, and
// folded back into section metadata by the persistence bridge on save or
// export. It is never persisted directly.
type Placements struct {
	byID map[string]Placement
}

// Hydrate builds live placements from a layout's sections. Each coordinate
// comes from the section's meta, falling back per field to the cascading
// default position and zero rotation. This is the single place defaulting
// happens; the rest of the editor only ever sees fully populated placements.
func Hydrate(sections []Section) *Placements {
	p := &Placements{byID: make(map[string]Placement, len(sections))}
	for i, s := range sections {
		fallback := defaultOrigin + defaultStep*float64(i)

		pl := Placement{X: fallback, Y: fallback}
		if v, ok := metaNumber(s.Meta, MetaX); ok {
			pl.X = v
		}
		if v, ok := metaNumber(s.Meta, MetaY); ok {
			pl.Y = v
		}
		if v, ok := metaNumber(s.Meta, MetaRotation); ok {
			pl.Rotation = NormalizeRotation(v)
		}
		p.byID[s.ID] = pl
	}
	return p
}

// Get returns the placement for a section id.
func (p *Placements) Get(id string) (Placement, bool) {
	pl, ok := p.byID[id]
	return pl, ok
}

// Len returns the number of tracked sections.
func (p *Placements) Len() int {
	return len(p.byID)
}

// MoveTo sets a section's logical position. Unknown ids are ignored;
// hydration guarantees every section of the active layout is present.
func (p *Placements) MoveTo(id string, pos geom.Point) {
	pl, ok := p.byID[id]
	if !ok {
		return
	}
	pl.X = pos.X
	pl.Y = pos.Y
	p.byID[id] = pl
}

// Rotate adds delta degrees to a section's rotation, normalized to [0, 360).
func (p *Placements) Rotate(id string, delta float64) {
	pl, ok := p.byID[id]
	if !ok {
		return
	}
	pl.Rotation = NormalizeRotation(pl.Rotation + delta)
	p.byID[id] = pl
}

// Snapshot returns a copy of the current placements, keyed by section id.
// The bridge reads this during save and export so in-flight edits after the
// snapshot cannot tear a write.
func (p *Placements) Snapshot() map[string]Placement {
	out := make(map[string]Placement, len(p.byID))
	for id, pl := range p.byID {
		out[id] = pl
	}
	return out
}

// Fold returns a copy of l with the live placements written into each
// section's meta. Sections without live state get zero position and zero
// rotation rather than blocking the save of the rest.
func Fold(l Layout, p *Placements) Layout {
	out := l
	out.Sections = make([]Section, len(l.Sections))
	for i, s := range l.Sections {
		var pl Placement
		if p != nil {
			pl, _ = p.Get(s.ID)
		}

		meta := make(map[string]any, len(s.Meta)+3)
		for k, v := range s.Meta {
			meta[k] = v
		}
		meta[MetaX] = pl.X
		meta[MetaY] = pl.Y
		meta[MetaRotation] = pl.Rotation

		s.Meta = meta
		out.Sections[i] = s
	}
	return out
}

// metaNumber extracts a numeric meta value. JSON decoding yields float64 for
// numbers, but documents built in code may hold ints.
func metaNumber(meta map[string]any, key string) (float64, bool) {
	v, ok := meta[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
