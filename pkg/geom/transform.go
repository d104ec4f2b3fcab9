// Package geom provides the coordinate math for the canvas editor.
//
// Two coordinate spaces exist: logical coordinates (the persisted x/y of a
// section, independent of zoom) and screen coordinates (pointer and render
// positions on the visible canvas). The two are related by a single scalar
// zoom factor:
//
//	screen  = logical * zoom
//	logical = screen / zoom
//
// Every placement computation in the editor goes through [Forward] and
// [Inverse] so that a section's rendered position always equals its logical
// position scaled by the current zoom, no matter how zoom changed between
// drag operations.
package geom

// Point is a position in either logical or screen space.
type Point struct {
	X float64
	Y float64
}

// Add returns p + q componentwise.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q componentwise.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Forward converts a logical position to screen coordinates at zoom z.
// z > 0 is an invariant maintained by [Zoom]; it is not re-validated here.
func Forward(p Point, z float64) Point {
	return Point{X: p.X * z, Y: p.Y * z}
}

// Inverse converts a screen position back to logical coordinates at zoom z.
func Inverse(p Point, z float64) Point {
	return Point{X: p.X / z, Y: p.Y / z}
}
