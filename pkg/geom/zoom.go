package geom

import "math"

// Zoom bounds and step size. The bounds are exact two-decimal values, so
// rounding each step to two decimals before clamping always lands exactly
// on a bound instead of drifting to values like 2.49999.
const (
	ZoomMin     = 0.1
	ZoomMax     = 2.5
	ZoomStep    = 0.1
	ZoomDefault = 1.0
)

// Zoom owns the global zoom factor, bounded to [ZoomMin, ZoomMax] and
// adjusted in ZoomStep increments. Stepping past a bound is a no-op, not an
// error.
//
// Any change to the factor fires the registered on-change callback. The
// editor uses this to cancel an in-progress drag: the screen-to-logical
// mapping captured at drag start is invalidated by a zoom change, and
// continuing the drag would make the section jump.
type Zoom struct {
	factor   float64
	onChange func(factor float64)
}

// NewZoom creates a zoom controller at ZoomDefault.
func NewZoom() *Zoom {
	return &Zoom{factor: ZoomDefault}
}

// Factor returns the current zoom factor.
func (z *Zoom) Factor() float64 {
	return z.factor
}

// Percent returns the factor as a whole percentage for display.
func (z *Zoom) Percent() int {
	return int(math.Round(z.factor * 100))
}

// OnChange registers fn to be called after every change to the factor.
// Only one callback is held; registering replaces the previous one.
func (z *Zoom) OnChange(fn func(factor float64)) {
	z.onChange = fn
}

// Increase steps the factor up, clamped to ZoomMax.
func (z *Zoom) Increase() {
	z.set(round2(z.factor + ZoomStep))
}

// Decrease steps the factor down, clamped to ZoomMin.
func (z *Zoom) Decrease() {
	z.set(round2(z.factor - ZoomStep))
}

// Reset sets the factor to exactly ZoomDefault.
func (z *Zoom) Reset() {
	z.set(ZoomDefault)
}

func (z *Zoom) set(v float64) {
	if v < ZoomMin {
		v = ZoomMin
	}
	if v > ZoomMax {
		v = ZoomMax
	}
	if v == z.factor {
		return
	}
	z.factor = v
	if z.onChange != nil {
		z.onChange(v)
	}
}

// round2 rounds to two decimal places so repeated steps do not accumulate
// floating-point drift.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
