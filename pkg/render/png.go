// Package render rasterizes a layout document to an image.
//
// Sections are drawn at their logical positions scaled by a fixed
// pixels-per-unit factor, rotated about their centers. Seat cells become
// filled squares; gap cells are left empty. The output is a plain
// image.Image so callers choose how to encode or store it.
package render

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/hallforge/seatplan/pkg/layout"
)

// Options control rasterization.
type Options struct {
	// Scale is pixels per logical unit. Zero means DefaultScale.
	Scale float64
	// Margin is the border around the drawing, in pixels. Zero means
	// DefaultMargin.
	Margin float64
}

// Defaults for Options.
const (
	DefaultScale  = 4.0
	DefaultMargin = 24.0
)

func (o *Options) fill() {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
}

// sectionExtent returns a section's width and height in logical units.
func sectionExtent(sec layout.Section) (float64, float64) {
	seat := float64(sec.SeatSize)
	if seat <= 0 {
		seat = 4
	}
	gap := float64(sec.GapSize)
	if gap <= 0 {
		gap = 1
	}
	rows := float64(sec.Rows())
	cols := float64(sec.Cols())
	if rows == 0 || cols == 0 {
		return 0, 0
	}
	return cols*seat + (cols-1)*gap, rows*seat + (rows-1)*gap
}

// Draw rasterizes the layout with the given placements. Sections without
// live state draw at the origin with no rotation, mirroring the zero
// default used at save time.
func Draw(l layout.Layout, placements *layout.Placements, opts Options) image.Image {
	opts.fill()

	// Canvas bounds: the rotated bounding box of every section.
	maxX, maxY := 0.0, 0.0
	for _, sec := range l.Sections {
		pl := placementFor(placements, sec.ID)
		w, h := sectionExtent(sec)
		x2, y2 := rotatedMax(pl, w, h)
		maxX = math.Max(maxX, x2)
		maxY = math.Max(maxY, y2)
	}

	width := int(maxX*opts.Scale + 2*opts.Margin)
	height := int(maxY*opts.Scale + 2*opts.Margin)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for _, sec := range l.Sections {
		drawSection(dc, sec, placementFor(placements, sec.ID), opts)
	}
	return dc.Image()
}

func placementFor(placements *layout.Placements, id string) layout.Placement {
	if placements == nil {
		return layout.Placement{}
	}
	pl, _ := placements.Get(id)
	return pl
}

// rotatedMax returns the maximum x/y reached by the section's corners
// after rotation about its center.
func rotatedMax(pl layout.Placement, w, h float64) (float64, float64) {
	cx, cy := pl.X+w/2, pl.Y+h/2
	rad := gg.Radians(pl.Rotation)
	sin, cos := math.Sin(rad), math.Cos(rad)

	maxX, maxY := 0.0, 0.0
	for _, corner := range [4][2]float64{{pl.X, pl.Y}, {pl.X + w, pl.Y}, {pl.X, pl.Y + h}, {pl.X + w, pl.Y + h}} {
		dx, dy := corner[0]-cx, corner[1]-cy
		x := cx + dx*cos - dy*sin
		y := cy + dx*sin + dy*cos
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return maxX, maxY
}

func drawSection(dc *gg.Context, sec layout.Section, pl layout.Placement, opts Options) {
	w, h := sectionExtent(sec)
	if w == 0 || h == 0 {
		return
	}

	seat := float64(sec.SeatSize)
	if seat <= 0 {
		seat = 4
	}
	gap := float64(sec.GapSize)
	if gap <= 0 {
		gap = 1
	}

	ox := pl.X*opts.Scale + opts.Margin
	oy := pl.Y*opts.Scale + opts.Margin
	cx := ox + w*opts.Scale/2
	cy := oy + h*opts.Scale/2

	dc.Push()
	dc.RotateAbout(gg.Radians(pl.Rotation), cx, cy)

	// Section outline.
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.DrawRectangle(ox-2, oy-2, w*opts.Scale+4, h*opts.Scale+4)
	dc.Stroke()

	// Seats.
	dc.SetRGB(0.25, 0.32, 0.45)
	for y, row := range sec.Grid {
		for x, seatID := range row {
			if seatID.IsGap() {
				continue
			}
			px := ox + float64(x)*(seat+gap)*opts.Scale
			py := oy + float64(y)*(seat+gap)*opts.Scale
			dc.DrawRectangle(px, py, seat*opts.Scale, seat*opts.Scale)
			dc.Fill()
		}
	}

	dc.Pop()
}

// WritePNG rasterizes the layout and encodes it as PNG to w.
func WritePNG(w io.Writer, l layout.Layout, placements *layout.Placements, opts Options) error {
	img := Draw(l, placements, opts)
	if err := gg.NewContextForImage(img).EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
