package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hallforge/seatplan/pkg/grid"
)

// cellCanvas is a fixed-size buffer of terminal cells. The editor blits
// section renderings into it in draw order, later sections covering earlier
// ones, then styles the whole frame at once.
type cellCanvas struct {
	w, h  int
	cells [][]grid.Cell
}

func newCellCanvas(w, h int) *cellCanvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	cells := make([][]grid.Cell, h)
	for y := range cells {
		row := make([]grid.Cell, w)
		for x := range row {
			row[x] = grid.Cell{Ch: ' '}
		}
		cells[y] = row
	}
	return &cellCanvas{w: w, h: h, cells: cells}
}

// set places a cell, silently dropping anything outside the buffer so
// sections dragged past the viewport simply clip.
func (cv *cellCanvas) set(x, y int, c grid.Cell) {
	if x < 0 || y < 0 || x >= cv.w || y >= cv.h {
		return
	}
	cv.cells[y][x] = c
}

// blit copies a rendered cell block with its top-left at (x, y).
func (cv *cellCanvas) blit(x, y int, block [][]grid.Cell) {
	for dy, row := range block {
		for dx, c := range row {
			cv.set(x+dx, y+dy, c)
		}
	}
}

// blitString writes a single styled text run at (x, y).
func (cv *cellCanvas) blitString(x, y int, s string, style lipgloss.Style) {
	for i, ch := range []rune(s) {
		cv.set(x+i, y, grid.Cell{Ch: ch, Style: style})
	}
}

// render styles every cell and joins rows into a frame.
func (cv *cellCanvas) render() string {
	var b strings.Builder
	for y, row := range cv.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteString(c.Style.Render(string(c.Ch)))
		}
	}
	return b.String()
}
