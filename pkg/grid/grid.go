// Package grid renders a section's seat grid for a terminal canvas.
//
// The renderer is a passive collaborator: it is a pure function of a
// section document and a zoom factor, producing a positioned matrix of
// terminal cells. It owns no editor state; selection highlighting and
// click behavior arrive through an optional per-seat decoration callback,
// so the editor can decorate seats without owning rendering.
package grid

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/hallforge/seatplan/pkg/layout"
)

// Defaults applied when a section document leaves seatSize or gapSize unset.
const (
	DefaultSeatSize = 4
	DefaultGapSize  = 1
)

var (
	seatStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Decoration is per-seat presentation supplied by the consumer.
type Decoration struct {
	Highlight lipgloss.Color // background color override
	Tooltip   string         // hover text, surfaced by hosts that support it
	Extra     string         // appended inside the cell when room allows
	OnClick   func()         // invoked when the host routes a click to the seat
	Cursor    string         // pointer shape hint for GUI hosts
}

// Decorator returns the decoration for a seat, or nil for plain rendering.
type Decorator func(seat layout.SeatID, row, col int) *Decoration

// Cell is a single terminal cell of a rendered section.
type Cell struct {
	Ch    rune
	Style lipgloss.Style
	Seat  layout.SeatID // non-empty when the cell belongs to a seat
	Click func()
}

// SeatWidth returns the rendered width of one seat cell at the given zoom,
// never below one terminal cell.
func SeatWidth(sec layout.Section, zoom float64) int {
	base := sec.SeatSize
	if base <= 0 {
		base = DefaultSeatSize
	}
	w := int(math.Round(float64(base) * zoom))
	if w < 1 {
		w = 1
	}
	return w
}

func gapWidth(sec layout.Section, zoom float64) int {
	base := sec.GapSize
	if base <= 0 {
		base = DefaultGapSize
	}
	g := int(math.Round(float64(base) * zoom))
	if g < 1 {
		g = 1
	}
	return g
}

// QuarterTurns maps a rotation in degrees to the nearest number of
// clockwise quarter turns in 0..3. Terminal cells cannot rotate freely;
// the grid is re-oriented instead.
func QuarterTurns(rotation float64) int {
	t := int(math.Round(rotation/90)) % 4
	if t < 0 {
		t += 4
	}
	return t
}

// Rotate returns the grid turned clockwise by the given quarter turns.
// Ragged rows are squared up with gap cells first so the result stays
// rectangular.
func Rotate(rows []layout.Row, turns int) []layout.Row {
	turns = ((turns % 4) + 4) % 4
	out := square(rows)
	for i := 0; i < turns; i++ {
		out = turnClockwise(out)
	}
	return out
}

func square(rows []layout.Row) []layout.Row {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	out := make([]layout.Row, len(rows))
	for i, r := range rows {
		row := make(layout.Row, cols)
		copy(row, r)
		out[i] = row
	}
	return out
}

func turnClockwise(rows []layout.Row) []layout.Row {
	if len(rows) == 0 {
		return nil
	}
	h, w := len(rows), len(rows[0])
	out := make([]layout.Row, w)
	for x := 0; x < w; x++ {
		row := make(layout.Row, h)
		for y := 0; y < h; y++ {
			row[y] = rows[h-1-y][x]
		}
		out[x] = row
	}
	return out
}

// Size returns the rendered width and height in terminal cells for the
// given rotation and zoom, including the row-label gutter.
func Size(sec layout.Section, rotation, zoom float64) (int, int) {
	rows := Rotate(sec.Grid, QuarterTurns(rotation))
	if len(rows) == 0 {
		return 0, 0
	}
	seatW := SeatWidth(sec, zoom)
	gapW := gapWidth(sec, zoom)
	cols := len(rows[0])

	width := cols*seatW + (cols-1)*gapW + gutterWidth(sec, rotation)
	return width, len(rows)
}

// gutterWidth is the row-label column width. Labels only render in the
// unrotated orientation; a turned grid no longer lines up with them.
func gutterWidth(sec layout.Section, rotation float64) int {
	if len(sec.RowLabels) == 0 || QuarterTurns(rotation) != 0 {
		return 0
	}
	w := 0
	for _, l := range sec.RowLabels {
		if len(l) > w {
			w = len(l)
		}
	}
	return w + 1 // separator space
}

// Render produces the cell matrix for a section at the given rotation and
// zoom. Gap cells (JSON null seats) render as spacing, not seats. The
// decorator, when non-nil, is consulted once per seat.
func Render(sec layout.Section, rotation, zoom float64, dec Decorator) [][]Cell {
	rows := Rotate(sec.Grid, QuarterTurns(rotation))
	if len(rows) == 0 {
		return nil
	}
	seatW := SeatWidth(sec, zoom)
	gapW := gapWidth(sec, zoom)
	gutter := gutterWidth(sec, rotation)

	out := make([][]Cell, len(rows))
	for y, row := range rows {
		line := make([]Cell, 0, gutter+len(row)*(seatW+gapW))

		if gutter > 0 {
			label := ""
			if y < len(sec.RowLabels) {
				label = sec.RowLabels[y]
			}
			for _, ch := range pad(label, gutter) {
				line = append(line, Cell{Ch: ch, Style: labelStyle})
			}
		}

		for x, seat := range row {
			if x > 0 {
				for i := 0; i < gapW; i++ {
					line = append(line, Cell{Ch: ' '})
				}
			}
			line = append(line, seatCells(seat, y, x, seatW, dec)...)
		}
		out[y] = line
	}
	return out
}

func seatCells(seat layout.SeatID, row, col, width int, dec Decorator) []Cell {
	if seat.IsGap() {
		cells := make([]Cell, width)
		for i := range cells {
			cells[i] = Cell{Ch: ' '}
		}
		return cells
	}

	style := seatStyle
	var click func()
	text := string(seat)
	if dec != nil {
		if d := dec(seat, row, col); d != nil {
			if d.Highlight != "" {
				style = style.Background(d.Highlight)
			}
			if d.Extra != "" {
				text += d.Extra
			}
			click = d.OnClick
		}
	}

	cells := make([]Cell, width)
	runes := pad(text, width)
	for i, ch := range runes {
		cells[i] = Cell{Ch: ch, Style: style, Seat: seat, Click: click}
	}
	return cells
}

// pad truncates or space-pads s to exactly width runes.
func pad(s string, width int) []rune {
	runes := []rune(s)
	if len(runes) > width {
		return runes[:width]
	}
	for len(runes) < width {
		runes = append(runes, ' ')
	}
	return runes
}

// Lines renders the cell matrix to styled strings, one per row. Used for
// standalone display and in tests; the editor blits cells directly.
func Lines(cells [][]Cell) []string {
	out := make([]string, len(cells))
	for y, row := range cells {
		line := ""
		for _, c := range row {
			line += c.Style.Render(string(c.Ch))
		}
		out[y] = line
	}
	return out
}
