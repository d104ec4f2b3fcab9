package cli

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hallforge/seatplan/pkg/bridge"
	"github.com/hallforge/seatplan/pkg/editor"
	apperrors "github.com/hallforge/seatplan/pkg/errors"
	"github.com/hallforge/seatplan/pkg/geom"
	"github.com/hallforge/seatplan/pkg/grid"
	"github.com/hallforge/seatplan/pkg/layout"
)

// Editor styles
var (
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	titleSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	rotateStyle        = lipgloss.NewStyle().Foreground(colorYellow)
	noticeStyle        = lipgloss.NewStyle().Foreground(colorGreen)
	noticeErrStyle     = lipgloss.NewStyle().Foreground(colorRed)

	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)

	// selectionColor highlights the seats of the selected section.
	selectionColor = lipgloss.Color("63")
)

// canvasTop is the number of chrome lines above the canvas: a header with the
// layout name and zoom readout, and a key help line. Mouse coordinates are
// shifted by this before they reach the session.
const canvasTop = 2

// rotateAffordance marks the clickable rotate spot in each section's title row.
const rotateAffordance = '⟳'

type editorView int

const (
	viewPicker editorView = iota
	viewCanvas
)

// =============================================================================
// editorModel - Interactive layout editor
// =============================================================================

// editorModel is the bubbletea model for the layout editor. It hosts two
// views: a layout picker and the canvas. The canvas delivers pointer and
// keyboard events to the editing session unconditionally; the session decides
// what applies in its current state.
type editorModel struct {
	ctx  context.Context
	repo *bridge.Repository

	view   editorView
	cursor int

	active     layout.Layout
	placements *layout.Placements
	zoom       *geom.Zoom
	session    *editor.Session

	width, height int
	notice        string
	noticeErr     bool
}

func newEditorModel(ctx context.Context, repo *bridge.Repository) *editorModel {
	zoom := geom.NewZoom()
	placements := layout.Hydrate(nil)
	m := &editorModel{
		ctx:        ctx,
		repo:       repo,
		view:       viewPicker,
		placements: placements,
		zoom:       zoom,
		session:    editor.NewSession(placements, zoom),
		width:      120,
		height:     40,
	}
	if active, ok := repo.Active(); ok {
		m.enterLayout(active.ID)
	}
	return m
}

// enterLayout switches the canvas to the given layout. Selection, drag state
// and zoom all reset; stale state from the previous layout must not leak.
func (m *editorModel) enterLayout(id string) {
	l, placements, err := m.repo.Select(m.ctx, id)
	if err != nil {
		m.setNotice(apperrors.UserMessage(err), true)
		return
	}
	m.active = l
	m.placements = placements
	m.session.Attach(placements)
	m.zoom.Reset()
	m.view = viewCanvas
	m.notice = ""
}

func (m *editorModel) setNotice(msg string, isErr bool) {
	m.notice = msg
	m.noticeErr = isErr
}

// =============================================================================
// Update
// =============================================================================

func (m *editorModel) Init() tea.Cmd {
	return nil
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.view == viewPicker {
			return m.updatePicker(msg)
		}
		return m.updateCanvas(msg)
	case tea.MouseMsg:
		if m.view == viewCanvas {
			m.updateMouse(msg)
		}
		return m, nil
	}
	return m, nil
}

func (m *editorModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.repo.Layouts())-1 {
			m.cursor++
		}
	case "enter":
		layouts := m.repo.Layouts()
		if m.cursor < len(layouts) {
			m.enterLayout(layouts[m.cursor].ID)
		}
	}
	return m, nil
}

func (m *editorModel) updateCanvas(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.session.PointerDownEmpty()
		m.view = viewPicker
		m.notice = ""
	case "+", "=":
		m.zoom.Increase()
	case "-", "_":
		m.zoom.Decrease()
	case "0":
		m.zoom.Reset()
	case "r":
		m.session.RotateSelected(editor.RotateCW)
	case "R":
		m.session.RotateSelected(editor.RotateCCW)
	case "s":
		if err := m.repo.Save(m.ctx, m.placements); err != nil {
			m.setNotice(apperrors.UserMessage(err), true)
		} else {
			m.setNotice("Saved", false)
		}
	case "e":
		m.exportToFile()
	case "y":
		m.yankToClipboard()
	}
	return m, nil
}

func (m *editorModel) updateMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if msg.Y >= canvasTop {
				m.pointerDown(msg.X, msg.Y-canvasTop)
			}
		case tea.MouseButtonWheelUp:
			m.zoom.Increase()
		case tea.MouseButtonWheelDown:
			m.zoom.Decrease()
		}
	case tea.MouseActionMotion:
		m.session.PointerMove(geom.Point{X: float64(msg.X), Y: float64(msg.Y - canvasTop)})
	case tea.MouseActionRelease:
		m.session.PointerUp()
	}
}

// pointerDown hit-tests the press against section boxes in reverse draw
// order, so the section drawn on top wins when boxes overlap. A hit on the
// rotate affordance rotates instead of starting a drag; a miss on everything
// clears the selection.
func (m *editorModel) pointerDown(x, y int) {
	boxes := m.sectionBoxes()
	for i := len(boxes) - 1; i >= 0; i-- {
		b := boxes[i]
		if x == b.x+b.w-1 && y == b.y {
			m.session.Rotate(b.id, editor.RotateCW)
			return
		}
		if x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h {
			m.session.PointerDown(b.id, geom.Point{X: float64(x), Y: float64(y)})
			return
		}
	}
	m.session.PointerDownEmpty()
}

// =============================================================================
// Section geometry
// =============================================================================

// sectionBox is a section's screen-space bounding box on the canvas,
// including its title row.
type sectionBox struct {
	id         string
	x, y, w, h int
}

func (m *editorModel) sectionBoxes() []sectionBox {
	z := m.zoom.Factor()
	boxes := make([]sectionBox, 0, len(m.active.Sections))
	for _, sec := range m.active.Sections {
		pl, _ := m.placements.Get(sec.ID)
		origin := geom.Forward(pl.Pos(), z)
		gw, gh := grid.Size(sec, pl.Rotation, z)
		w := gw
		if lw := len([]rune(sec.Label())) + 2; lw > w {
			w = lw
		}
		boxes = append(boxes, sectionBox{
			id: sec.ID,
			x:  int(math.Round(origin.X)),
			y:  int(math.Round(origin.Y)),
			w:  w,
			h:  gh + 1,
		})
	}
	return boxes
}

// =============================================================================
// Actions
// =============================================================================

func (m *editorModel) exportToFile() {
	name, err := m.repo.ExportFilename()
	if err != nil {
		m.setNotice(apperrors.UserMessage(err), true)
		return
	}
	f, err := os.Create(name)
	if err != nil {
		m.setNotice(fmt.Sprintf("create %s: %v", name, err), true)
		return
	}
	defer f.Close()
	if err := m.repo.Export(f, m.placements); err != nil {
		m.setNotice(apperrors.UserMessage(err), true)
		return
	}
	m.setNotice("Exported "+name, false)
}

func (m *editorModel) yankToClipboard() {
	var buf bytes.Buffer
	if err := m.repo.Export(&buf, m.placements); err != nil {
		m.setNotice(apperrors.UserMessage(err), true)
		return
	}
	if err := clipboard.WriteAll(buf.String()); err != nil {
		m.setNotice(fmt.Sprintf("clipboard: %v", err), true)
		return
	}
	m.setNotice("Copied layout JSON to clipboard", false)
}

// =============================================================================
// View
// =============================================================================

func (m *editorModel) View() string {
	if m.view == viewPicker {
		return m.viewPickerList()
	}
	return m.viewCanvas()
}

func (m *editorModel) viewPickerList() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layouts"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	layouts := m.repo.Layouts()
	if len(layouts) == 0 {
		b.WriteString(StyleDim.Render("  No layouts stored. Create one with: seatplan new <name>"))
		b.WriteString("\n")
		return b.String()
	}

	for i, l := range layouts {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		name := l.Name
		if name == "" {
			name = l.ID
		}
		line := fmt.Sprintf("%s%-30s %s", cursor, name,
			StyleDim.Render(fmt.Sprintf("%d sections", len(l.Sections))))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeErrStyle.Render(m.notice))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *editorModel) viewCanvas() string {
	name := m.active.Name
	if name == "" {
		name = m.active.ID
	}

	header := StyleTitle.Render(name) + "  " +
		StyleDim.Render(fmt.Sprintf("zoom %d%%", m.zoom.Percent()))
	if m.notice != "" {
		style := noticeStyle
		if m.noticeErr {
			style = noticeErrStyle
		}
		header += "  " + style.Render(m.notice)
	}
	help := StyleDim.Render("drag: move  +/-: zoom  0: reset  r/R: rotate  s: save  e: export  y: yank  esc: layouts  q: quit")

	cv := newCellCanvas(m.width, m.height-canvasTop)
	selected, _ := m.session.Selected()
	boxes := m.sectionBoxes()
	z := m.zoom.Factor()

	for i, sec := range m.active.Sections {
		b := boxes[i]
		pl, _ := m.placements.Get(sec.ID)

		ts := titleStyle
		var dec grid.Decorator
		if sec.ID == selected {
			ts = titleSelectedStyle
			dec = func(layout.SeatID, int, int) *grid.Decoration {
				return &grid.Decoration{Highlight: selectionColor}
			}
		}

		cv.blitString(b.x, b.y, sec.Label(), ts)
		cv.set(b.x+b.w-1, b.y, grid.Cell{Ch: rotateAffordance, Style: rotateStyle})
		cv.blit(b.x, b.y+1, grid.Render(sec, pl.Rotation, z, dec))
	}

	return header + "\n" + help + "\n" + cv.render()
}
