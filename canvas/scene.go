package canvas

import (
	"math"

	"wordweb/diagram"
	"wordweb/geometry"
)

// CellSize is the number of screen pixels covered by one terminal cell.
type CellSize struct {
	W, H float64
}

// DefaultCellSize approximates a typical terminal font.
var DefaultCellSize = CellSize{W: 8, H: 16}

// ToCell converts a screen point to the cell containing it.
func (c CellSize) ToCell(p geometry.Point) (x, y int) {
	return int(math.Floor(p.X / c.W)), int(math.Floor(p.Y / c.H))
}

// ToScreen returns the screen point at the centre of cell (x, y).
func (c CellSize) ToScreen(x, y int) geometry.Point {
	return geometry.Pt((float64(x)+0.5)*c.W, (float64(y)+0.5)*c.H)
}

// Scene is everything drawn for one frame.
type Scene struct {
	Graph    *diagram.Graph
	Viewport *Viewport
	Cells    CellSize

	// Busy is the node id with an outstanding oracle call.
	Busy string
	// Editing is the note being edited, shown with EditBuffer instead of its content.
	Editing    string
	EditBuffer string
	// ConnectFrom and ConnectTo describe an in-progress connection drag, in world space.
	ConnectFrom string
	ConnectTo   geometry.Point
	// Band is the rubber-band rectangle in world space, nil when not selecting.
	Band *geometry.Rect
}

var (
	frameStyle     = Style{Fg: "#7f8c8d"}
	edgeStyle      = Style{Fg: "#95a5a6"}
	manualStyle    = Style{Fg: "#e67e22"}
	labelStyle     = Style{Fg: "#ecf0f1", Dim: true}
	nodeStyle      = Style{Fg: "#ecf0f1", Bold: true}
	handleStyle    = Style{Fg: "#3498db"}
	pendingStyle   = Style{Fg: "#3498db"}
	bandStyle      = Style{Fg: "#f1c40f"}
	busySuffix     = " …"
	ellipsis       = "…"
	expansionRune  = '·'
	manualRune     = '∙'
	pendingRune    = '┈'
	editCursorRune = "▏"
)

// Render draws the scene into grid. Frames go first, then connections, then nodes.
// Dangling frame members and connection endpoints are skipped.
func Render(grid *Grid, s Scene) {
	grid.Clear()
	if s.Graph == nil || s.Viewport == nil {
		return
	}
	if s.Cells.W <= 0 || s.Cells.H <= 0 {
		s.Cells = DefaultCellSize
	}
	r := renderer{grid: grid, scene: s}

	for _, f := range s.Graph.Frames {
		r.frame(f)
	}
	for _, c := range s.Graph.Connections {
		r.connection(c)
	}
	if s.ConnectFrom != "" {
		if from, ok := s.Graph.Node(s.ConnectFrom); ok {
			x1, y1 := r.cell(HandlePoint(from))
			x2, y2 := r.cell(s.ConnectTo)
			grid.DrawLine(x1, y1, x2, y2, pendingRune, pendingStyle)
		}
	}
	for _, n := range s.Graph.Nodes {
		r.node(n)
	}
	if s.Band != nil {
		x1, y1 := r.cell(s.Band.Min())
		x2, y2 := r.cell(s.Band.Max())
		grid.DrawBox(x1, y1, x2-x1+1, y2-y1+1, DashedBox, bandStyle)
	}
}

type renderer struct {
	grid  *Grid
	scene Scene
}

func (r renderer) cell(world geometry.Point) (int, int) {
	return r.scene.Cells.ToCell(r.scene.Viewport.WorldToScreen(world))
}

func (r renderer) box(rect geometry.Rect) (x, y, w, h int) {
	x1, y1 := r.cell(rect.Min())
	x2, y2 := r.cell(rect.Max())
	return x1, y1, x2 - x1 + 1, y2 - y1 + 1
}

func (r renderer) frame(f diagram.Frame) {
	x, y, w, h := r.box(f.Rect())
	r.grid.DrawBox(x, y, w, h, DashedBox, frameStyle)
	if w > 4 {
		r.grid.DrawText(x+2, y, FitText(" "+f.Title+" ", w-4, ellipsis), frameStyle)
	}
}

func (r renderer) connection(c diagram.Connection) {
	from, ok1 := r.scene.Graph.Node(c.From)
	to, ok2 := r.scene.Graph.Node(c.To)
	if !ok1 || !ok2 {
		return
	}
	x1, y1 := r.cell(from.Position())
	x2, y2 := r.cell(to.Position())

	ch, style := expansionRune, edgeStyle
	if c.Manual {
		ch, style = manualRune, manualStyle
	}
	r.grid.DrawLine(x1, y1, x2, y2, ch, style)

	if c.Label != "" {
		mid := from.Position().Add(to.Position()).Scale(0.5)
		mx, my := r.cell(mid)
		r.grid.DrawTextCentered(mx, my, FitText(c.Label, 24, ellipsis), labelStyle)
	}
}

func (r renderer) node(n diagram.Node) {
	style := nodeStyle
	style.Bg = n.Fill
	style.Reverse = n.Selected

	if n.IsNote() {
		r.note(n, style)
	} else {
		label := n.Text
		if n.ID == r.scene.Busy {
			label += busySuffix
		}
		cx, cy := r.cell(n.Position())
		w, _ := n.Size()
		maxCells := int(w*r.scene.Viewport.Scale/r.scene.Cells.W) + 4
		r.grid.DrawTextCentered(cx, cy, "("+FitText(label, max(maxCells, 3), ellipsis)+")", style)
	}

	hx, hy := r.cell(HandlePoint(n))
	if r.grid.Get(hx, hy).Rune == ' ' {
		r.grid.Set(hx, hy, '◦', handleStyle)
	}
}

func (r renderer) note(n diagram.Node, style Style) {
	x, y, w, h := r.box(n.Bounds())
	r.grid.DrawBox(x, y, w, h, RoundedBox, style)
	if n.Fill != "" {
		r.grid.FillRect(x+1, y+1, w-2, h-2, n.Fill)
	}

	body := n.Content
	if n.ID == r.scene.Editing {
		body = r.scene.EditBuffer + editCursorRune
	}
	inner := w - 2
	if inner <= 0 {
		return
	}

	row := y + 1
	if n.Text != "" {
		r.grid.DrawText(x+1, row, FitText(n.Text, inner, ellipsis), style)
		row++
	}
	plain := style
	plain.Bold = false
	for _, line := range WrapText(body, inner) {
		if row >= y+h-1 {
			break
		}
		r.grid.DrawText(x+1, row, line, plain)
		row++
	}
}
