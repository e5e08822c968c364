package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"patchbay/rack"
	"patchbay/theme"
)

// Module face layout, in rows from the face top. Faces are
// Model.Width*CellsPerUnit cells wide and four rows tall: title, input
// ports, param controls, output ports.
const (
	rowTitle   = 0
	rowInputs  = 1
	rowParams  = 2
	rowOutputs = 3

	// horizontal spacing between terminals on a face row
	portPitch = 2

	// canvasTop is where the rack area starts, below header + blank line.
	canvasTop = 2

	// portSnap is the squared pointer-to-port distance the nearest-port
	// lookup accepts, so a terminal does not need to be hit exactly.
	portSnap = 2
)

// portScreenPos returns the screen cell of a port glyph.
func portScreenPos(m *rack.Module, ref rack.PortRef) (int, int) {
	row := rowOutputs
	if ref.Dir == rack.Input {
		row = rowInputs
	}
	return m.Pos.X + ref.ID*portPitch, canvasTop + m.Pos.Y + row
}

// paramScreenPos returns the screen cell of a param control glyph.
func paramScreenPos(m *rack.Module, index int) (int, int) {
	return m.Pos.X + index*portPitch, canvasTop + m.Pos.Y + rowParams
}

// RackLocator resolves pointer positions to ports from draw-time
// geometry. It holds the app indirectly because the graph is swapped on
// patch load.
type RackLocator struct {
	App *rack.App
}

// PortAt finds the nearest port within snap tolerance of (x, y).
// Insertion order breaks ties so the result is deterministic.
func (l *RackLocator) PortAt(x, y int) (rack.PortRef, bool) {
	var best rack.PortRef
	bestDist := portSnap + 1
	consider := func(m *rack.Module, ref rack.PortRef) {
		px, py := portScreenPos(m, ref)
		d := (px-x)*(px-x) + (py-y)*(py-y)
		if d < bestDist {
			bestDist = d
			best = ref
		}
	}
	for _, m := range l.App.Graph.Modules() {
		for i := range m.Model.Inputs {
			consider(m, m.InputRef(i))
		}
		for i := range m.Model.Outputs {
			consider(m, m.OutputRef(i))
		}
	}
	return best, bestDist <= portSnap
}

// moduleAt returns the module whose face covers the screen cell, if any.
func moduleAt(g *rack.Graph, x, y int) (*rack.Module, bool) {
	cy := y - canvasTop
	for _, m := range g.Modules() {
		face := g.Layout().FaceRect(m.Pos, m.Model.Width)
		if x >= face.X && x < face.X+face.W && cy >= face.Y && cy < face.Y+face.H {
			return m, true
		}
	}
	return nil, false
}

// paramAt returns the module and param index under the screen cell.
func paramAt(g *rack.Graph, x, y int) (*rack.Module, int, bool) {
	m, ok := moduleAt(g, x, y)
	if !ok {
		return nil, 0, false
	}
	for i := range m.Model.Params {
		px, py := paramScreenPos(m, i)
		if px == x && py == y {
			return m, i, true
		}
	}
	return nil, 0, false
}

// cell is one canvas cell with its colors.
type cell struct {
	r      rune
	fg, bg lipgloss.Color
}

// canvas is the draw target for one frame. It implements rack.Drawer.
type canvas struct {
	w, h    int
	cells   []cell
	th      *theme.Theme
	layout  *rack.Layout
	opacity float64
	tension float64
	ports   func(rack.PortRef) (int, int)
}

func newCanvas(w, h int, th *theme.Theme, layout *rack.Layout, opacity, tension float64, ports func(rack.PortRef) (int, int)) *canvas {
	c := &canvas{w: w, h: h, th: th, layout: layout, opacity: opacity, tension: tension, ports: ports}
	c.cells = make([]cell, w*h)
	bg := th.BG()
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', bg: bg}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, fg lipgloss.Color) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.cells[y*c.w+x].r = r
	c.cells[y*c.w+x].fg = fg
}

func (c *canvas) setBG(x, y int, bg lipgloss.Color) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.cells[y*c.w+x].bg = bg
}

// DrawModule paints a module face.
func (c *canvas) DrawModule(m *rack.Module) {
	face := c.layout.FaceRect(m.Pos, m.Model.Width)
	surface := c.th.Surface()
	for dy := 0; dy < face.H; dy++ {
		for dx := 0; dx < face.W; dx++ {
			c.setBG(face.X+dx, canvasTop+face.Y+dy, surface)
		}
	}

	// Title, truncated to face width
	title := m.Model.Name
	if len(title) > face.W {
		title = title[:face.W]
	}
	for i, r := range title {
		c.set(face.X+i, canvasTop+face.Y+rowTitle, r, c.th.FG())
		c.setBG(face.X+i, canvasTop+face.Y+rowTitle, surface)
	}

	for i := range m.Model.Inputs {
		x, y := portScreenPos(m, m.InputRef(i))
		c.set(x, y, c.th.Symbols.PortIn, c.th.FG())
	}
	for i := range m.Model.Outputs {
		x, y := portScreenPos(m, m.OutputRef(i))
		c.set(x, y, c.th.Symbols.PortOut, c.th.FG())
	}
	for i, spec := range m.Model.Params {
		x, y := paramScreenPos(m, i)
		span := spec.Max - spec.Min
		norm := 0.0
		if span > 0 {
			norm = (m.Params[i] - spec.Min) / span
		}
		glyphs := c.th.Symbols.KnobGlyphs
		g := glyphs[int(norm*float64(len(glyphs)-1)+0.5)]
		c.set(x, y, g, c.th.Accent())
	}
}

// DrawWire paints a committed wire as an H-V-H elbow between its two
// terminals. Tension moves the vertical run toward the input end.
func (c *canvas) DrawWire(w *rack.Wire) {
	// Wires need module geometry; endpoints always resolve because the
	// graph removes wires before their modules.
	c.drawCable(w.Output, w.Input, w.Color)
}

func (c *canvas) drawCable(out, in rack.PortRef, color string) {
	fg := c.th.CableColor(color, c.opacity)
	x1, y1 := c.ports(out)
	x2, y2 := c.ports(in)
	c.drawElbow(x1, y1, x2, y2, fg)
}

// drawElbow draws a horizontal-vertical-horizontal path.
func (c *canvas) drawElbow(x1, y1, x2, y2 int, fg lipgloss.Color) {
	if y1 == y2 {
		c.hline(x1, x2, y1, fg)
		return
	}
	xm := x1 + int(float64(x2-x1)*c.tension)
	c.hline(x1, xm, y1, fg)
	c.vline(xm, y1, y2, fg)
	c.hline(xm, x2, y2, fg)
	c.set(xm, y1, cornerRune(x1, x2, y1, y2, true), fg)
	c.set(xm, y2, cornerRune(x1, x2, y1, y2, false), fg)
}

// cornerRune picks the elbow glyph. The top corner turns the arriving
// horizontal run vertical; the bottom one turns it back horizontal.
func cornerRune(x1, x2, y1, y2 int, top bool) rune {
	right := x2 >= x1
	down := y2 >= y1
	if top {
		switch {
		case right && down:
			return '╮'
		case right && !down:
			return '╯'
		case !right && down:
			return '╭'
		default:
			return '╰'
		}
	}
	switch {
	case right && down:
		return '╰'
	case !right && down:
		return '╯'
	case right && !down:
		return '╭'
	default:
		return '╮'
	}
}

func (c *canvas) hline(x1, x2, y int, fg lipgloss.Color) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.set(x, y, c.th.Symbols.WireH, fg)
	}
}

func (c *canvas) vline(x, y1, y2 int, fg lipgloss.Color) {
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.set(x, y, c.th.Symbols.WireV, fg)
	}
}

// render flattens the canvas to a styled string, batching runs of equal
// color to keep the escape-sequence volume down.
func (c *canvas) render() string {
	var out strings.Builder
	for y := 0; y < c.h; y++ {
		x := 0
		for x < c.w {
			first := c.cells[y*c.w+x]
			var run strings.Builder
			for x < c.w {
				cur := c.cells[y*c.w+x]
				if cur.fg != first.fg || cur.bg != first.bg {
					break
				}
				run.WriteRune(cur.r)
				x++
			}
			style := lipgloss.NewStyle().Background(first.bg)
			if first.fg != "" {
				style = style.Foreground(first.fg)
			}
			out.WriteString(style.Render(run.String()))
		}
		out.WriteString("\n")
	}
	return out.String()
}
