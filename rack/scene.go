package rack

// Drawer receives the draw pass. The tui is the real implementation; it
// turns modules and wires into styled cells.
type Drawer interface {
	DrawModule(m *Module)
	DrawWire(w *Wire)
}

// Scene runs the per-frame traversal contract: a full step pass over the
// graph's modules (engines refresh their derived state), then a full draw
// pass, both in the graph's insertion order. Mutations made by the
// controller earlier in the frame are already in the graph, so the step
// pass always sees them before anything is drawn; a pass is never torn.
type Scene struct {
	graph *Graph
}

func NewScene(graph *Graph) *Scene {
	return &Scene{graph: graph}
}

// Step runs only the step pass. Exposed separately so headless callers
// can advance engines without a drawer.
func (s *Scene) Step() {
	for _, m := range s.graph.Modules() {
		if m.Engine != nil {
			m.Engine.Step()
		}
	}
}

// Frame runs one step-then-draw traversal.
func (s *Scene) Frame(d Drawer) {
	s.Step()
	for _, m := range s.graph.Modules() {
		d.DrawModule(m)
	}
	for _, w := range s.graph.Wires() {
		d.DrawWire(w)
	}
}
