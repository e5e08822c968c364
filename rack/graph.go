package rack

import (
	"fmt"

	"github.com/rs/zerolog"

	"patchbay/plugin"
)

// Graph owns every placed module and every committed wire. It is the only
// mutator of those collections and keeps the any-to-one invariant: an
// input port carries at most one wire, an output port fans out freely.
// All iteration is in insertion order so renderers see a stable world.
//
// Single-threaded by design: mutations and queries happen on the event
// loop that also runs the step/draw traversal, so there is no locking.
type Graph struct {
	layout *Layout
	log    zerolog.Logger

	modules     map[ModuleID]*Module
	moduleOrder []ModuleID
	wires       map[WireID]*Wire
	wireOrder   []WireID
	byInput     map[PortRef]WireID

	nextModule ModuleID
	nextWire   WireID
}

// NewGraph creates an empty graph placing modules through layout.
func NewGraph(layout *Layout, log zerolog.Logger) *Graph {
	return &Graph{
		layout:  layout,
		log:     log,
		modules: make(map[ModuleID]*Module),
		wires:   make(map[WireID]*Wire),
		byInput: make(map[PortRef]WireID),
	}
}

// Layout returns the placement policy the graph commits through.
func (g *Graph) Layout() *Layout { return g.layout }

// AddModule places a new module instance of model at pos (snapped to the
// grid). Fails with ErrPlacementConflict if the face would overlap an
// existing module.
func (g *Graph) AddModule(model *plugin.Model, pos Pos) (ModuleID, error) {
	accepted, err := g.layout.Resolve(pos, model.Width, g.placedRects(-1))
	if err != nil {
		return 0, fmt.Errorf("add %s: %w", model.Key(), err)
	}

	g.nextModule++
	m := &Module{
		ID:     g.nextModule,
		Model:  model,
		Params: model.Defaults(),
		Pos:    accepted,
	}
	if model.NewEngine != nil {
		m.Engine = model.NewEngine()
		for i, v := range m.Params {
			m.Engine.SetParam(i, v)
		}
	}
	g.modules[m.ID] = m
	g.moduleOrder = append(g.moduleOrder, m.ID)
	g.log.Debug().Str("model", model.Key()).Int("id", int(m.ID)).Msg("module added")
	return m.ID, nil
}

// RemoveModule disconnects every wire touching the module's ports, then
// removes the module itself.
func (g *Graph) RemoveModule(id ModuleID) error {
	m, ok := g.modules[id]
	if !ok {
		return fmt.Errorf("remove module %d: %w", id, ErrUnknownModule)
	}
	for i := range m.Model.Inputs {
		g.DisconnectPort(m.InputRef(i))
	}
	for i := range m.Model.Outputs {
		g.DisconnectPort(m.OutputRef(i))
	}
	delete(g.modules, id)
	for i, mid := range g.moduleOrder {
		if mid == id {
			g.moduleOrder = append(g.moduleOrder[:i], g.moduleOrder[i+1:]...)
			break
		}
	}
	g.log.Debug().Int("id", int(id)).Msg("module removed")
	return nil
}

// MoveModule requests a new position for an already placed module. On
// conflict the module keeps its last accepted position and the error is
// returned to the caller.
func (g *Graph) MoveModule(id ModuleID, pos Pos) error {
	m, ok := g.modules[id]
	if !ok {
		return fmt.Errorf("move module %d: %w", id, ErrUnknownModule)
	}
	accepted, err := g.layout.Resolve(pos, m.Model.Width, g.placedRects(id))
	if err != nil {
		return fmt.Errorf("move module %d: %w", id, err)
	}
	m.Pos = accepted
	return nil
}

// Module looks up a module by id.
func (g *Graph) Module(id ModuleID) (*Module, bool) {
	m, ok := g.modules[id]
	return m, ok
}

// Modules returns all modules in insertion order.
func (g *Graph) Modules() []*Module {
	out := make([]*Module, 0, len(g.moduleOrder))
	for _, id := range g.moduleOrder {
		out = append(out, g.modules[id])
	}
	return out
}

// Connect commits a wire from an output port to an input port. If the
// input already carries a wire it is silently removed first, so a second
// connect to the same input replaces rather than duplicates. Wire ids are
// never reused.
func (g *Graph) Connect(output, input PortRef, color string) (WireID, error) {
	if output.Dir != Output || input.Dir != Input {
		return 0, fmt.Errorf("connect %s -> %s: %w", output, input, ErrTypeMismatch)
	}
	if err := g.checkPort(output); err != nil {
		return 0, err
	}
	if err := g.checkPort(input); err != nil {
		return 0, err
	}

	if old, ok := g.byInput[input]; ok {
		g.removeWire(old)
		g.log.Debug().Int("wire", int(old)).Msg("wire replaced on connect")
	}

	g.nextWire++
	w := &Wire{ID: g.nextWire, Output: output, Input: input, Color: color}
	g.wires[w.ID] = w
	g.wireOrder = append(g.wireOrder, w.ID)
	g.byInput[input] = w.ID
	g.log.Debug().Stringer("out", output).Stringer("in", input).Int("wire", int(w.ID)).Msg("wire connected")
	return w.ID, nil
}

// Disconnect removes a committed wire.
func (g *Graph) Disconnect(id WireID) error {
	if _, ok := g.wires[id]; !ok {
		return fmt.Errorf("disconnect wire %d: %w", id, ErrUnknownWire)
	}
	g.removeWire(id)
	g.log.Debug().Int("wire", int(id)).Msg("wire disconnected")
	return nil
}

// DisconnectPort removes every wire touching the port, both directions,
// and returns how many were removed.
func (g *Graph) DisconnectPort(ref PortRef) int {
	ids := g.WiresOf(ref)
	for _, id := range ids {
		g.removeWire(id)
	}
	return len(ids)
}

// Wire looks up a wire by id.
func (g *Graph) Wire(id WireID) (*Wire, bool) {
	w, ok := g.wires[id]
	return w, ok
}

// Wires returns all committed wires in insertion order.
func (g *Graph) Wires() []*Wire {
	out := make([]*Wire, 0, len(g.wireOrder))
	for _, id := range g.wireOrder {
		out = append(out, g.wires[id])
	}
	return out
}

// WiresOf returns the ids of all wires touching the port, in insertion
// order. For an input port that is at most one wire.
func (g *Graph) WiresOf(ref PortRef) []WireID {
	var out []WireID
	for _, id := range g.wireOrder {
		w := g.wires[id]
		if w.Output == ref || w.Input == ref {
			out = append(out, id)
		}
	}
	return out
}

// WireOnInput returns the wire currently committed to an input port.
func (g *Graph) WireOnInput(ref PortRef) (WireID, bool) {
	id, ok := g.byInput[ref]
	return id, ok
}

// Clear empties the rack.
func (g *Graph) Clear() {
	g.modules = make(map[ModuleID]*Module)
	g.moduleOrder = nil
	g.wires = make(map[WireID]*Wire)
	g.wireOrder = nil
	g.byInput = make(map[PortRef]WireID)
}

func (g *Graph) checkPort(ref PortRef) error {
	m, ok := g.modules[ref.Module]
	if !ok {
		return fmt.Errorf("port %s: %w", ref, ErrUnknownModule)
	}
	if !m.HasPort(ref) {
		return fmt.Errorf("port %s: not declared by %s: %w", ref, m.Model.Key(), ErrUnknownModule)
	}
	return nil
}

func (g *Graph) removeWire(id WireID) {
	w, ok := g.wires[id]
	if !ok {
		return
	}
	delete(g.wires, id)
	delete(g.byInput, w.Input)
	for i, wid := range g.wireOrder {
		if wid == id {
			g.wireOrder = append(g.wireOrder[:i], g.wireOrder[i+1:]...)
			break
		}
	}
}

// placedRects collects the face rectangles of all modules except the one
// being repositioned.
func (g *Graph) placedRects(exclude ModuleID) []Rect {
	rects := make([]Rect, 0, len(g.moduleOrder))
	for _, id := range g.moduleOrder {
		if id == exclude {
			continue
		}
		m := g.modules[id]
		rects = append(rects, g.layout.FaceRect(m.Pos, m.Model.Width))
	}
	return rects
}
