package rack

import (
	"patchbay/plugin"
)

// ModuleID is a process-local module identifier. Identifiers are never
// reused within a graph; persisted documents carry their own ids.
type ModuleID int

// WireID is a process-local wire identifier, never reused within a graph.
type WireID int

// Pos is a position on the rack canvas, in cells.
type Pos struct {
	X int
	Y int
}

// Module is one placed processing unit: a model descriptor, its current
// param values, its position, and an optional runtime engine.
type Module struct {
	ID     ModuleID
	Model  *plugin.Model
	Params []float64
	Pos    Pos
	Engine plugin.Engine
}

// InputRef returns the PortRef for input i. It does not check range;
// Graph.Connect validates port ids against the model.
func (m *Module) InputRef(i int) PortRef {
	return PortRef{Module: m.ID, Dir: Input, ID: i}
}

// OutputRef returns the PortRef for output i.
func (m *Module) OutputRef(i int) PortRef {
	return PortRef{Module: m.ID, Dir: Output, ID: i}
}

// HasPort reports whether ref names a port this module actually declares.
func (m *Module) HasPort(ref PortRef) bool {
	if ref.Module != m.ID || ref.ID < 0 {
		return false
	}
	if ref.Dir == Input {
		return ref.ID < len(m.Model.Inputs)
	}
	return ref.ID < len(m.Model.Outputs)
}

// SetParam clamps value to the param's declared range, stores it, and
// pushes it to the engine. Out-of-range indexes are ignored.
func (m *Module) SetParam(index int, value float64) {
	if index < 0 || index >= len(m.Params) {
		return
	}
	spec := m.Model.Params[index]
	if value < spec.Min {
		value = spec.Min
	}
	if value > spec.Max {
		value = spec.Max
	}
	m.Params[index] = value
	if m.Engine != nil {
		m.Engine.SetParam(index, value)
	}
}
