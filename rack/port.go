package rack

import "fmt"

// Direction tells which way a port faces.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

// Opposite returns the direction a compatible peer port must have.
func (d Direction) Opposite() Direction {
	if d == Input {
		return Output
	}
	return Input
}

// PortRef identifies one terminal: a module, a direction, and the port's
// id local to that module (its index in the model's port list). Ports are
// plain values, not objects - a port never outlives its module because it
// is nothing more than a reference into it.
type PortRef struct {
	Module ModuleID
	Dir    Direction
	ID     int
}

func (p PortRef) String() string {
	return fmt.Sprintf("m%d.%s%d", p.Module, p.Dir, p.ID)
}
