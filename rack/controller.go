package rack

import "github.com/rs/zerolog"

// Locator resolves a pointer position to the nearest port within snap
// tolerance. The tui implements it from draw-time geometry; tests fake it.
type Locator interface {
	PortAt(x, y int) (PortRef, bool)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(x, y int) (PortRef, bool)

func (f LocatorFunc) PortAt(x, y int) (PortRef, bool) { return f(x, y) }

type dragState int

const (
	stateIdle dragState = iota
	stateDragging // transient wire in hand, no compatible port under pointer
	stateHovering // transient wire in hand, candidate port under pointer
)

// Drag describes the controller's in-flight wire for the renderer: one
// end fixed on a port, the other following the pointer. It is never part
// of the graph; serialization and layout cannot see it.
type Drag struct {
	Fixed     PortRef
	X, Y      int
	Color     string
	Candidate PortRef
	Snapped   bool // Candidate is valid
}

// Controller is the interactive connection state machine. Pointer events
// arrive as discrete OnPress/OnMove/OnRelease/OnAbort calls; the
// controller decides when a wire is created, moved, or destroyed and is
// the only owner of the transient wire in between.
type Controller struct {
	graph     *Graph
	locate    Locator
	nextColor func() string
	log       zerolog.Logger

	state     dragState
	origin    PortRef // port the drag started on (self-drop check)
	fixed     PortRef // committed end of the transient wire
	looseX    int
	looseY    int
	color     string
	candidate PortRef
}

// NewController wires the state machine to a graph, a port locator, and a
// color source for fresh wires.
func NewController(graph *Graph, locate Locator, nextColor func() string, log zerolog.Logger) *Controller {
	return &Controller{graph: graph, locate: locate, nextColor: nextColor, log: log}
}

// Dragging reports whether a transient wire is in hand.
func (c *Controller) Dragging() bool { return c.state != stateIdle }

// Drag returns the transient wire for drawing, if any.
func (c *Controller) Drag() (Drag, bool) {
	if c.state == stateIdle {
		return Drag{}, false
	}
	return Drag{
		Fixed:     c.fixed,
		X:         c.looseX,
		Y:         c.looseY,
		Color:     c.color,
		Candidate: c.candidate,
		Snapped:   c.state == stateHovering,
	}, true
}

// Hover returns the port under the pointer while idle, for highlight
// feedback only. It never changes state.
func (c *Controller) Hover(x, y int) (PortRef, bool) {
	return c.locate.PortAt(x, y)
}

// OnPress starts a drag if the pointer is over a port.
//
// Pressing an input that already carries a wire picks that wire up: the
// wire leaves the graph, its output end stays fixed, and the input end
// follows the pointer - so a connection can be redirected without
// deleting it first. Pressing an output, or a bare input, starts a brand
// new transient wire with that end fixed.
func (c *Controller) OnPress(x, y int) {
	if c.state != stateIdle {
		// A second press without a release in between is an input
		// delivery glitch; drop it.
		return
	}
	port, ok := c.locate.PortAt(x, y)
	if !ok {
		return
	}

	c.origin = port
	c.looseX, c.looseY = x, y
	if port.Dir == Input {
		if id, connected := c.graph.WireOnInput(port); connected {
			w, _ := c.graph.Wire(id)
			c.fixed = w.Output
			c.color = w.Color
			// The wire is out of the graph from here on. Dropping it
			// off-target, or aborting, leaves it deleted.
			_ = c.graph.Disconnect(id)
			c.state = stateDragging
			c.log.Debug().Stringer("port", port).Msg("picked up existing wire")
			return
		}
	}
	c.fixed = port
	c.color = c.nextColor()
	c.state = stateDragging
	c.log.Debug().Stringer("port", port).Msg("drag started")
}

// OnMove drags the loose end and re-evaluates the snap candidate: the
// nearest port of the opposite direction under the pointer, excluding the
// drag origin (a self-drop must not make a degenerate loop).
func (c *Controller) OnMove(x, y int) {
	if c.state == stateIdle {
		return // move without a press, ignore
	}
	c.looseX, c.looseY = x, y
	port, ok := c.locate.PortAt(x, y)
	if ok && port.Dir == c.fixed.Dir.Opposite() && port != c.origin {
		c.candidate = port
		c.state = stateHovering
		return
	}
	c.candidate = PortRef{}
	c.state = stateDragging
}

// OnRelease commits or discards the transient wire. With a candidate
// under the pointer the endpoints are order-normalized and committed
// through Graph.Connect, replacing whatever wire the target input held.
// Without one the transient wire is simply dropped - which for a
// picked-up wire is the deliberate drag-off-to-delete gesture.
func (c *Controller) OnRelease(x, y int) {
	if c.state == stateIdle {
		return // release without a press, ignore
	}
	c.OnMove(x, y) // final candidate refresh at the release point

	if c.state == stateHovering {
		output, input := c.fixed, c.candidate
		if output.Dir == Input {
			output, input = input, output
		}
		if _, err := c.graph.Connect(output, input, c.color); err != nil {
			c.log.Warn().Err(err).Msg("drop rejected")
		}
	} else {
		c.log.Debug().Stringer("port", c.fixed).Msg("drag released on nothing")
	}
	c.reset()
}

// OnAbort cancels the drag outright, e.g. on losing pointer capture. The
// committed graph is untouched, except that a picked-up wire stays
// removed; an abort does not resurrect it.
func (c *Controller) OnAbort() {
	if c.state == stateIdle {
		return
	}
	c.log.Debug().Msg("drag aborted")
	c.reset()
}

func (c *Controller) reset() {
	c.state = stateIdle
	c.origin = PortRef{}
	c.fixed = PortRef{}
	c.candidate = PortRef{}
	c.color = ""
}
