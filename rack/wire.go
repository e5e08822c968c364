package rack

// Wire is a committed connection from one output port to one input port.
// Color is cosmetic and persisted. A wire with an unset endpoint never
// appears here; in-progress wires live inside the Controller until commit.
type Wire struct {
	ID     WireID
	Output PortRef
	Input  PortRef
	Color  string // "#RRGGBB"
}
