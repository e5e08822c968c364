// Package widgets holds the interactive param controls: a drag-to-turn
// knob and a switch whose press behavior (toggle, momentary, cycling) is
// a strategy chosen at construction. Widgets write through a ParamSetter
// and never touch the graph directly.
package widgets

// ParamSetter receives param writes. rack.Module satisfies it.
type ParamSetter interface {
	SetParam(index int, value float64)
}

// Draggable is the pointer-drag capability. The front-end delivers drag
// deltas in cells.
type Draggable interface {
	OnDragStart()
	OnDragMove(dx, dy int)
	OnDragEnd()
}

// IndexSettable is the frame-selection capability: controls with a
// multi-frame face get told which frame to show.
type IndexSettable interface {
	SetIndex(index int)
}

// Knob adjusts a continuous param by vertical dragging. Dragging up
// raises the value; a full face height sweeps about a quarter of the
// range, matching how slow terminal pointer deltas are.
type Knob struct {
	ParamName string

	target      ParamSetter
	index       int
	min, max    float64
	value       float64
	sensitivity float64 // range fraction per cell
}

func NewKnob(target ParamSetter, index int, name string, min, max, value float64) *Knob {
	return &Knob{
		ParamName:   name,
		target:      target,
		index:       index,
		min:         min,
		max:         max,
		value:       value,
		sensitivity: 1.0 / 16,
	}
}

func (k *Knob) Value() float64 { return k.value }

// Norm returns the value normalized to 0..1 for face rendering.
func (k *Knob) Norm() float64 {
	if k.max == k.min {
		return 0
	}
	return (k.value - k.min) / (k.max - k.min)
}

func (k *Knob) setValue(v float64) {
	if v < k.min {
		v = k.min
	}
	if v > k.max {
		v = k.max
	}
	k.value = v
	k.target.SetParam(k.index, v)
}

func (k *Knob) OnDragStart() {}

func (k *Knob) OnDragMove(dx, dy int) {
	// Terminal rows grow downward; dragging up must raise the value.
	k.setValue(k.value - float64(dy)*(k.max-k.min)*k.sensitivity)
}

func (k *Knob) OnDragEnd() {}

// SwitchBehavior is the press/release strategy of a Switch.
type SwitchBehavior interface {
	OnDragStart(s *Switch)
	OnDragEnd(s *Switch)
	// OnDragDrop fires on release; self is true when the release landed
	// back on the switch itself.
	OnDragDrop(s *Switch, self bool)
}

// Switch is a stepped param control. Behavior and face are orthogonal:
// the behavior decides how presses move the value, the optional face is
// told which frame to show.
type Switch struct {
	ParamName string

	target   ParamSetter
	index    int
	min, max float64
	value    float64
	behavior SwitchBehavior
	face     IndexSettable // may be nil
}

func NewSwitch(target ParamSetter, index int, name string, min, max, value float64, behavior SwitchBehavior) *Switch {
	return &Switch{
		ParamName: name,
		target:    target,
		index:     index,
		min:       min,
		max:       max,
		value:     value,
		behavior:  behavior,
	}
}

// SetFace attaches a frame-settable face and syncs it.
func (s *Switch) SetFace(face IndexSettable) {
	s.face = face
	s.SetIndex(int(s.value + 0.5))
}

func (s *Switch) Value() float64 { return s.value }

// SetIndex forwards the frame index to the face, if any.
func (s *Switch) SetIndex(index int) {
	if s.face != nil {
		s.face.SetIndex(index)
	}
}

// SetValue stores and publishes the value and keeps the face in step.
func (s *Switch) SetValue(v float64) {
	if v < s.min {
		v = s.min
	}
	if v > s.max {
		v = s.max
	}
	s.value = v
	s.target.SetParam(s.index, v)
	s.SetIndex(int(v + 0.5))
}

// cycle advances to the next position, wrapping to min past max.
func (s *Switch) cycle() {
	v := s.value + 1
	if v > s.max {
		v = s.min
	}
	s.SetValue(v)
}

func (s *Switch) OnDragStart() { s.behavior.OnDragStart(s) }

func (s *Switch) OnDragMove(dx, dy int) {}

func (s *Switch) OnDragEnd() { s.behavior.OnDragEnd(s) }

// OnDragDrop must be called by the front-end on release, with self set
// when the pointer is still over the switch.
func (s *Switch) OnDragDrop(self bool) { s.behavior.OnDragDrop(s, self) }

// Toggle steps to the next position on every press.
type Toggle struct{}

func (Toggle) OnDragStart(s *Switch) { s.cycle() }

func (Toggle) OnDragEnd(s *Switch) {}

func (Toggle) OnDragDrop(s *Switch, self bool) {}

// Momentary is on while held.
type Momentary struct{}

func (Momentary) OnDragStart(s *Switch) {
	s.SetValue(s.max)
	s.SetIndex(1)
}

func (Momentary) OnDragEnd(s *Switch) {
	s.SetValue(s.min)
	s.SetIndex(0)
}

func (Momentary) OnDragDrop(s *Switch, self bool) {}

// Cycling shows a pressed face while held and advances only when the
// release lands back on the switch, so a drag-away is a cancel.
type Cycling struct{}

func (Cycling) OnDragStart(s *Switch) { s.SetIndex(1) }

func (Cycling) OnDragEnd(s *Switch) { s.SetIndex(0) }

func (Cycling) OnDragDrop(s *Switch, self bool) {
	if self {
		s.cycle()
	}
}
