package plugin

import (
	"encoding/json"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Param indexes of the CC out model.
const (
	ccParamChannel = iota
	ccParamController
	ccParamValue
)

// MIDIOut returns the "midi/ccout" model: a module that emits a MIDI
// control change whenever its value param moves. The port name is the
// module's own opaque state, carried through the patch document's data
// field, not a param.
func MIDIOut() *Model {
	return &Model{
		Plugin: "midi", Slug: "ccout", Name: "CC Out", Width: 3,
		Inputs:  []string{"cv"},
		Outputs: []string{},
		Params: []ParamSpec{
			{Name: "channel", Min: 1, Max: 16, Default: 1},
			{Name: "cc", Min: 0, Max: 127, Default: 1},
			{Name: "value", Min: 0, Max: 127, Default: 0},
		},
		NewEngine: func() Engine { return &ccOutEngine{channel: 1, cc: 1} },
	}
}

type ccOutEngine struct {
	portName string
	send     func(gomidi.Message) error

	channel uint8
	cc      uint8
	value   uint8
	dirty   bool
}

type ccOutData struct {
	PortName string `json:"portName,omitempty"`
}

// Step flushes a pending CC. Without an open port it is a no-op, so the
// editor works fine with no MIDI hardware attached.
func (e *ccOutEngine) Step() {
	if !e.dirty {
		return
	}
	e.dirty = false
	if e.send == nil {
		return
	}
	// MIDI channels are 0-based on the wire
	e.send(gomidi.ControlChange(e.channel-1, e.cc, e.value))
}

func (e *ccOutEngine) SetParam(index int, value float64) {
	switch index {
	case ccParamChannel:
		e.channel = uint8(value)
	case ccParamController:
		e.cc = uint8(value)
	case ccParamValue:
		v := uint8(value)
		if v != e.value {
			e.value = v
			e.dirty = true
		}
	}
}

func (e *ccOutEngine) Data() json.RawMessage {
	data, _ := json.Marshal(ccOutData{PortName: e.portName})
	return data
}

func (e *ccOutEngine) SetData(data json.RawMessage) {
	var d ccOutData
	if err := json.Unmarshal(data, &d); err != nil {
		return
	}
	e.SetPort(d.PortName)
}

// SetPort binds the engine to a named MIDI out port, lazily opened. An
// unknown or empty name leaves the engine silent.
func (e *ccOutEngine) SetPort(name string) {
	e.portName = name
	e.send = nil
	if name == "" {
		return
	}
	for _, port := range gomidi.GetOutPorts() {
		if port.String() == name {
			if send, err := gomidi.SendTo(port); err == nil {
				e.send = send
			}
			return
		}
	}
}
