package rack

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"patchbay/plugin"
)

// Patch document schema. Array order is meaningful and preserved:
// serializing a loaded patch writes the sections back byte-identically
// when nothing was dropped. Persisted module ids are document-local (the
// position-independent keys wires resolve against); runtime ids are never
// written because they are process-local.
type patchModule struct {
	ID     int             `json:"id"`
	Plugin string          `json:"pluginId"`
	Model  string          `json:"moduleId"`
	X      int             `json:"x"`
	Y      int             `json:"y"`
	Params []float64       `json:"params"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type patchWire struct {
	OutputModuleID int    `json:"outputModuleId"`
	OutputID       int    `json:"outputId"`
	InputModuleID  int    `json:"inputModuleId"`
	InputID        int    `json:"inputId"`
	Color          string `json:"color"`
}

type patchDoc struct {
	Modules []patchModule `json:"modules"`
	Wires   []patchWire   `json:"wires"`
}

// Serialize converts the graph to the patch document. Modules and wires
// appear in insertion order; each module's id in the document is its
// 0-based position, so round-tripped documents stay stable even though
// runtime ids differ per process.
func Serialize(g *Graph) ([]byte, error) {
	doc := patchDoc{Modules: []patchModule{}, Wires: []patchWire{}}

	persisted := make(map[ModuleID]int)
	for i, m := range g.Modules() {
		persisted[m.ID] = i
		entry := patchModule{
			ID:     i,
			Plugin: m.Model.Plugin,
			Model:  m.Model.Slug,
			X:      m.Pos.X,
			Y:      m.Pos.Y,
			Params: append([]float64{}, m.Params...),
		}
		if m.Engine != nil {
			entry.Data = m.Engine.Data()
		}
		doc.Modules = append(doc.Modules, entry)
	}

	for _, w := range g.Wires() {
		doc.Wires = append(doc.Wires, patchWire{
			OutputModuleID: persisted[w.Output.Module],
			OutputID:       w.Output.ID,
			InputModuleID:  persisted[w.Input.Module],
			InputID:        w.Input.ID,
			Color:          w.Color,
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Deserialize parses a patch document into a fresh graph. The whole
// document must parse structurally (modules and wires arrays present) or
// nothing is built and ErrSchemaInvalid is returned. After that, recovery
// is per entry: a module with an unknown model or an unplaceable
// position, or a wire referencing a missing module or an out-of-range
// port, is dropped with a warning; everything else still loads.
func Deserialize(data []byte, catalog *plugin.Catalog, layout *Layout, log zerolog.Logger) (*Graph, []LoadWarning, error) {
	var doc patchDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	if doc.Modules == nil || doc.Wires == nil {
		return nil, nil, fmt.Errorf("%w: missing modules or wires array", ErrSchemaInvalid)
	}

	g := NewGraph(layout, log)
	var warnings []LoadWarning
	warn := func(section string, index int, format string, args ...any) {
		w := LoadWarning{Section: section, Index: index, Reason: fmt.Sprintf(format, args...)}
		warnings = append(warnings, w)
		log.Warn().Str("entry", w.String()).Msg("patch entry dropped")
	}

	// Modules first: fresh runtime ids, persisted ids only resolve wires.
	runtime := make(map[int]ModuleID)
	for i, entry := range doc.Modules {
		model, ok := catalog.Lookup(entry.Plugin, entry.Model)
		if !ok {
			warn("modules", i, "unknown model %s/%s", entry.Plugin, entry.Model)
			continue
		}
		if _, dup := runtime[entry.ID]; dup {
			warn("modules", i, "duplicate module id %d", entry.ID)
			continue
		}
		id, err := g.AddModule(model, Pos{X: entry.X, Y: entry.Y})
		if err != nil {
			warn("modules", i, "unplaceable: %v", err)
			continue
		}
		m, _ := g.Module(id)
		for p, v := range entry.Params {
			m.SetParam(p, v)
		}
		if m.Engine != nil && entry.Data != nil {
			m.Engine.SetData(entry.Data)
		}
		runtime[entry.ID] = id
	}

	// Then wires, resolved against the freshly created modules.
	for i, entry := range doc.Wires {
		outID, ok := runtime[entry.OutputModuleID]
		if !ok {
			warn("wires", i, "output references missing module %d", entry.OutputModuleID)
			continue
		}
		inID, ok := runtime[entry.InputModuleID]
		if !ok {
			warn("wires", i, "input references missing module %d", entry.InputModuleID)
			continue
		}
		out, _ := g.Module(outID)
		in, _ := g.Module(inID)
		outRef := out.OutputRef(entry.OutputID)
		inRef := in.InputRef(entry.InputID)
		if !out.HasPort(outRef) || !in.HasPort(inRef) {
			warn("wires", i, "port out of range (out %d, in %d)", entry.OutputID, entry.InputID)
			continue
		}
		if _, err := g.Connect(outRef, inRef, entry.Color); err != nil {
			warn("wires", i, "connect failed: %v", err)
		}
	}

	return g, warnings, nil
}
