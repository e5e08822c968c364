// Package plugin defines module model descriptors and the catalog used to
// resolve them by slug. A Model is static: it declares ports, params and
// face width. Runtime behavior lives in the Engine a model optionally
// constructs for each placed module.
package plugin

import "encoding/json"

// ParamKind selects the control widget for a param.
type ParamKind int

const (
	KindKnob ParamKind = iota
	KindToggle
	KindMomentary
	KindCycling
)

// ParamSpec declares one parameter of a model.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
	Kind    ParamKind
}

// Model is the static descriptor of a module type.
type Model struct {
	Plugin  string // owning plugin slug, e.g. "builtin"
	Slug    string // model slug, stable across saves
	Name    string // display name
	Width   int    // face width in grid units
	Inputs  []string
	Outputs []string
	Params  []ParamSpec

	// NewEngine constructs the per-instance engine, or nil for models
	// with no runtime behavior.
	NewEngine func() Engine
}

// Key returns the catalog key for the model.
func (m *Model) Key() string { return m.Plugin + "/" + m.Slug }

// Defaults returns a fresh param slice at declared default values.
func (m *Model) Defaults() []float64 {
	params := make([]float64, len(m.Params))
	for i, p := range m.Params {
		params[i] = p.Default
	}
	return params
}

// Engine is the runtime side of a module. The scene scheduler calls Step
// once per frame before anything is drawn; the graph pushes param writes
// down as they happen. Data round-trips the engine's opaque state through
// the patch document.
type Engine interface {
	Step()
	SetParam(index int, value float64)
	Data() json.RawMessage
	SetData(data json.RawMessage)
}

// Catalog resolves models by plugin/model slug, preserving registration
// order for menu listing.
type Catalog struct {
	models map[string]*Model
	order  []*Model
}

func NewCatalog() *Catalog {
	return &Catalog{models: make(map[string]*Model)}
}

// Register adds a model. Re-registering a key replaces the model in place.
func (c *Catalog) Register(m *Model) {
	if _, ok := c.models[m.Key()]; !ok {
		c.order = append(c.order, m)
	} else {
		for i, existing := range c.order {
			if existing.Key() == m.Key() {
				c.order[i] = m
				break
			}
		}
	}
	c.models[m.Key()] = m
}

// Lookup finds a model by plugin and model slug.
func (c *Catalog) Lookup(pluginSlug, modelSlug string) (*Model, bool) {
	m, ok := c.models[pluginSlug+"/"+modelSlug]
	return m, ok
}

// Models returns all registered models in registration order.
func (c *Catalog) Models() []*Model {
	return c.order
}
