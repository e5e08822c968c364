// Package rack is the core of the patch editor: the graph of modules and
// wires, the grid layout, the drag state machine that edits connections,
// and the patch document serializer. Everything here runs on the single
// event-loop goroutine; renderers and audio engines are external
// collaborators that only query through the interfaces this package
// exposes.
package rack

import (
	"github.com/rs/zerolog"

	"patchbay/plugin"
)

// App is the explicit application context: one graph, one layout, one
// controller, one scene, constructed at startup and passed to whoever
// needs it. There is deliberately no package-level rack state.
type App struct {
	Catalog    *plugin.Catalog
	Layout     *Layout
	Graph      *Graph
	Controller *Controller
	Scene      *Scene

	log zerolog.Logger
}

// NewApp builds an empty rack.
func NewApp(catalog *plugin.Catalog, layout *Layout, locate Locator, nextColor func() string, log zerolog.Logger) *App {
	a := &App{
		Catalog: catalog,
		Layout:  layout,
		log:     log,
	}
	a.adopt(NewGraph(layout, log), locate, nextColor)
	return a
}

// adopt swaps in a graph and rebuilds the pieces bound to it.
func (a *App) adopt(g *Graph, locate Locator, nextColor func() string) {
	a.Graph = g
	a.Controller = NewController(g, locate, nextColor, a.log)
	a.Scene = NewScene(g)
}

// Load replaces the current rack with a named saved patch. The old graph
// is only discarded once the new one has fully loaded, so a failed load
// leaves the rack untouched.
func (a *App) Load(name string) ([]LoadWarning, error) {
	g, warnings, err := LoadPatch(a.Catalog, a.Layout, name, a.log)
	if err != nil {
		return warnings, err
	}
	a.adopt(g, a.Controller.locate, a.Controller.nextColor)
	return warnings, nil
}

// Save writes the current rack as a named patch.
func (a *App) Save(name string) error {
	return SavePatch(a.Graph, name)
}

// Clear empties the rack and drops any drag in progress.
func (a *App) Clear() {
	a.Controller.OnAbort()
	a.Graph.Clear()
}
