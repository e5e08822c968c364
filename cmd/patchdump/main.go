// patchdump loads a saved patch headlessly and prints what is in it.
// Useful for inspecting a patch file without a terminal UI, and for
// checking what a partial load would drop.
package main

import (
	"fmt"
	"os"

	"patchbay/debug"
	"patchbay/plugin"
	"patchbay/rack"
)

func main() {
	if len(os.Args) < 2 {
		names, err := rack.ListPatches()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Saved patches:")
		for _, name := range names {
			fmt.Println("  " + name)
		}
		fmt.Println("\nUsage: patchdump <name>")
		return
	}

	catalog := plugin.NewCatalog()
	for _, model := range plugin.Builtin() {
		catalog.Register(model)
	}
	catalog.Register(plugin.MIDIOut())

	g, warnings, err := rack.LoadPatch(catalog, rack.NewLayout(), os.Args[1], debug.Logger())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// One step pass so engines settle before reporting.
	rack.NewScene(g).Step()

	fmt.Printf("%s: %d modules, %d wires\n\n", os.Args[1], len(g.Modules()), len(g.Wires()))
	for _, m := range g.Modules() {
		fmt.Printf("  [%d] %-12s at (%d,%d) params=%v\n", m.ID, m.Model.Key(), m.Pos.X, m.Pos.Y, m.Params)
	}
	fmt.Println()
	for _, w := range g.Wires() {
		fmt.Printf("  wire %d: %s -> %s  %s\n", w.ID, w.Output, w.Input, w.Color)
	}

	if len(warnings) > 0 {
		fmt.Println("\nDropped entries:")
		for _, warn := range warnings {
			fmt.Println("  " + warn.String())
		}
	}
}
