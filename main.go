package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"patchbay/config"
	"patchbay/debug"
	"patchbay/plugin"
	"patchbay/rack"
	"patchbay/theme"
	"patchbay/tui"
)

func main() {
	debug.Enable()
	defer debug.Disable()
	defer gomidi.CloseDriver()
	log := debug.Logger()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("bad config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	palette := theme.DefaultPalette()
	if cfg.UI.PalettePath != "" {
		if p, err := theme.LoadGPL(cfg.UI.PalettePath); err == nil {
			palette = p
		} else {
			log.Warn().Err(err).Str("path", cfg.UI.PalettePath).Msg("palette load failed, using default")
		}
	}
	th := theme.New(palette)

	catalog := plugin.NewCatalog()
	for _, model := range plugin.Builtin() {
		catalog.Register(model)
	}
	catalog.Register(plugin.MIDIOut())

	layout := rack.NewLayout()
	layout.Rows = cfg.Layout.Rows

	// Port geometry lives in the tui, but the controller needs it for
	// snap lookups; the locator closes the loop.
	locator := &tui.RackLocator{}
	app := rack.NewApp(catalog, layout, locator, th.NextCableColor, log)
	locator.App = app

	if cfg.UI.LastPatch != "" {
		if warnings, err := app.Load(cfg.UI.LastPatch); err != nil {
			log.Warn().Err(err).Str("patch", cfg.UI.LastPatch).Msg("could not reopen last patch")
		} else if len(warnings) > 0 {
			log.Warn().Int("dropped", len(warnings)).Msg("last patch loaded partially")
		}
	}

	m := tui.NewModel(app, th, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
