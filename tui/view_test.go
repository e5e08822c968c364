package tui

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patchbay/plugin"
	"patchbay/rack"
	"patchbay/theme"
)

func testApp(t *testing.T) *rack.App {
	t.Helper()
	catalog := plugin.NewCatalog()
	catalog.Register(&plugin.Model{
		Plugin: "test", Slug: "osc", Name: "Osc", Width: 3,
		Inputs:  []string{"pitch", "fm"},
		Outputs: []string{"out"},
		Params:  []plugin.ParamSpec{{Name: "freq", Min: 0, Max: 1, Default: 0.5}},
	})
	th := theme.New(theme.DefaultPalette())
	locator := &RackLocator{}
	app := rack.NewApp(catalog, rack.NewLayout(), locator, th.NextCableColor, zerolog.Nop())
	locator.App = app
	return app
}

func TestPortAt(t *testing.T) {
	app := testApp(t)
	locator := &RackLocator{App: app}
	model, _ := app.Catalog.Lookup("test", "osc")
	id, err := app.Graph.AddModule(model, rack.Pos{X: 4, Y: 0})
	require.NoError(t, err)
	m, _ := app.Graph.Module(id)

	t.Run("exact hit on an input terminal", func(t *testing.T) {
		x, y := portScreenPos(m, m.InputRef(1))
		ref, ok := locator.PortAt(x, y)
		require.True(t, ok)
		assert.Equal(t, m.InputRef(1), ref)
	})

	t.Run("near miss still snaps", func(t *testing.T) {
		x, y := portScreenPos(m, m.OutputRef(0))
		ref, ok := locator.PortAt(x+1, y)
		require.True(t, ok)
		assert.Equal(t, m.OutputRef(0), ref)

		ref, ok = locator.PortAt(x+1, y+1)
		require.True(t, ok, "diagonal neighbour is inside tolerance")
		assert.Equal(t, m.OutputRef(0), ref)
	})

	t.Run("far away finds nothing", func(t *testing.T) {
		_, ok := locator.PortAt(40, 20)
		assert.False(t, ok)
	})

	t.Run("nearest port wins between neighbours", func(t *testing.T) {
		x0, y := portScreenPos(m, m.InputRef(0))
		x1, _ := portScreenPos(m, m.InputRef(1))
		require.Equal(t, portPitch, x1-x0)

		ref, ok := locator.PortAt(x1, y)
		require.True(t, ok)
		assert.Equal(t, m.InputRef(1), ref)
	})
}

func TestModuleAt(t *testing.T) {
	app := testApp(t)
	model, _ := app.Catalog.Lookup("test", "osc")
	id, err := app.Graph.AddModule(model, rack.Pos{X: 2, Y: 0})
	require.NoError(t, err)

	face := app.Graph.Layout().FaceRect(rack.Pos{X: 2, Y: 0}, model.Width)

	m, ok := moduleAt(app.Graph, face.X, canvasTop+face.Y)
	require.True(t, ok)
	assert.Equal(t, id, m.ID)

	_, ok = moduleAt(app.Graph, face.X+face.W, canvasTop+face.Y)
	assert.False(t, ok, "first cell past the face")

	_, ok = moduleAt(app.Graph, face.X, 0)
	assert.False(t, ok, "header row is not the rack")
}

func TestParamAt(t *testing.T) {
	app := testApp(t)
	model, _ := app.Catalog.Lookup("test", "osc")
	id, err := app.Graph.AddModule(model, rack.Pos{X: 0, Y: 0})
	require.NoError(t, err)
	m, _ := app.Graph.Module(id)

	x, y := paramScreenPos(m, 0)
	got, idx, ok := paramAt(app.Graph, x, y)
	require.True(t, ok)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, 0, idx)

	_, _, ok = paramAt(app.Graph, x+1, y)
	assert.False(t, ok, "cell between controls")
}

func TestCanvasDraw(t *testing.T) {
	th := theme.New(theme.DefaultPalette())
	layout := rack.NewLayout()

	at := func(c *canvas, x, y int) rune { return c.cells[y*c.w+x].r }

	t.Run("module face shows title, ports and knob", func(t *testing.T) {
		app := testApp(t)
		model, _ := app.Catalog.Lookup("test", "osc")
		id, err := app.Graph.AddModule(model, rack.Pos{X: 0, Y: 0})
		require.NoError(t, err)
		m, _ := app.Graph.Module(id)

		c := newCanvas(20, 10, th, layout, 1.0, 0.5, func(ref rack.PortRef) (int, int) {
			return portScreenPos(m, ref)
		})
		c.DrawModule(m)

		assert.Equal(t, 'O', at(c, 0, canvasTop+rowTitle))
		assert.Equal(t, th.Symbols.PortIn, at(c, 0, canvasTop+rowInputs))
		assert.Equal(t, th.Symbols.PortIn, at(c, portPitch, canvasTop+rowInputs))
		assert.Equal(t, th.Symbols.PortOut, at(c, 0, canvasTop+rowOutputs))
		// freq is at its midpoint, so the knob glyph is mid-scale.
		mid := th.Symbols.KnobGlyphs[len(th.Symbols.KnobGlyphs)/2]
		assert.Equal(t, mid, at(c, 0, canvasTop+rowParams))
	})

	t.Run("elbow cable runs horizontal, vertical, horizontal", func(t *testing.T) {
		c := newCanvas(20, 10, th, layout, 1.0, 0.5, nil)
		c.drawElbow(0, 2, 10, 6, th.FG())

		assert.Equal(t, th.Symbols.WireH, at(c, 1, 2))
		assert.Equal(t, '╮', at(c, 5, 2), "top corner turns down")
		assert.Equal(t, th.Symbols.WireV, at(c, 5, 4))
		assert.Equal(t, '╰', at(c, 5, 6), "bottom corner turns right")
		assert.Equal(t, th.Symbols.WireH, at(c, 8, 6))
	})

	t.Run("tension keeps the vertical run near the output at zero", func(t *testing.T) {
		c := newCanvas(20, 10, th, layout, 1.0, 0.0, nil)
		c.drawElbow(2, 1, 12, 5, th.FG())

		assert.Equal(t, th.Symbols.WireV, at(c, 2, 3))
	})

	t.Run("level cable is a straight line", func(t *testing.T) {
		c := newCanvas(20, 10, th, layout, 1.0, 0.5, nil)
		c.drawElbow(1, 4, 8, 4, th.FG())

		for x := 1; x <= 8; x++ {
			assert.Equal(t, th.Symbols.WireH, at(c, x, 4))
		}
	})
}
