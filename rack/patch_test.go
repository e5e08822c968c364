package rack

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patchbay/plugin"
)

// echoEngine keeps whatever opaque data it was loaded with.
type echoEngine struct {
	data json.RawMessage
}

func (e *echoEngine) Step()                         {}
func (e *echoEngine) SetParam(index int, v float64) {}
func (e *echoEngine) Data() json.RawMessage         { return e.data }
func (e *echoEngine) SetData(data json.RawMessage)  { e.data = append(json.RawMessage{}, data...) }

func testCatalog() *plugin.Catalog {
	c := plugin.NewCatalog()
	c.Register(testModel("vco", 0, 2))
	c.Register(testModel("vcf", 2, 1))
	c.Register(testModel("out", 1, 0))
	sampler := testModel("sampler", 1, 1)
	sampler.NewEngine = func() plugin.Engine { return &echoEngine{} }
	c.Register(sampler)
	return c
}

// buildPatch assembles a small but fully featured graph.
func buildPatch(t *testing.T, catalog *plugin.Catalog) *Graph {
	t.Helper()
	g := newTestGraph()

	vco, _ := catalog.Lookup("test", "vco")
	vcf, _ := catalog.Lookup("test", "vcf")
	out, _ := catalog.Lookup("test", "out")

	a := addAt(t, g, vco, 0)
	b := addAt(t, g, vcf, 10)
	c := addAt(t, g, out, 20)
	ma, _ := g.Module(a)
	mb, _ := g.Module(b)
	mc, _ := g.Module(c)
	ma.SetParam(0, 0.25)

	_, err := g.Connect(ma.OutputRef(0), mb.InputRef(0), "#c44e81")
	require.NoError(t, err)
	_, err = g.Connect(ma.OutputRef(1), mb.InputRef(1), "#61afef")
	require.NoError(t, err)
	_, err = g.Connect(mb.OutputRef(0), mc.InputRef(0), "#98c379")
	require.NoError(t, err)
	return g
}

func TestPatchRoundTrip(t *testing.T) {
	catalog := testCatalog()

	t.Run("serialize then deserialize preserves everything but ids", func(t *testing.T) {
		g := buildPatch(t, catalog)

		data, err := Serialize(g)
		require.NoError(t, err)

		loaded, warnings, err := Deserialize(data, catalog, NewLayout(), zerolog.Nop())
		require.NoError(t, err)
		assert.Empty(t, warnings)

		require.Len(t, loaded.Modules(), 3)
		require.Len(t, loaded.Wires(), 3)
		assert.Equal(t, 0.25, loaded.Modules()[0].Params[0])
		assert.Equal(t, g.Modules()[0].Pos, loaded.Modules()[0].Pos)
		assert.Equal(t, "#c44e81", loaded.Wires()[0].Color)
	})

	t.Run("second serialization is byte-identical", func(t *testing.T) {
		g := buildPatch(t, catalog)

		first, err := Serialize(g)
		require.NoError(t, err)
		loaded, _, err := Deserialize(first, catalog, NewLayout(), zerolog.Nop())
		require.NoError(t, err)
		second, err := Serialize(loaded)
		require.NoError(t, err)

		assert.Equal(t, string(first), string(second))
	})

	t.Run("engine data rides along opaquely", func(t *testing.T) {
		g := newTestGraph()
		sampler, _ := catalog.Lookup("test", "sampler")
		id, err := g.AddModule(sampler, Pos{})
		require.NoError(t, err)
		m, _ := g.Module(id)
		m.Engine.SetData(json.RawMessage(`{"file":"kick.wav","loop":true}`))

		data, err := Serialize(g)
		require.NoError(t, err)
		loaded, _, err := Deserialize(data, catalog, NewLayout(), zerolog.Nop())
		require.NoError(t, err)

		assert.JSONEq(t, `{"file":"kick.wav","loop":true}`, string(loaded.Modules()[0].Engine.Data()))
	})
}

func TestPatchRecovery(t *testing.T) {
	catalog := testCatalog()

	t.Run("wire to a missing module is dropped, rest intact", func(t *testing.T) {
		doc := `{
			"modules": [
				{"id": 0, "pluginId": "test", "moduleId": "vco", "x": 0, "y": 0, "params": [0.5]},
				{"id": 1, "pluginId": "test", "moduleId": "out", "x": 10, "y": 0, "params": [0.5]}
			],
			"wires": [
				{"outputModuleId": 0, "outputId": 0, "inputModuleId": 7, "inputId": 0, "color": "#ff0000"},
				{"outputModuleId": 0, "outputId": 1, "inputModuleId": 1, "inputId": 0, "color": "#00ff00"}
			]
		}`

		g, warnings, err := Deserialize([]byte(doc), catalog, NewLayout(), zerolog.Nop())
		require.NoError(t, err)

		assert.Len(t, g.Modules(), 2)
		require.Len(t, g.Wires(), 1)
		assert.Equal(t, "#00ff00", g.Wires()[0].Color)
		require.Len(t, warnings, 1)
		assert.Equal(t, "wires", warnings[0].Section)
		assert.Equal(t, 0, warnings[0].Index)
	})

	t.Run("out-of-range port id is dropped", func(t *testing.T) {
		doc := `{
			"modules": [
				{"id": 0, "pluginId": "test", "moduleId": "vco", "x": 0, "y": 0, "params": [0.5]},
				{"id": 1, "pluginId": "test", "moduleId": "out", "x": 10, "y": 0, "params": [0.5]}
			],
			"wires": [
				{"outputModuleId": 0, "outputId": 9, "inputModuleId": 1, "inputId": 0, "color": "#ff0000"}
			]
		}`

		g, warnings, err := Deserialize([]byte(doc), catalog, NewLayout(), zerolog.Nop())
		require.NoError(t, err)
		assert.Empty(t, g.Wires())
		assert.Len(t, warnings, 1)
	})

	t.Run("unknown model drops the module and its wires", func(t *testing.T) {
		doc := `{
			"modules": [
				{"id": 0, "pluginId": "vendor", "moduleId": "gone", "x": 0, "y": 0, "params": []},
				{"id": 1, "pluginId": "test", "moduleId": "out", "x": 10, "y": 0, "params": [0.5]}
			],
			"wires": [
				{"outputModuleId": 0, "outputId": 0, "inputModuleId": 1, "inputId": 0, "color": "#ff0000"}
			]
		}`

		g, warnings, err := Deserialize([]byte(doc), catalog, NewLayout(), zerolog.Nop())
		require.NoError(t, err)
		assert.Len(t, g.Modules(), 1)
		assert.Empty(t, g.Wires())
		assert.Len(t, warnings, 2)
	})

	t.Run("excess params are ignored, missing params keep defaults", func(t *testing.T) {
		doc := `{
			"modules": [
				{"id": 0, "pluginId": "test", "moduleId": "vco", "x": 0, "y": 0, "params": [0.9, 1, 2, 3]},
				{"id": 1, "pluginId": "test", "moduleId": "out", "x": 10, "y": 0, "params": []}
			],
			"wires": []
		}`

		g, _, err := Deserialize([]byte(doc), catalog, NewLayout(), zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, 0.9, g.Modules()[0].Params[0])
		assert.Equal(t, 0.5, g.Modules()[1].Params[0], "default survives")
	})
}

func TestPatchSchemaErrors(t *testing.T) {
	catalog := testCatalog()

	t.Run("garbage is a hard failure", func(t *testing.T) {
		_, _, err := Deserialize([]byte("not json"), catalog, NewLayout(), zerolog.Nop())
		assert.ErrorIs(t, err, ErrSchemaInvalid)
	})

	t.Run("missing wires array is a hard failure", func(t *testing.T) {
		_, _, err := Deserialize([]byte(`{"modules": []}`), catalog, NewLayout(), zerolog.Nop())
		assert.ErrorIs(t, err, ErrSchemaInvalid)
	})

	t.Run("empty but complete document loads an empty graph", func(t *testing.T) {
		g, warnings, err := Deserialize([]byte(`{"modules": [], "wires": []}`), catalog, NewLayout(), zerolog.Nop())
		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Empty(t, g.Modules())
	})
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "my-patch", sanitizeName("my patch"))
	assert.Equal(t, "ab", sanitizeName(`a/\:*?"<>|b`))
}
