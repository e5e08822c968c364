package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGPL(t *testing.T) {
	t.Run("parses name and colors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.gpl")
		gpl := `GIMP Palette
Name: Test Palette
Columns: 4
# a comment
255   0   0 red
  0 255   0 green
  0   0 255 blue
`
		require.NoError(t, os.WriteFile(path, []byte(gpl), 0644))

		p, err := LoadGPL(path)
		require.NoError(t, err)
		assert.Equal(t, "Test Palette", p.Name)
		require.Len(t, p.Colors, 3)
		assert.Equal(t, "#ff0000", p.Colors[0].Hex())
		assert.Equal(t, "#0000ff", p.Colors[2].Hex())
	})

	t.Run("palette without colors is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.gpl")
		require.NoError(t, os.WriteFile(path, []byte("GIMP Palette\nName: Empty\n"), 0644))

		_, err := LoadGPL(path)
		assert.Error(t, err)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadGPL(filepath.Join(t.TempDir(), "nope.gpl"))
		assert.Error(t, err)
	})
}

func TestPaletteLookup(t *testing.T) {
	p := DefaultPalette()

	t.Run("endpoints clamp", func(t *testing.T) {
		assert.Equal(t, p.Colors[0], p.Lookup(-1))
		assert.Equal(t, p.Colors[0], p.Lookup(0))
		assert.Equal(t, p.Colors[len(p.Colors)-1], p.Lookup(1))
		assert.Equal(t, p.Colors[len(p.Colors)-1], p.Lookup(2))
	})

	t.Run("interior values interpolate", func(t *testing.T) {
		mid := p.Lookup(0.5)
		assert.NotEqual(t, p.Colors[0], mid)
		assert.NotEqual(t, p.Colors[len(p.Colors)-1], mid)
	})

	t.Run("index clamps both ends", func(t *testing.T) {
		assert.Equal(t, p.Colors[0], p.Index(-5))
		assert.Equal(t, p.Colors[len(p.Colors)-1], p.Index(99))
	})
}

func TestNextCableColor(t *testing.T) {
	th := New(DefaultPalette())

	first := th.NextCableColor()
	var seen []string
	seen = append(seen, first)
	for i := 1; i < cableSpan; i++ {
		seen = append(seen, th.NextCableColor())
	}

	// One full cycle hands out distinct hues, then repeats from the top.
	unique := map[string]bool{}
	for _, c := range seen {
		unique[c] = true
	}
	assert.Len(t, unique, cableSpan)
	assert.Equal(t, first, th.NextCableColor())
}

func TestCableColor(t *testing.T) {
	th := New(DefaultPalette())

	t.Run("full opacity passes the hex through", func(t *testing.T) {
		assert.Equal(t, lipgloss.Color("#c44e81"), th.CableColor("#c44e81", 1.0))
	})

	t.Run("partial opacity dims toward the background", func(t *testing.T) {
		dimmed := th.CableColor("#ffffff", 0.5)
		assert.NotEqual(t, lipgloss.Color("#ffffff"), dimmed)
		assert.NotEqual(t, th.BG(), dimmed)
	})

	t.Run("bad hex falls back to the accent color", func(t *testing.T) {
		fallback := th.CableColor("not-a-color", 1.0)
		assert.Equal(t, th.Accent(), fallback)
	})
}
