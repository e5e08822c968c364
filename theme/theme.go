package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme maps palette positions to UI roles and carries the glyphs the
// rack renderer uses.
type Theme struct {
	Palette *Palette
	Symbols Symbols

	cableIdx int
}

type Symbols struct {
	PortIn     rune // ○ input terminal
	PortOut    rune // ● output terminal
	PortHot    rune // ◉ terminal under the pointer / snap candidate
	KnobGlyphs []rune
	WireH      rune
	WireV      rune
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			PortIn:     '○',
			PortOut:    '●',
			PortHot:    '◉',
			KnobGlyphs: []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'},
			WireH:      '─',
			WireV:      '│',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.08
	RoleMuted   = 0.2
	RoleFG      = 0.9
	RoleAccent  = 0.45
)

func (t *Theme) color(role float64) lipgloss.Color {
	return lipgloss.Color(t.Palette.Lookup(role).Hex())
}

func (t *Theme) BG() lipgloss.Color      { return t.color(RoleBG) }
func (t *Theme) Surface() lipgloss.Color { return t.color(RoleSurface) }
func (t *Theme) Muted() lipgloss.Color   { return t.color(RoleMuted) }
func (t *Theme) FG() lipgloss.Color      { return t.color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color  { return t.color(RoleAccent) }

// cableSpan is the upper palette band the cable cycle draws from; the
// low indexes are background tones.
const cableSpan = 7

// NextCableColor hands out the next wire color, cycling through the
// palette's cable band. Each new wire gets its own hue, like a fresh
// patch cable off the hook.
func (t *Theme) NextCableColor() string {
	n := len(t.Palette.Colors)
	span := cableSpan
	if span > n {
		span = n
	}
	c := t.Palette.Index(n - span + t.cableIdx%span)
	t.cableIdx++
	return c.Hex()
}

// CableColor resolves a wire's persisted hex color, dimmed toward the
// background by opacity (0-1, from config).
func (t *Theme) CableColor(hex string, opacity float64) lipgloss.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = t.Palette.Lookup(RoleAccent)
	}
	if opacity < 1 {
		c = c.BlendRgb(t.Palette.Lookup(RoleBG), 1-opacity)
	}
	return lipgloss.Color(c.Hex())
}
