package theme

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is an ordered color list, loadable from a GIMP .gpl file.
type Palette struct {
	Name   string
	Colors []colorful.Color
}

// LoadGPL parses a GIMP palette file.
func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := &Palette{}
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "Name:") {
			p.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
			continue
		}

		// Skip headers and comments
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "GIMP") || strings.HasPrefix(line, "Columns") {
			continue
		}

		// First 3 fields are R G B
		fields := strings.Fields(line)
		if len(fields) >= 3 {
			r, err1 := strconv.Atoi(fields[0])
			g, err2 := strconv.Atoi(fields[1])
			b, err3 := strconv.Atoi(fields[2])
			if err1 == nil && err2 == nil && err3 == nil {
				p.Colors = append(p.Colors, colorful.Color{
					R: float64(r) / 255,
					G: float64(g) / 255,
					B: float64(b) / 255,
				})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("no colors found in palette %s", path)
	}

	return p, nil
}

// DefaultPalette is the fallback when no .gpl file is configured: dark
// surface tones first, then the cable colors.
func DefaultPalette() *Palette {
	hexes := []string{
		"#1a1026", "#2d1b3d", "#50346b", "#8a5fb0",
		"#c44e81", "#e06c75", "#e5c07b", "#98c379",
		"#56b6c2", "#61afef", "#c678dd", "#f0f0f0",
	}
	p := &Palette{Name: "default"}
	for _, h := range hexes {
		c, _ := colorful.Hex(h)
		p.Colors = append(p.Colors, c)
	}
	return p
}

// Lookup returns the interpolated color for a normalized value 0-1.
func (p *Palette) Lookup(norm float64) colorful.Color {
	if norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[len(p.Colors)-1]
	}

	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	frac := pos - float64(i)
	return p.Colors[i].BlendRgb(p.Colors[i+1], frac)
}

// Index returns the color at a specific index, clamped.
func (p *Palette) Index(i int) colorful.Color {
	if i < 0 {
		i = 0
	}
	if i >= len(p.Colors) {
		i = len(p.Colors) - 1
	}
	return p.Colors[i]
}
