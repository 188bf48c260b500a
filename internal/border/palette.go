package border

import "image/color"

// Palette maps groups to their canonical colours. Groups without an entry
// use the fallback colour.
type Palette struct {
	colors   map[Group]color.RGBA
	fallback color.RGBA
}

// DefaultPalette returns the reference colour table: white for ungrouped
// seeds, then red, green, blue and brown for groups 1 to 4.
func DefaultPalette() Palette {
	return NewPalette(color.RGBA{R: 255, G: 255, B: 255, A: 255}, map[Group]color.RGBA{
		1: {R: 255, G: 0, B: 0, A: 255},
		2: {R: 0, G: 255, B: 0, A: 255},
		3: {R: 0, G: 0, B: 255, A: 255},
		4: {R: 175, G: 75, B: 25, A: 255},
	})
}

// NewPalette builds a palette from a fallback colour and a group table.
// The table is copied.
func NewPalette(fallback color.RGBA, colors map[Group]color.RGBA) Palette {
	c := make(map[Group]color.RGBA, len(colors))
	for g, col := range colors {
		c[g] = col
	}
	return Palette{colors: c, fallback: fallback}
}

// Color returns the colour for g.
func (p Palette) Color(g Group) color.RGBA {
	if c, ok := p.colors[g]; ok {
		return c
	}
	return p.fallback
}

// Blend returns the colour painted on a boundary between groups a and b.
func (p Palette) Blend(a, b Group) color.RGBA {
	return Blend(p.Color(a), p.Color(b))
}

// Blend averages two colours channel by channel, rounding down, at full
// opacity.
func Blend(c1, c2 color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((uint16(c1.R) + uint16(c2.R)) / 2),
		G: uint8((uint16(c1.G) + uint16(c2.G)) / 2),
		B: uint8((uint16(c1.B) + uint16(c2.B)) / 2),
		A: 255,
	}
}
