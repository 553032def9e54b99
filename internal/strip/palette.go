package strip

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette turns a brightness level into a pixel colour: the tint scaled by
// level/255. A white tint gives plain grayscale.
type Palette struct {
	tint colorful.Color
}

// NewPalette parses a "#RRGGBB" tint.
func NewPalette(tint string) (Palette, error) {
	c, err := colorful.Hex(tint)
	if err != nil {
		return Palette{}, fmt.Errorf("invalid tint %q: %w", tint, err)
	}
	return Palette{tint: c}, nil
}

// Gray returns the colour for level, clamped to [0, 255].
func (p Palette) Gray(level int) color.RGBA {
	if level < 0 {
		level = 0
	}
	if level > 255 {
		level = 255
	}
	k := float64(level) / 255
	r, g, b := colorful.Color{R: p.tint.R * k, G: p.tint.G * k, B: p.tint.B * k}.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
