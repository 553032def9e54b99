// Package strip drives the addressable light strip that shows the machine position.
package strip

import "image/color"

// Off is an unlit pixel.
var Off = color.RGBA{A: 0xff}

// Frame is the pixel buffer of the whole strip.
type Frame []color.RGBA

// NewFrame returns an all-off frame of n pixels.
func NewFrame(n int) Frame {
	f := make(Frame, n)
	f.Clear()
	return f
}

// Clear turns every pixel off.
func (f Frame) Clear() {
	for i := range f {
		f[i] = Off
	}
}

// Set colours pixel i. Indices outside the frame are ignored.
func (f Frame) Set(i int, c color.RGBA) {
	if i < 0 || i >= len(f) {
		return
	}
	f[i] = c
}

// Lit returns the indices of the pixels that are not off.
func (f Frame) Lit() []int {
	var lit []int
	for i, c := range f {
		if c.R != 0 || c.G != 0 || c.B != 0 {
			lit = append(lit, i)
		}
	}
	return lit
}
