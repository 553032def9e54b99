// Package position maps the motion controller's absolute position onto the light strip.
package position

// Clamp limits position to [0, top].
func Clamp(position, top int) int {
	if position < 0 {
		return 0
	}
	if position > top {
		return top
	}
	return position
}

// Map converts position into a primary strip index proportional to the
// travel and a mirrored index, with primary+mirrored == numLeds-1.
// Out of range positions are clamped first, so both indices are always
// inside the strip. numLeds must be at least 1.
func Map(position, top, numLeds int) (primary, mirrored int) {
	last := numLeds - 1
	if top <= 0 || last <= 0 {
		return 0, last
	}

	p := Clamp(position, top)
	// round(p/top*last), half away from zero; p and top are non-negative.
	primary = (2*p*last + top) / (2 * top)
	if primary > last {
		primary = last
	}

	return primary, last - primary
}

// Mapper binds the travel and strip length of one installation.
type Mapper struct {
	Top     int
	NumLeds int
}

func (m Mapper) Map(position int) (primary, mirrored int) {
	return Map(position, m.Top, m.NumLeds)
}
