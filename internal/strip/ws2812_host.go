//go:build !tinygo

package strip

import "errors"

// ErrNoWS2812 is returned on builds that cannot bit-bang a ws2812 line.
var ErrNoWS2812 = errors.New("ws2812 driver requires a tinygo build")

// NewWS2812 is only available on tinygo targets.
func NewWS2812(pin int) (Driver, error) {
	return nil, ErrNoWS2812
}
