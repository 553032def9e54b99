//go:build tinygo

package strip

import (
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// WS2812Driver drives the strip directly from a microcontroller pin.
type WS2812Driver struct {
	dev ws2812.Device
}

// NewWS2812 configures pin as the strip data line.
func NewWS2812(pin int) (Driver, error) {
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &WS2812Driver{dev: ws2812.New(p)}, nil
}

func (d *WS2812Driver) Show(f Frame) error {
	return d.dev.WriteColors(f)
}
