// Package lampbus writes the halogen lamp levels to the DMX lighting bus.
package lampbus

import "fmt"

// Driver transmits a whole universe. Transmission is fire-and-forget: the
// bus gives no acknowledgement.
type Driver interface {
	Send(dmx [UniverseSize]byte) error
}

// Actuator keeps the universe state and pushes it on every channel write.
type Actuator struct {
	universe *Universe
	driver   Driver
}

// NewActuator creates an actuator for a bus with maxChannel channels.
func NewActuator(maxChannel int, driver Driver) *Actuator {
	return &Actuator{
		universe: NewUniverse(maxChannel),
		driver:   driver,
	}
}

// Write sets channel to level and sends the universe.
func (a *Actuator) Write(channel, level int) error {
	if err := a.universe.Set(channel, level); err != nil {
		return fmt.Errorf("lamp write: %w", err)
	}
	return a.driver.Send(a.universe.Bytes())
}
