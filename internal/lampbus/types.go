package lampbus

import "fmt"

// UniverseSize is the number of channels in a DMX universe.
const UniverseSize = 512

// Universe holds the levels of one DMX universe. Channels are 1-based as on
// the dimmer packs; only the first max channels are in use.
type Universe struct {
	channels [UniverseSize]byte
	max      int
}

// NewUniverse returns a dark universe using channels 1..maxChannel.
func NewUniverse(maxChannel int) *Universe {
	if maxChannel < 1 || maxChannel > UniverseSize {
		maxChannel = UniverseSize
	}
	return &Universe{max: maxChannel}
}

// Set stores level, clamped to [0, 255], on channel.
func (u *Universe) Set(channel, level int) error {
	if channel < 1 || channel > u.max {
		return fmt.Errorf("channel %d outside 1..%d", channel, u.max)
	}
	if level < 0 {
		level = 0
	}
	if level > 255 {
		level = 255
	}
	u.channels[channel-1] = byte(level)
	return nil
}

// Bytes returns a copy of the universe for sending.
func (u *Universe) Bytes() [UniverseSize]byte {
	return u.channels
}
