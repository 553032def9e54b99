package lampbus

import "penumbra-agent/internal/logger"

// LogDriver logs the used channels instead of transmitting them.
type LogDriver struct {
	log logger.Logger
	max int
}

func NewLogDriver(log logger.Logger, maxChannel int) *LogDriver {
	return &LogDriver{log: log, max: maxChannel}
}

func (d *LogDriver) Send(dmx [UniverseSize]byte) error {
	d.log.With(logger.Fields{"module": "dmx"}).Debugf("DMX channels 1..%d: %v", d.max, dmx[:d.max])
	return nil
}
