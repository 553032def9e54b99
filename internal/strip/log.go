package strip

import (
	"fmt"

	"penumbra-agent/internal/logger"
)

// LogDriver only logs which pixels are lit. It is used on benches without a strip.
type LogDriver struct {
	log logger.Logger
}

func NewLogDriver(log logger.Logger) *LogDriver {
	return &LogDriver{log: log}
}

func (d *LogDriver) Show(f Frame) error {
	lit := f.Lit()
	pixels := make([]string, 0, len(lit))
	for _, i := range lit {
		c := f[i]
		pixels = append(pixels, fmt.Sprintf("%d=#%02x%02x%02x", i, c.R, c.G, c.B))
	}
	d.log.With(logger.Fields{"module": "strip"}).Debugf("show %d leds, lit: %v", len(f), pixels)
	return nil
}
