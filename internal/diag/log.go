package diag

import (
	"penumbra-agent/internal/logger"
)

// LogTo prints every event through log. It returns the unsubscribe function.
func LogTo(b *Bus, log logger.Logger) func() {
	return b.SubscribeAll(func(ev Event) {
		logEvent(log, ev)
	})
}

func logEvent(log logger.Logger, ev Event) {
	switch e := ev.(type) {
	case LinkReady:
		l := log.With(logger.Fields{"module": "link", "waited_ms": e.WaitedMS})
		if e.Ready {
			l.Info("<Setup complete>")
		} else {
			l.Warn("<Setup complete> without link")
		}
	case MessageParsed:
		l := log.With(logger.Fields{"module": "parser", "line": e.Line})
		if e.Malformed {
			l.Warnf("malformed message: %s", e.Error)
			return
		}
		l.Debugf("received message: position %d, brightnessA %d, brightnessB %d", e.Position, e.BrightnessA, e.BrightnessB)
	case StripRendered:
		log.With(logger.Fields{"module": "strip"}).Debugf("ledApos: %d, ledBpos: %d", e.Primary, e.Mirrored)
	case LampWritten:
		log.With(logger.Fields{"module": "dmx", "channel": e.Channel}).Debugf("set halogen%s brightness: %d", e.Lamp, e.Level)
	case ActuatorFailed:
		log.With(logger.Fields{"module": e.Actuator}).Errorf("write failed: %s", e.Error)
	}
}
