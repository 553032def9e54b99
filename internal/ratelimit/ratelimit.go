// Package ratelimit gates actuator dispatch to at most once per interval.
package ratelimit

import "time"

// IsDue reports whether interval milliseconds have passed between last and now.
// The subtraction is unsigned, so it stays correct when the counter wraps.
func IsDue(now, last, interval uint32) bool {
	return now-last >= interval
}

// Gate holds the dispatch interval. The caller owns the last dispatch time and
// records it after the gated work completes.
type Gate struct {
	interval uint32
}

// NewGate returns a gate for the given interval, rounded down to whole milliseconds.
func NewGate(interval time.Duration) Gate {
	return Gate{interval: uint32(interval.Milliseconds())}
}

// Due reports whether a dispatch may run at now.
func (g Gate) Due(now, last uint32) bool {
	return IsDue(now, last, g.interval)
}

// Interval returns the gate interval in milliseconds.
func (g Gate) Interval() uint32 {
	return g.interval
}
