// Package clock provides the free-running millisecond counter the update loop is timed with.
package clock

import (
	"sync"
	"time"
)

// Clock is a monotonic millisecond counter. It wraps around at 2^32, so
// intervals must always be computed with unsigned subtraction.
type Clock interface {
	Millis() uint32
}

// System counts milliseconds since it was created.
type System struct {
	start time.Time
}

// NewSystem starts a counter at zero.
func NewSystem() *System {
	return &System{start: time.Now()}
}

// Millis returns the elapsed milliseconds, truncated to 32 bits.
func (s *System) Millis() uint32 {
	return uint32(time.Since(s.start).Milliseconds())
}

// Since returns the milliseconds elapsed from start to now, across a wrap.
func Since(c Clock, start uint32) uint32 {
	return c.Millis() - start
}

// Fake is a manually advanced clock.
type Fake struct {
	mu  sync.Mutex
	now uint32
}

// NewFake returns a fake clock reading start.
func NewFake(start uint32) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Millis() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by ms, wrapping like the hardware counter.
func (f *Fake) Advance(ms uint32) {
	f.mu.Lock()
	f.now += ms
	f.mu.Unlock()
}

func (f *Fake) Set(ms uint32) {
	f.mu.Lock()
	f.now = ms
	f.mu.Unlock()
}
