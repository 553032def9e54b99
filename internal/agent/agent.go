// Package agent runs the update loop: it ingests lines from the motion
// controller as fast as they arrive and, at most once per interval, pushes
// the changed values to the light strip and the lamp bus.
package agent

import (
	"context"
	"time"

	"penumbra-agent/internal/clock"
	"penumbra-agent/internal/control"
	"penumbra-agent/internal/diag"
	"penumbra-agent/internal/logger"
	"penumbra-agent/internal/position"
	"penumbra-agent/internal/ratelimit"
)

// LineSource yields complete lines without blocking.
type LineSource interface {
	PollLine() (string, bool)
}

// StripRenderer redraws the strip for a mapped position.
type StripRenderer interface {
	Render(primary, mirrored, brightnessA, brightnessB int) error
}

// LampWriter sets one lighting bus channel.
type LampWriter interface {
	Write(channel, level int) error
}

// minTick is the polling period used when Config.Tick is not set.
const minTick = time.Millisecond

// Config holds the loop constants.
type Config struct {
	Top      int
	NumLeds  int
	Interval time.Duration
	// Tick is the pause between iterations in Run.
	Tick     time.Duration
	ChannelA int
	ChannelB int
	// RedrawOnBrightness also redraws the strip when only a brightness changed.
	RedrawOnBrightness bool
}

// Agent owns the control state. It is not safe for concurrent use; Tick and
// Run must be called from one goroutine.
type Agent struct {
	cfg    Config
	src    LineSource
	strip  StripRenderer
	lamps  LampWriter
	clk    clock.Clock
	gate   ratelimit.Gate
	mapper position.Mapper
	sink   diag.Sink
	log    logger.Logger
	state  control.State
}

// New creates an agent. The first gated phase runs no earlier than one
// interval after New returns.
func New(cfg Config, src LineSource, strip StripRenderer, lamps LampWriter, clk clock.Clock, sink diag.Sink, log logger.Logger) *Agent {
	if sink == nil {
		sink = diag.Discard{}
	}
	a := &Agent{
		cfg:    cfg,
		src:    src,
		strip:  strip,
		lamps:  lamps,
		clk:    clk,
		gate:   ratelimit.NewGate(cfg.Interval),
		mapper: position.Mapper{Top: cfg.Top, NumLeds: cfg.NumLeds},
		sink:   sink,
		log:    log,
	}
	a.state.LastDispatch = clk.Millis()
	return a
}

// State returns a copy of the control state.
func (a *Agent) State() control.State {
	return a.state
}

// Run calls Tick every cfg.Tick until ctx is done. A non-positive Tick
// falls back to minTick.
func (a *Agent) Run(ctx context.Context) error {
	period := a.cfg.Tick
	if period <= 0 {
		period = minTick
	}
	a.log.With(logger.Fields{"module": "agent"}).Infof("update loop started, interval %d ms, tick %v", a.gate.Interval(), period)

	t := time.NewTicker(period)
	defer t.Stop()

	for {
		a.Tick()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// Tick runs one loop iteration: every complete line is parsed into the
// state, then the gated phase runs if the interval has elapsed.
func (a *Agent) Tick() {
	for {
		line, ok := a.src.PollLine()
		if !ok {
			break
		}
		a.ingest(line)
	}

	if !a.gate.Due(a.clk.Millis(), a.state.LastDispatch) {
		return
	}
	a.dispatch()
	a.state.LastDispatch = a.clk.Millis()
}

func (a *Agent) ingest(line string) {
	err := control.Parse(line, &a.state)

	cur := a.state.Current()
	ev := diag.MessageParsed{
		Line:        line,
		Position:    cur.Position,
		BrightnessA: cur.BrightnessA,
		BrightnessB: cur.BrightnessB,
	}
	if err != nil {
		ev.Malformed = true
		ev.Error = err.Error()
	}
	a.sink.Publish(ev)
}

// dispatch is the gated phase: strip on position change, each lamp on its own
// change, then the current values become the previous ones.
func (a *Agent) dispatch() {
	changes := a.state.Detect()
	if !changes.Any() {
		return
	}
	st := a.state

	redraw := changes.Position || (a.cfg.RedrawOnBrightness && (changes.BrightnessA || changes.BrightnessB))
	if redraw {
		primary, mirrored := a.mapper.Map(st.Position)
		if err := a.strip.Render(primary, mirrored, st.BrightnessA, st.BrightnessB); err != nil {
			a.sink.Publish(diag.ActuatorFailed{Actuator: "strip", Error: err.Error()})
		} else {
			a.sink.Publish(diag.StripRendered{
				Position:    position.Clamp(st.Position, a.cfg.Top),
				Primary:     primary,
				Mirrored:    mirrored,
				BrightnessA: st.BrightnessA,
				BrightnessB: st.BrightnessB,
			})
		}
	}

	if changes.BrightnessA {
		a.writeLamp("A", a.cfg.ChannelA, st.BrightnessA)
	}
	if changes.BrightnessB {
		a.writeLamp("B", a.cfg.ChannelB, st.BrightnessB)
	}

	a.state.Commit()
}

func (a *Agent) writeLamp(name string, channel, level int) {
	if err := a.lamps.Write(channel, level); err != nil {
		a.sink.Publish(diag.ActuatorFailed{Actuator: "dmx", Error: err.Error()})
		return
	}
	a.sink.Publish(diag.LampWritten{Lamp: name, Channel: channel, Level: clampLevel(level)})
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 255 {
		return 255
	}
	return level
}
