package control

// Message is one parsed line from the motion controller.
type Message struct {
	Position    int
	BrightnessA int
	BrightnessB int
}

// State mirrors the motion controller. Current values are written by the
// parser as lines arrive; the Prev values and LastDispatch only move in the
// gated phase, after the actuators were written.
type State struct {
	Position     int
	PositionPrev int

	BrightnessA     int
	BrightnessAPrev int

	BrightnessB     int
	BrightnessBPrev int

	// LastDispatch is the clock reading when the previous gated phase finished.
	LastDispatch uint32
}

// Changes holds the per-field change flags of one gated cycle.
type Changes struct {
	Position    bool
	BrightnessA bool
	BrightnessB bool
}

// Any reports whether any field changed.
func (c Changes) Any() bool {
	return c.Position || c.BrightnessA || c.BrightnessB
}

// HasChanged is plain equality; there is no dead band.
func HasChanged(current, previous int) bool {
	return current != previous
}

// Current returns the current values as a message.
func (s *State) Current() Message {
	return Message{Position: s.Position, BrightnessA: s.BrightnessA, BrightnessB: s.BrightnessB}
}

// Detect compares every field with its previous value.
func (s *State) Detect() Changes {
	return Changes{
		Position:    HasChanged(s.Position, s.PositionPrev),
		BrightnessA: HasChanged(s.BrightnessA, s.BrightnessAPrev),
		BrightnessB: HasChanged(s.BrightnessB, s.BrightnessBPrev),
	}
}

// Commit makes the current values the previous ones.
func (s *State) Commit() {
	s.PositionPrev = s.Position
	s.BrightnessAPrev = s.BrightnessA
	s.BrightnessBPrev = s.BrightnessB
}
