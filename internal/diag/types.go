package diag

// Event type constants for kelindar/event.
const (
	TypeLinkReady uint32 = iota + 1
	TypeMessageParsed
	TypeStripRendered
	TypeLampWritten
	TypeActuatorFailed
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// LinkReady is published once after the startup wait.
type LinkReady struct {
	Ready    bool   `json:"ready"`
	WaitedMS uint32 `json:"waited_ms"`
}

func (e LinkReady) Type() uint32 { return TypeLinkReady }

// MessageParsed is published for every received line. On a malformed line
// the values are what the state holds after the partial scan.
type MessageParsed struct {
	Line        string `json:"line"`
	Position    int    `json:"position"`
	BrightnessA int    `json:"brightness_a"`
	BrightnessB int    `json:"brightness_b"`
	Malformed   bool   `json:"malformed"`
	Error       string `json:"error,omitempty"`
}

func (e MessageParsed) Type() uint32 { return TypeMessageParsed }

// StripRendered is published after a frame was flushed to the strip.
type StripRendered struct {
	Position    int `json:"position"`
	Primary     int `json:"primary"`
	Mirrored    int `json:"mirrored"`
	BrightnessA int `json:"brightness_a"`
	BrightnessB int `json:"brightness_b"`
}

func (e StripRendered) Type() uint32 { return TypeStripRendered }

// LampWritten is published after a lamp channel was written.
type LampWritten struct {
	Lamp    string `json:"lamp"`
	Channel int    `json:"channel"`
	Level   int    `json:"level"`
}

func (e LampWritten) Type() uint32 { return TypeLampWritten }

// ActuatorFailed reports a driver error. The loop does not retry.
type ActuatorFailed struct {
	Actuator string `json:"actuator"`
	Error    string `json:"error"`
}

func (e ActuatorFailed) Type() uint32 { return TypeActuatorFailed }
