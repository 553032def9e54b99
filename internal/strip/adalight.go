package strip

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// AdalightDriver writes frames in the Adalight serial format: "Ada", the
// pixel count minus one as two bytes, a checksum, then RGB triples.
type AdalightDriver struct {
	w   io.Writer
	buf []byte
}

// NewAdalightDriver writes frames to w.
func NewAdalightDriver(w io.Writer) *AdalightDriver {
	return &AdalightDriver{w: w}
}

// OpenAdalight opens the strip controller's serial port.
func OpenAdalight(device string, baud int) (*AdalightDriver, io.Closer, error) {
	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud, ReadTimeout: 100 * time.Millisecond})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open strip port %s: %w", device, err)
	}
	return NewAdalightDriver(port), port, nil
}

func (d *AdalightDriver) Show(f Frame) error {
	if len(f) == 0 {
		return nil
	}
	n := len(f) - 1
	hi, lo := byte(n>>8), byte(n)

	d.buf = append(d.buf[:0], 'A', 'd', 'a', hi, lo, hi^lo^0x55)
	for _, c := range f {
		d.buf = append(d.buf, c.R, c.G, c.B)
	}

	if _, err := d.w.Write(d.buf); err != nil {
		return fmt.Errorf("adalight write: %w", err)
	}
	return nil
}
