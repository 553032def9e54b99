package link

import (
	"context"
	"errors"
	"io"
	"time"

	"penumbra-agent/internal/logger"
)

const idleWait = 5 * time.Millisecond

// Pump copies bytes from a blocking reader, usually a serial port, into a
// channel the loop can drain without blocking.
type Pump struct {
	log  logger.Logger
	r    io.Reader
	size int
	out  chan []byte
}

// NewPump reads up to size bytes per call from r.
func NewPump(log logger.Logger, r io.Reader, size int) *Pump {
	return &Pump{
		log:  log,
		r:    r,
		size: size,
		out:  make(chan []byte, 64),
	}
}

// Chunks is the channel to hand to NewLineReader. It is closed when Run returns.
func (p *Pump) Chunks() <-chan []byte {
	return p.out
}

// Run reads until ctx is done or the reader fails. Read timeouts that come back
// as empty reads or io.EOF are ignored.
func (p *Pump) Run(ctx context.Context) {
	defer close(p.out)

	buf := make([]byte, p.size)
	for {
		if ctx.Err() != nil {
			return
		}
		n, err := p.r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case p.out <- chunk:
			case <-ctx.Done():
				return
			}
		}
		if err != nil && !errors.Is(err, io.EOF) {
			p.log.With(logger.Fields{"module": "link"}).Errorf("read failed, link stopped: %v", err)
			return
		}
		if n == 0 {
			select {
			case <-time.After(idleWait):
			case <-ctx.Done():
				return
			}
		}
	}
}
