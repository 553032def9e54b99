// Package link turns the byte stream from the motion controller into lines.
package link

import (
	"bytes"
)

// LineReader assembles newline terminated lines from chunks delivered by a
// Pump. PollLine never blocks; partial lines are kept across calls.
type LineReader struct {
	src <-chan []byte
	buf bytes.Buffer
}

// NewLineReader reads chunks from src. A nil src never yields a line.
func NewLineReader(src <-chan []byte) *LineReader {
	return &LineReader{src: src}
}

// PollLine returns the next complete line without its '\n', or false when no
// full line has arrived yet.
func (r *LineReader) PollLine() (string, bool) {
	r.drain()

	data := r.buf.Bytes()
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return "", false
	}
	line := string(data[:i])
	r.buf.Next(i + 1)
	return line, true
}

func (r *LineReader) drain() {
	for {
		select {
		case chunk, ok := <-r.src:
			if !ok {
				r.src = nil
				return
			}
			r.buf.Write(chunk)
		default:
			return
		}
	}
}
