package link

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"penumbra-agent/internal/clock"
	"penumbra-agent/internal/config"
	"penumbra-agent/internal/logger"
)

func TestLineReaderAssemblesAcrossChunks(t *testing.T) {
	src := make(chan []byte, 8)
	r := NewLineReader(src)

	if _, ok := r.PollLine(); ok {
		t.Fatal("PollLine() on empty source returned a line")
	}

	src <- []byte("3929,12")
	if _, ok := r.PollLine(); ok {
		t.Fatal("PollLine() returned a partial line")
	}
	if r.buf.Len() != 7 {
		t.Errorf("buffered %d bytes, want 7", r.buf.Len())
	}

	src <- []byte("8,64\n0,0,")
	line, ok := r.PollLine()
	if !ok || line != "3929,128,64" {
		t.Fatalf("PollLine() = %q, %v, want %q, true", line, ok, "3929,128,64")
	}
	if _, ok := r.PollLine(); ok {
		t.Fatal("PollLine() returned the trailing partial line")
	}

	src <- []byte("0\n1,2,3\n")
	for _, want := range []string{"0,0,0", "1,2,3"} {
		line, ok := r.PollLine()
		if !ok || line != want {
			t.Fatalf("PollLine() = %q, %v, want %q", line, ok, want)
		}
	}
}

func TestLineReaderClosedSource(t *testing.T) {
	src := make(chan []byte, 1)
	src <- []byte("1,2,3\n")
	close(src)

	r := NewLineReader(src)
	if line, ok := r.PollLine(); !ok || line != "1,2,3" {
		t.Fatalf("PollLine() = %q, %v", line, ok)
	}
	for i := 0; i < 3; i++ {
		if _, ok := r.PollLine(); ok {
			t.Fatal("PollLine() on closed source returned a line")
		}
	}
}

func TestLineReaderNilSource(t *testing.T) {
	r := NewLineReader(nil)
	if _, ok := r.PollLine(); ok {
		t.Fatal("PollLine() on nil source returned a line")
	}
}

func TestPumpFeedsLineReader(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pr, pw := io.Pipe()
	p := NewPump(logger.Discard(), pr, 4)
	go p.Run(ctx)

	go func() {
		_, _ = pw.Write([]byte("100,10,20\n"))
	}()

	r := NewLineReader(p.Chunks())
	deadline := time.After(2 * time.Second)
	for {
		if line, ok := r.PollLine(); ok {
			if line != "100,10,20" {
				t.Fatalf("PollLine() = %q", line)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("no line from pump")
		case <-time.After(time.Millisecond):
		}
	}

	_ = pw.CloseWithError(errors.New("unplugged"))
	select {
	case _, ok := <-p.Chunks():
		if ok {
			t.Fatal("unexpected chunk after reader failure")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pump did not stop after reader failure")
	}
}

func TestWaitReady(t *testing.T) {
	t.Run("ready on third probe", func(t *testing.T) {
		clk := clock.NewFake(0)
		calls := 0
		ok := WaitReady(context.Background(), clk, 5*time.Second, 0, func() bool {
			calls++
			clk.Advance(100)
			return calls == 3
		})
		if !ok || calls != 3 {
			t.Errorf("WaitReady() = %v after %d calls, want true after 3", ok, calls)
		}
	})

	t.Run("gives up after timeout", func(t *testing.T) {
		clk := clock.NewFake(0)
		calls := 0
		ok := WaitReady(context.Background(), clk, 500*time.Millisecond, 0, func() bool {
			calls++
			clk.Advance(100)
			return false
		})
		if ok {
			t.Fatal("WaitReady() = true, want false")
		}
		if calls != 5 {
			t.Errorf("WaitReady() probed %d times, want 5", calls)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ok := WaitReady(ctx, clock.NewFake(0), time.Hour, time.Hour, func() bool { return false })
		if ok {
			t.Error("WaitReady() = true on cancelled context")
		}
	})
}

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

func TestConnect(t *testing.T) {
	cfg := config.Default().Link
	cfg.ReadyTimeoutMS = 0

	port, ok := Connect(context.Background(), logger.Discard(), clock.NewFake(0), cfg, func(config.LinkConf) (io.ReadCloser, error) {
		return nil, errors.New("no such device")
	})
	if ok || port != nil {
		t.Errorf("Connect() = %v, %v, want nil, false", port, ok)
	}

	port, ok = Connect(context.Background(), logger.Discard(), clock.NewFake(0), cfg, func(config.LinkConf) (io.ReadCloser, error) {
		return nopCloser{strings.NewReader("")}, nil
	})
	if !ok || port == nil {
		t.Errorf("Connect() = %v, %v, want port, true", port, ok)
	}
}
