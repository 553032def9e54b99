package link

import (
	"context"
	"fmt"
	"io"
	"time"

	"penumbra-agent/internal/clock"
	"penumbra-agent/internal/config"
	"penumbra-agent/internal/logger"

	"github.com/tarm/serial"
)

// OpenFunc opens the transport; it is swapped out in tests.
type OpenFunc func(cfg config.LinkConf) (io.ReadCloser, error)

// OpenSerial opens the port described by cfg with tarm/serial.
func OpenSerial(cfg config.LinkConf) (io.ReadCloser, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeoutMS) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}
	return port, nil
}

// Connect keeps trying to open the link until it succeeds or the ready
// timeout elapses. On timeout it logs and returns a nil port: the loop runs
// without input rather than not at all.
func Connect(ctx context.Context, log logger.Logger, clk clock.Clock, cfg config.LinkConf, open OpenFunc) (io.ReadCloser, bool) {
	l := log.With(logger.Fields{"module": "link", "device": cfg.Device})

	var (
		port    io.ReadCloser
		lastErr error
	)
	ready := WaitReady(ctx, clk, time.Duration(cfg.ReadyTimeoutMS)*time.Millisecond, 100*time.Millisecond, func() bool {
		port, lastErr = open(cfg)
		return lastErr == nil
	})
	if !ready {
		l.Warnf("link not ready after %d ms, continuing without input: %v", cfg.ReadyTimeoutMS, lastErr)
		return nil, false
	}

	l.Infof("link open at %d baud", cfg.Baud)
	return port, true
}
