// Package metrics provides Prometheus metrics for the update loop.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"penumbra-agent/internal/diag"
	"penumbra-agent/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	linesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "penumbra",
		Subsystem: "link",
		Name:      "lines_total",
		Help:      "Lines received from the motion controller",
	})

	linesMalformed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "penumbra",
		Subsystem: "link",
		Name:      "malformed_lines_total",
		Help:      "Lines that did not scan into three integers",
	})

	linkReady = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "penumbra",
		Subsystem: "link",
		Name:      "ready",
		Help:      "1 when the link opened within the startup timeout",
	})

	position = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "penumbra",
		Subsystem: "state",
		Name:      "position",
		Help:      "Last rendered machine position",
	})

	stripRenders = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "penumbra",
		Subsystem: "strip",
		Name:      "renders_total",
		Help:      "Frames flushed to the light strip",
	})

	lampLevel = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "penumbra",
		Subsystem: "lamps",
		Name:      "level",
		Help:      "Last level written per DMX channel",
	}, []string{"channel"})

	lampWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "penumbra",
		Subsystem: "lamps",
		Name:      "writes_total",
		Help:      "DMX channel writes",
	}, []string{"channel"})

	actuatorErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "penumbra",
		Subsystem: "actuator",
		Name:      "errors_total",
		Help:      "Driver errors per actuator",
	}, []string{"actuator"})
)

// Record updates the metrics for one event.
func Record(ev diag.Event) {
	switch e := ev.(type) {
	case diag.LinkReady:
		if e.Ready {
			linkReady.Set(1)
		} else {
			linkReady.Set(0)
		}
	case diag.MessageParsed:
		linesReceived.Inc()
		if e.Malformed {
			linesMalformed.Inc()
		}
	case diag.StripRendered:
		stripRenders.Inc()
		position.Set(float64(e.Position))
	case diag.LampWritten:
		ch := strconv.Itoa(e.Channel)
		lampWrites.WithLabelValues(ch).Inc()
		lampLevel.WithLabelValues(ch).Set(float64(e.Level))
	case diag.ActuatorFailed:
		actuatorErrors.WithLabelValues(e.Actuator).Inc()
	}
}

// Attach records every event of b until the returned function is called.
func Attach(b *diag.Bus) func() {
	return b.SubscribeAll(Record)
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, log logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.With(logger.Fields{"module": "metrics"}).Infof("serving metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.With(logger.Fields{"module": "metrics"}).Errorf("metrics server: %v", err)
	}
}
