package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"penumbra-agent/internal/agent"
	"penumbra-agent/internal/clientmqtt"
	"penumbra-agent/internal/clock"
	"penumbra-agent/internal/config"
	"penumbra-agent/internal/diag"
	"penumbra-agent/internal/lampbus"
	"penumbra-agent/internal/link"
	"penumbra-agent/internal/logger"
	"penumbra-agent/internal/metrics"
	"penumbra-agent/internal/strip"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "penumbra-agent",
		Short: "Mirror the motion controller state onto the light strip and halogen lamps",
		Long: `Reads "position,brightnessA,brightnessB" lines from the motion controller over a serial link ` +
			`and drives the addressable strip and the DMX halogen dimmers at a fixed update interval.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(configFile)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "configs/agent.toml", "Path to configuration file")

	return cmd
}

func run(configFile string) error {
	cfg, err := config.NewConfig(configFile)
	if err != nil {
		fmt.Printf("configuration file read error: %v\n", err)
		return err
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Printf("failed to create a logger: %v\n", err)
		return err
	}

	log.With(logger.Fields{"module": "logger"}).Debug("newLogger created ok")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	clk := clock.NewSystem()

	bus := diag.NewBus()
	defer diag.LogTo(bus, log)()
	defer metrics.Attach(bus)()

	if cfg.Metrics.Listen != "" {
		go metrics.Serve(ctx, log, cfg.Metrics.Listen)
	}

	if cfg.MQTT.Enabled {
		client := clientmqtt.NewClient(log, ConvertConfigClientMQTT(cfg.MQTT))
		if err := client.Start(ctx); err != nil {
			log.With(logger.Fields{"module": "mqtt"}).Errorf("failed to start MQTT service, diagnostics stay local: %v", err)
		} else {
			defer func() {
				if err := client.Stop(); err != nil {
					log.Error("failed to stop MQTT service:", err.Error())
				}
			}()
			defer client.Attach(bus)()
		}
	}

	stripDriver, closeStrip, err := newStripDriver(log, cfg.Strip)
	if err != nil {
		log.With(logger.Fields{"module": "strip"}).Errorf("failed to create strip driver: %v", err)
		return err
	}
	defer closeStrip()

	palette, err := strip.NewPalette(cfg.Strip.Tint)
	if err != nil {
		return err
	}

	lampDriver, stopLamps, err := newLampDriver(ctx, log, cfg.Lamps)
	if err != nil {
		log.With(logger.Fields{"module": "art-net"}).Errorf("error while creating the lamp bus. %v", err)
		return err
	}
	defer stopLamps()

	start := clk.Millis()
	port, ready := link.Connect(ctx, log, clk, cfg.Link, link.OpenSerial)
	bus.Publish(diag.LinkReady{Ready: ready, WaitedMS: clock.Since(clk, start)})

	var chunks <-chan []byte
	if ready {
		defer port.Close()
		pump := link.NewPump(log, port, cfg.Link.ReadChunk)
		go pump.Run(ctx)
		chunks = pump.Chunks()
	}

	a := agent.New(agent.Config{
		Top:                cfg.Motion.Top,
		NumLeds:            cfg.Strip.NumLeds,
		Interval:           time.Duration(cfg.Loop.IntervalMS) * time.Millisecond,
		Tick:               time.Duration(cfg.Loop.TickMS) * time.Millisecond,
		ChannelA:           cfg.Lamps.ChannelA,
		ChannelB:           cfg.Lamps.ChannelB,
		RedrawOnBrightness: cfg.Strip.RedrawOnBrightness,
	},
		link.NewLineReader(chunks),
		strip.NewActuator(cfg.Strip.NumLeds, stripDriver, palette),
		lampbus.NewActuator(cfg.Lamps.MaxChannel, lampDriver),
		clk, bus, log,
	)

	_ = a.Run(ctx)

	log.Info("shutdown complete")
	return nil
}

func newStripDriver(log logger.Logger, cfg config.StripConf) (strip.Driver, func(), error) {
	switch cfg.Driver {
	case "serial":
		d, port, err := strip.OpenAdalight(cfg.Device, cfg.Baud)
		if err != nil {
			return nil, nil, err
		}
		return d, func() { closeQuietly(port) }, nil
	case "ws2812":
		d, err := strip.NewWS2812(cfg.Pin)
		if err != nil {
			return nil, nil, err
		}
		return d, func() {}, nil
	default:
		return strip.NewLogDriver(log), func() {}, nil
	}
}

func newLampDriver(ctx context.Context, log logger.Logger, cfg config.LampsConf) (lampbus.Driver, func(), error) {
	switch cfg.Driver {
	case "artnet":
		d, err := lampbus.NewArtNetDriver(log, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := d.Start(ctx); err != nil {
			return nil, nil, err
		}
		log.With(logger.Fields{"module": "art-net"}).Debug("NewArtNetDriver created ok")
		return d, d.Stop, nil
	default:
		return lampbus.NewLogDriver(log, cfg.MaxChannel), func() {}, nil
	}
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}

// ConvertConfigClientMQTT преобразует структуры.
func ConvertConfigClientMQTT(cfg config.MQTTConf) clientmqtt.MQTTConf {
	return clientmqtt.MQTTConf{
		ClientID: cfg.ClientID,
		Schema:   "tcp",
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		Qos:      cfg.Qos,
		Topic:    cfg.Topic,
	}
}
