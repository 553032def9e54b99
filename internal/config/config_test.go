package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agent.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if cfg.Motion.Top != 7858 || cfg.Strip.NumLeds != 144 || cfg.Loop.IntervalMS != 75 {
		t.Errorf("defaults = top %d, leds %d, interval %d", cfg.Motion.Top, cfg.Strip.NumLeds, cfg.Loop.IntervalMS)
	}
	if cfg.Lamps.ChannelA != 2 || cfg.Lamps.ChannelB != 3 || cfg.Lamps.MaxChannel != 4 {
		t.Errorf("lamp defaults = %+v", cfg.Lamps)
	}
	if cfg.Link.Baud != 28800 || cfg.Link.ReadyTimeoutMS != 5000 {
		t.Errorf("link defaults = %+v", cfg.Link)
	}
	if cfg.Strip.RedrawOnBrightness {
		t.Error("redraw-on-brightness defaults to true")
	}
}

func TestNewConfigOverrides(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, `
[logger]
log-level = "debug"

[motion]
top = 11732

[lamps]
channel-a = 1
channel-b = 2

[strip]
driver = "serial"
redraw-on-brightness = true

[mqtt]
enabled = true
server = "broker"
qos = 1
`))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if cfg.Logger.Level != "debug" || cfg.Motion.Top != 11732 {
		t.Errorf("overrides not applied: %+v %+v", cfg.Logger, cfg.Motion)
	}
	if cfg.Lamps.ChannelA != 1 || cfg.Lamps.ChannelB != 2 || cfg.Lamps.MaxChannel != 4 {
		t.Errorf("lamps = %+v", cfg.Lamps)
	}
	if cfg.Strip.Driver != "serial" || !cfg.Strip.RedrawOnBrightness || cfg.Strip.NumLeds != 144 {
		t.Errorf("strip = %+v", cfg.Strip)
	}
	if !cfg.MQTT.Enabled || cfg.MQTT.Host != "broker" || cfg.MQTT.Qos != 1 || cfg.MQTT.Port != "1883" {
		t.Errorf("mqtt = %+v", cfg.MQTT)
	}
}

func TestNewConfigMissingFile(t *testing.T) {
	if _, err := NewConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("NewConfig() error = nil, want error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"zero top", func(c *Config) { c.Motion.Top = 0 }, "motion.top"},
		{"zero interval", func(c *Config) { c.Loop.IntervalMS = 0 }, "loop.interval-ms"},
		{"zero tick", func(c *Config) { c.Loop.TickMS = 0 }, "loop.tick-ms"},
		{"one led", func(c *Config) { c.Strip.NumLeds = 1 }, "strip.num-leds"},
		{"strip driver", func(c *Config) { c.Strip.Driver = "opc" }, "strip.driver"},
		{"tint", func(c *Config) { c.Strip.Tint = "white" }, "strip.tint"},
		{"lamp driver", func(c *Config) { c.Lamps.Driver = "sacn" }, "lamps.driver"},
		{"channel above max", func(c *Config) { c.Lamps.ChannelB = 5 }, "lamps.channel-b"},
		{"channel zero", func(c *Config) { c.Lamps.ChannelA = 0 }, "lamps.channel-a"},
		{"same channel", func(c *Config) { c.Lamps.ChannelB = c.Lamps.ChannelA }, "both"},
		{"max channel", func(c *Config) { c.Lamps.MaxChannel = 600 }, "lamps.max-channel"},
		{"read chunk", func(c *Config) { c.Link.ReadChunk = 0 }, "link.read-chunk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.want)
			}
		})
	}

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults error = %v", err)
	}
}
