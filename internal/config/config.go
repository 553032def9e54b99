package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
)

// Config структура конфигурации.
type Config struct {
	Logger  LogConf     // Logger - конфигурация регистратора.
	Link    LinkConf    // Link - последовательный канал от контроллера движения.
	Motion  MotionConf  // Motion - параметры хода.
	Loop    LoopConf    // Loop - такт цикла обновления.
	Strip   StripConf   // Strip - адресная светодиодная лента.
	Lamps   LampsConf   // Lamps - галогенные лампы на шине DMX.
	MQTT    MQTTConf    // MQTT - зеркалирование диагностики.
	Metrics MetricsConf // Metrics - экспорт метрик Prometheus.
}

// LogConf структура конфигурации.
type LogConf struct {
	Level string `toml:"log-level"` // Level - уровень логирования.
}

// LinkConf описывает последовательный порт.
type LinkConf struct {
	Device         string `toml:"device"`           // Device - путь к порту, например /dev/ttyUSB0.
	Baud           int    `toml:"baud"`             // Baud - скорость порта.
	ReadTimeoutMS  int    `toml:"read-timeout-ms"`  // ReadTimeoutMS - таймаут чтения порта.
	ReadyTimeoutMS int    `toml:"ready-timeout-ms"` // ReadyTimeoutMS - сколько ждать порт при старте.
	ReadChunk      int    `toml:"read-chunk"`       // ReadChunk - размер буфера чтения.
}

// MotionConf describes the travel reported by the motion controller.
type MotionConf struct {
	Top int `toml:"top"` // Top - максимальная позиция.
}

// LoopConf задаёт такт цикла.
type LoopConf struct {
	IntervalMS int `toml:"interval-ms"` // IntervalMS - минимальный интервал между обновлениями исполнительных устройств.
	TickMS     int `toml:"tick-ms"`     // TickMS - период опроса канала.
}

// StripConf описывает ленту.
type StripConf struct {
	Driver             string `toml:"driver"`               // Driver - serial, ws2812 или log.
	NumLeds            int    `toml:"num-leds"`             // NumLeds - число светодиодов.
	Device             string `toml:"device"`               // Device - порт Adalight-контроллера (driver = serial).
	Baud               int    `toml:"baud"`                 // Baud - скорость порта ленты.
	Pin                int    `toml:"pin"`                  // Pin - вывод данных ленты (driver = ws2812).
	Tint               string `toml:"tint"`                 // Tint - цвет, который масштабируется яркостью.
	RedrawOnBrightness bool   `toml:"redraw-on-brightness"` // RedrawOnBrightness - перерисовывать ленту при смене только яркости.
}

// LampsConf описывает шину DMX.
type LampsConf struct {
	Driver       string `toml:"driver"`        // Driver - artnet или log.
	ChannelA     int    `toml:"channel-a"`     // ChannelA - канал лампы A.
	ChannelB     int    `toml:"channel-b"`     // ChannelB - канал лампы B.
	MaxChannel   int    `toml:"max-channel"`   // MaxChannel - число каналов в системе.
	Universe     uint16 `toml:"universe"`      // Universe: старший байт - SubUni, младший байт - Net.
	AddressRange string `toml:"address-range"` // AddressRange - сеть Art-Net в нотации CIDR.
	MaxFPS       int    `toml:"max-fps"`       // MaxFPS - ограничение частоты отправки Art-Net.
}

// MQTTConf структура конфигурации.
type MQTTConf struct {
	Enabled  bool   `toml:"enabled"`  // Enabled - публиковать диагностику в MQTT.
	ClientID string `toml:"clientID"` // ClientID - имя клиента.
	Host     string `toml:"server"`   // Host - адрес MQTT сервера.
	Port     string `toml:"port"`     // Port - порт MQTT сервера.
	User     string `toml:"user"`     // User - логин для подключения к MQTT серверу.
	Password string `toml:"password"` // Password - пароль для подключения к MQTT серверу.
	Qos      byte   `toml:"qos"`      // Qos - качество обслуживания.
	Topic    string `toml:"topic"`    // Topic - корневой топик диагностики.
}

// MetricsConf структура конфигурации.
type MetricsConf struct {
	Listen string `toml:"listen"` // Listen - адрес HTTP для /metrics, пусто - выключено.
}

// Default returns the configuration of the final agent firmware.
func Default() Config {
	return Config{
		Logger: LogConf{Level: "info"},
		Link: LinkConf{
			Device:         "/dev/ttyUSB0",
			Baud:           28800,
			ReadTimeoutMS:  100,
			ReadyTimeoutMS: 5000,
			ReadChunk:      64,
		},
		Motion: MotionConf{Top: 7858},
		Loop:   LoopConf{IntervalMS: 75, TickMS: 1},
		Strip: StripConf{
			Driver:  "log",
			NumLeds: 144,
			Baud:    115200,
			Pin:     6,
			Tint:    "#FFFFFF",
		},
		Lamps: LampsConf{
			Driver:       "log",
			ChannelA:     2,
			ChannelB:     3,
			MaxChannel:   4,
			AddressRange: "192.168.6.0/24",
			MaxFPS:       40,
		},
		MQTT: MQTTConf{
			ClientID: "penumbra-agent",
			Port:     "1883",
			Topic:    "penumbra/agent",
		},
	}
}

// NewConfig конструктор.
func NewConfig(path string) (*Config, error) {
	// default values
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return &cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return &cfg, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	var errs []error

	if c.Motion.Top <= 0 {
		errs = append(errs, fmt.Errorf("motion.top must be positive, got %d", c.Motion.Top))
	}
	if c.Loop.IntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("loop.interval-ms must be positive, got %d", c.Loop.IntervalMS))
	}
	if c.Loop.TickMS < 1 {
		errs = append(errs, fmt.Errorf("loop.tick-ms must be at least 1, got %d", c.Loop.TickMS))
	}
	if c.Link.ReadChunk <= 0 {
		errs = append(errs, fmt.Errorf("link.read-chunk must be positive, got %d", c.Link.ReadChunk))
	}
	if c.Strip.NumLeds < 2 {
		errs = append(errs, fmt.Errorf("strip.num-leds must be at least 2, got %d", c.Strip.NumLeds))
	}
	switch c.Strip.Driver {
	case "serial", "ws2812", "log":
	default:
		errs = append(errs, fmt.Errorf("unknown strip.driver %q", c.Strip.Driver))
	}
	if _, err := colorful.Hex(c.Strip.Tint); err != nil {
		errs = append(errs, fmt.Errorf("strip.tint %q: %w", c.Strip.Tint, err))
	}
	switch c.Lamps.Driver {
	case "artnet", "log":
	default:
		errs = append(errs, fmt.Errorf("unknown lamps.driver %q", c.Lamps.Driver))
	}
	if c.Lamps.MaxChannel < 1 || c.Lamps.MaxChannel > 512 {
		errs = append(errs, fmt.Errorf("lamps.max-channel must be in [1,512], got %d", c.Lamps.MaxChannel))
	}
	for name, ch := range map[string]int{"channel-a": c.Lamps.ChannelA, "channel-b": c.Lamps.ChannelB} {
		if ch < 1 || ch > c.Lamps.MaxChannel {
			errs = append(errs, fmt.Errorf("lamps.%s must be in [1,%d], got %d", name, c.Lamps.MaxChannel, ch))
		}
	}
	if c.Lamps.ChannelA == c.Lamps.ChannelB {
		errs = append(errs, fmt.Errorf("lamps.channel-a and lamps.channel-b are both %d", c.Lamps.ChannelA))
	}

	return errors.Join(errs...)
}
