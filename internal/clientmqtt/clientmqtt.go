// Package clientmqtt mirrors the agent's diagnostic events to an MQTT broker.
package clientmqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"penumbra-agent/internal/diag"
	"penumbra-agent/internal/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
)

// connectWait bounds how long Start waits for the broker before leaving the
// connection to paho's retry loop.
const connectWait = 2 * time.Second

// ClientMQTT структура клиента MQTT.
type ClientMQTT struct {
	ctx       context.Context
	log       logger.Logger
	cfgClient MQTTConf
	client    mqtt.Client
	pub       publisher
	opts      *mqtt.ClientOptions
	wait      time.Duration
}

// NewClient конструктор.
func NewClient(log logger.Logger, cfgClient MQTTConf) *ClientMQTT {
	return &ClientMQTT{
		log:       log,
		cfgClient: cfgClient,
		wait:      connectWait,
	}
}

// Start connects to the broker. It returns once the broker answered or the
// connect wait elapsed; an unreachable broker is retried in the background and
// events published meanwhile are queued by paho.
func (c *ClientMQTT) Start(ctx context.Context) error {
	entry := c.log.With(logger.Fields{"module": "mqtt"}).Entry
	mqtt.ERROR = levelLogger{entry: entry, level: logrus.ErrorLevel}
	mqtt.CRITICAL = levelLogger{entry: entry, level: logrus.ErrorLevel}
	mqtt.WARN = levelLogger{entry: entry, level: logrus.WarnLevel}

	c.ctx = ctx

	c.opts = mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("%s://%s:%s", c.cfgClient.Schema, c.cfgClient.Host, c.cfgClient.Port)).
		SetUsername(c.cfgClient.User).
		SetPassword(c.cfgClient.Password).
		SetOnConnectHandler(c.connectHandler).
		SetConnectionLostHandler(c.connectLostHandler).
		SetClientID(c.cfgClient.ClientID).
		SetOrderMatters(false).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetMaxReconnectInterval(5 * time.Second).
		SetKeepAlive(30 * time.Second)

	c.client = mqtt.NewClient(c.opts)
	c.pub = c.client

	token := c.client.Connect()
	select {
	case <-token.Done():
		if token.Error() != nil {
			return token.Error()
		}
	case <-time.After(c.wait):
		c.log.With(logger.Fields{"module": "mqtt"}).Warnf("broker %s:%s not reachable yet, retrying in background", c.cfgClient.Host, c.cfgClient.Port)
		return nil
	case <-c.ctx.Done():
		return errors.New("context canceled")
	}

	c.log.With(logger.Fields{"module": "mqtt"}).Infof("Status: %v", c.client.IsConnected())
	return nil
}

func (c *ClientMQTT) Stop() error {
	if c.client != nil && c.client.IsConnected() {
		c.client.Disconnect(500)
	}
	return nil
}

// Attach publishes every event of b until the returned function is called.
func (c *ClientMQTT) Attach(b *diag.Bus) func() {
	return b.SubscribeAll(c.publishEvent)
}

func (c *ClientMQTT) connectHandler(_ mqtt.Client) {
	c.log.With(logger.Fields{"module": "mqtt"}).Info("client connected to server")
}

func (c *ClientMQTT) connectLostHandler(_ mqtt.Client, err error) {
	c.log.With(logger.Fields{"module": "mqtt"}).Errorf("server connect lost: %v", err)
}

func (c *ClientMQTT) publishEvent(ev diag.Event) {
	if c.pub == nil {
		return
	}
	topic := fmt.Sprintf("%s/%s", c.cfgClient.Topic, eventName(ev))
	msg, err := json.Marshal(ev)
	if err != nil {
		c.log.With(logger.Fields{"module": "mqtt"}).Errorf("event could not be encoded (%T): %v", ev, err)
		return
	}

	token := c.pub.Publish(topic, c.cfgClient.Qos, false, msg)
	go func() {
		select {
		case <-c.ctx.Done():
			return
		case <-token.Done():
			if token.Error() != nil {
				c.log.With(logger.Fields{"module": "mqtt"}).Errorf("error publish topic %s. %v", topic, token.Error())
			}
		}
	}()
}

func eventName(ev diag.Event) string {
	switch ev.(type) {
	case diag.LinkReady:
		return "link"
	case diag.MessageParsed:
		return "message"
	case diag.StripRendered:
		return "strip"
	case diag.LampWritten:
		return "lamp"
	case diag.ActuatorFailed:
		return "error"
	default:
		return "event"
	}
}

// levelLogger routes paho's internal loggers into logrus at a fixed level.
type levelLogger struct {
	entry *logrus.Entry
	level logrus.Level
}

func (l levelLogger) Println(v ...interface{}) {
	l.entry.Logln(l.level, v...)
}

func (l levelLogger) Printf(format string, v ...interface{}) {
	l.entry.Logf(l.level, format, v...)
}
