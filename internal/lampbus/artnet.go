package lampbus

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"penumbra-agent/internal/config"
	"penumbra-agent/internal/logger"

	"github.com/Haba1234/go-artnet"
)

// ArtNetDriver is transport for the ArtNet protocol (DMX over UDP/IP). The
// DMX node on the other side drives the halogen dimmers.
type ArtNetDriver struct {
	logger  logger.Logger
	sender  *artnet.Controller
	address artnet.Address
}

// NewArtNetDriver finds the Art-Net interface and prepares a controller.
func NewArtNetDriver(log logger.Logger, cfg config.LampsConf) (*ArtNetDriver, error) {
	ip, err := FindArtNetIP(cfg.AddressRange)
	if err != nil {
		return nil, fmt.Errorf("failed to find the art-net IP: %w", err)
	}

	if len(ip) == 0 {
		return nil, errors.New("failed to find the art-net IP: No interface found")
	}

	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve hostname: %w", err)
	}

	host = strings.ToLower(strings.Split(host, ".")[0])
	log.With(logger.Fields{"module": "art-net"}).Infof("Using ArtNet IP %s and hostname %s", ip.String(), host)

	senderLogger := artnet.NewDefaultLogger("info")

	return &ArtNetDriver{
		logger:  log,
		sender:  artnet.NewController(host, ip, senderLogger, artnet.MaxFPS(cfg.MaxFPS)),
		address: universeToAddress(cfg.Universe),
	}, nil
}

// Start the ArtNet controller and log discovered nodes until ctx is done.
func (c *ArtNetDriver) Start(ctx context.Context) error {
	if err := c.sender.Start(); err != nil {
		return fmt.Errorf("failed to start Controller: %w", err)
	}
	go c.debugDevices(ctx)
	return nil
}

// Stop the ArtNet controller.
func (c *ArtNetDriver) Stop() {
	c.sender.Stop()
}

func (c *ArtNetDriver) Send(dmx [UniverseSize]byte) error {
	c.logger.With(logger.Fields{"module": "art-net"}).Debugf("DMX. send to %s", c.address.String())
	c.sender.SendDMXToAddress(dmx, c.address)
	return nil
}

// universeToAddress converts a dmx universe to art-net address
// universe: старший байт - SubUni, младший байт - Net.
func universeToAddress(universe uint16) artnet.Address {
	v := make([]uint8, 2)
	binary.BigEndian.PutUint16(v, universe)

	return artnet.Address{
		Net:    v[0],
		SubUni: v[1],
	}
}

// nodeToString returns a string representation of the given Node.
func nodeToString(n *artnet.ControlledNode) string {
	var outputs []string
	for _, p := range n.Node.OutputPorts {
		outputs = append(outputs, fmt.Sprintf("%s: %s", p.Address.String(), p.Type.String()))
	}

	return fmt.Sprintf(
		"IP=%s name=%q manufacturer=%q outputs=%q",
		n.UDPAddress.String(), n.Node.Name, n.Node.Manufacturer, strings.Join(outputs, "; "),
	)
}

func (c *ArtNetDriver) debugDevices(ctx context.Context) {
	t := time.NewTicker(30 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			nodes := make([]string, 0, len(c.sender.Nodes))
			for _, n := range c.sender.Nodes {
				nodes = append(nodes, nodeToString(n))
			}
			c.logger.With(logger.Fields{"module": "art-net"}).Debugf("Currently %d devices are registered: %v", len(nodes), nodes)
		}
	}
}
