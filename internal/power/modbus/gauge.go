// internal/power/modbus/gauge.go
package modbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"
)

// registerReader is the slice of modbus.Client the gauge needs (FC 4).
type registerReader interface {
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
}

// Config is minimal gauge transport config.
type Config struct {
	Endpoint string
	UnitID   uint8
	Address  uint16 // input register holding battery millivolts
	Timeout  time.Duration
}

// Gauge implements power.VoltageReader against a Modbus TCP battery gauge.
// One connection per read: the device sleeps between cycles, so nothing is kept open.
type Gauge struct {
	cfg  Config
	dial func() (registerReader, func() error, error)
}

// New validates config. It does not connect.
func New(cfg Config) (*Gauge, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("battery gauge: endpoint required")
	}
	g := &Gauge{cfg: cfg}
	g.dial = g.dialTCP
	return g, nil
}

func (g *Gauge) dialTCP() (registerReader, func() error, error) {
	h := modbus.NewTCPClientHandler(g.cfg.Endpoint)
	h.Timeout = g.cfg.Timeout
	h.SlaveId = g.cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, nil, err
	}
	return modbus.NewClient(h), h.Close, nil
}

// ReadVolts reads one input register (millivolts) and converts to volts.
func (g *Gauge) ReadVolts(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cli, closeFn, err := g.dial()
	if err != nil {
		return 0, fmt.Errorf("battery gauge: connect %s: %w", g.cfg.Endpoint, err)
	}
	defer func() { _ = closeFn() }()

	raw, err := cli.ReadInputRegisters(g.cfg.Address, 1)
	if err != nil {
		return 0, fmt.Errorf("battery gauge: read addr=%d: %w", g.cfg.Address, err)
	}

	regs := unpackRegisters(raw)
	if len(regs) != 1 {
		return 0, fmt.Errorf("battery gauge: short payload (%d bytes)", len(raw))
	}
	return float64(regs[0]) / 1000, nil
}

// ---- helpers (pure geometry) ----

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
