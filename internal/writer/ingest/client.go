// internal/writer/ingest/client.go
package ingest

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

const (
	magicHi byte = 0x52 // 'R'
	magicLo byte = 0x49 // 'I'

	versionV1 byte = 0x01

	respOK       byte = 0x00
	respRejected byte = 0x01

	headerLen = 10
)

// EndpointClient speaks Raw Ingest v1 to a panel gateway.
// The connection is opened on first write and kept until Close, so one
// frame commit costs one TCP connection. Every packet is acknowledged.
type EndpointClient struct {
	endpoint string
	timeout  time.Duration
	conn     net.Conn
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

func NewEndpointClient(cfg Config) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("writer ingest: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &EndpointClient{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
	}, nil
}

// Close releases the connection, if any.
func (c *EndpointClient) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *EndpointClient) WriteBits(area byte, unitID uint8, addr uint16, bits []bool) error {
	return c.send(area, unitID, addr, uint16(len(bits)), packBits(bits))
}

func (c *EndpointClient) WriteRegisters(area byte, unitID uint8, addr uint16, regs []uint16) error {
	return c.send(area, unitID, addr, uint16(len(regs)), packRegisters(regs))
}

// ---- Raw Ingest v1 sender ----

func (c *EndpointClient) send(area byte, unitID uint8, addr uint16, count uint16, payload []byte) error {
	if c.conn == nil {
		conn, err := net.DialTimeout("tcp", c.endpoint, c.timeout)
		if err != nil {
			return fmt.Errorf("writer ingest: dial: %w", err)
		}
		c.conn = conn
	}

	pkt := buildPacketV1(area, unitID, addr, count, payload)

	_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	if _, err := c.conn.Write(pkt); err != nil {
		// connection state unknown; next write redials
		_ = c.Close()
		return fmt.Errorf("writer ingest: write: %w", err)
	}

	var resp [1]byte
	if _, err := io.ReadFull(c.conn, resp[:]); err != nil {
		_ = c.Close()
		return fmt.Errorf("writer ingest: read status: %w", err)
	}

	switch resp[0] {
	case respOK:
		return nil
	case respRejected:
		return fmt.Errorf("writer ingest: rejected area=%d addr=%d count=%d", area, addr, count)
	default:
		return fmt.Errorf("writer ingest: unknown status 0x%02x", resp[0])
	}
}

// buildPacketV1 lays out the fixed 10-byte header followed by payload:
//
//	0–1  Magic "RI"
//	2    Version (0x01)
//	3    Area
//	4–5  UnitID
//	6–7  Address
//	8–9  Count
//	10+  Payload
func buildPacketV1(area byte, unitID uint8, addr uint16, count uint16, payload []byte) []byte {
	pkt := make([]byte, headerLen, headerLen+len(payload))

	pkt[0] = magicHi
	pkt[1] = magicLo
	pkt[2] = versionV1
	pkt[3] = area

	putU16(pkt[4:6], uint16(unitID))
	putU16(pkt[6:8], addr)
	putU16(pkt[8:10], count)

	return append(pkt, payload...)
}

// ---- helpers ----

func putU16(dst []byte, v uint16) {
	dst[0] = byte(v >> 8)
	dst[1] = byte(v)
}

func packBits(bits []bool) []byte {
	n := (len(bits) + 7) / 8
	out := make([]byte, n)
	for i, v := range bits {
		if v {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// Modbus register memory order (BIG-ENDIAN)
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
