// internal/writer/types.go
package writer

import "time"

// Transport names the wire protocol toward a register-addressed endpoint.
type Transport string

const (
	TransportModbus Transport = "modbus"
	TransportIngest Transport = "ingest"
)

// endpointClient is the exact contract the writers use.
// IMPORTANT: There must be NO other version of this interface anywhere.
type endpointClient interface {
	WriteBits(area byte, unitID uint8, addr uint16, bits []bool) error
	WriteRegisters(area byte, unitID uint8, addr uint16, regs []uint16) error
}

// dialFunc opens one endpoint connection for one commit.
type dialFunc func() (endpointClient, func() error, error)

// PanelPlan is the register geometry of one text panel.
// Slot i owns RegsPerSlot holding registers at BaseAddress + i*RegsPerSlot.
type PanelPlan struct {
	Transport   Transport
	Endpoint    string
	UnitID      uint8
	BaseAddress uint16
	RegsPerSlot uint16
	RefreshCoil uint16
	Timeout     time.Duration
}

// StatusPlan is the fully-built status block destination.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16
	DeviceName string
	Timeout    time.Duration
}

const (
	areaCoils            byte = 1
	areaHoldingRegisters byte = 3
)
