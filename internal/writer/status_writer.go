// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"

	"github.com/tamzrod/covid-panel/internal/status"
)

// StatusWriter is the delivery-only contract for device status.
// It receives a snapshot and writes it verbatim.
// No logic, no state, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// deviceStatusWriter is the concrete implementation used by the tracker.
// Nothing survives deep sleep, so every write is a full block (identity re-assert).
type deviceStatusWriter struct {
	plan *StatusPlan
	dial dialFunc
}

// NewDeviceStatusWriter builds a status writer if status is enabled.
// If plan is nil, status is disabled.
func NewDeviceStatusWriter(plan *StatusPlan) (StatusWriter, bool) {
	if plan == nil {
		return nil, false
	}
	return &deviceStatusWriter{
		plan: plan,
		dial: func() (endpointClient, func() error, error) {
			return dial(TransportModbus, plan.Endpoint, plan.Timeout)
		},
	}, true
}

// WriteStatus delivers the snapshot of one cycle into status memory.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil || sw.plan == nil {
		return errors.New("status writer: disabled")
	}

	cli, closeFn, err := sw.dial()
	if err != nil {
		return fmt.Errorf("status writer: connect %s: %w", sw.plan.Endpoint, err)
	}
	defer func() { _ = closeFn() }()

	regs := status.Encode(s, sw.plan.DeviceName)

	if err := cli.WriteRegisters(
		areaHoldingRegisters,
		sw.plan.UnitID,
		sw.baseAddr(),
		regs,
	); err != nil {
		return fmt.Errorf("status writer: full block write failed: %w", err)
	}
	return nil
}

func (sw *deviceStatusWriter) baseAddr() uint16 {
	// Each device owns a fixed SlotsPerDevice block.
	return sw.plan.BaseSlot * status.SlotsPerDevice
}
