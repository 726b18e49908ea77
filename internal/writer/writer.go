// internal/writer/writer.go
package writer

import (
	"context"
	"errors"
	"fmt"

	"github.com/tamzrod/covid-panel/internal/display"
	"github.com/tamzrod/covid-panel/internal/slots"
	"github.com/tamzrod/covid-panel/internal/status"
)

// Panel is a register-addressed text display (HMI or e-paper gateway).
// It implements display.Sink.
type Panel struct {
	plan PanelPlan
	dial dialFunc
}

// NewPanel builds a panel writer. It does not connect.
func NewPanel(plan PanelPlan) (*Panel, error) {
	if plan.Endpoint == "" {
		return nil, errors.New("writer: panel endpoint required")
	}
	if plan.RegsPerSlot == 0 {
		return nil, errors.New("writer: panel regs_per_slot must be > 0")
	}
	return &Panel{
		plan: plan,
		dial: func() (endpointClient, func() error, error) {
			return dial(plan.Transport, plan.Endpoint, plan.Timeout)
		},
	}, nil
}

// Commit writes every slot's text block, then pulses the refresh coil once.
// Any slot failure aborts before the refresh, so the visible image is unchanged.
func (p *Panel) Commit(ctx context.Context, frame []display.SlotText) error {
	cli, closeFn, err := p.dial()
	if err != nil {
		return &display.RenderError{Slot: slots.Count, Err: fmt.Errorf("connect %s: %w", p.plan.Endpoint, err)}
	}
	defer func() { _ = closeFn() }()

	for _, st := range frame {
		if err := ctx.Err(); err != nil {
			return &display.RenderError{Slot: st.Slot.ID, Err: err}
		}

		addr := p.slotAddr(st.Slot.ID)
		regs := status.EncodeASCII(st.Text, int(p.plan.RegsPerSlot))

		if err := cli.WriteRegisters(areaHoldingRegisters, p.plan.UnitID, addr, regs); err != nil {
			return &display.RenderError{
				Slot: st.Slot.ID,
				Err:  fmt.Errorf("ep=%s unit=%d addr=%d: %w", p.plan.Endpoint, p.plan.UnitID, addr, err),
			}
		}
	}

	if err := cli.WriteBits(areaCoils, p.plan.UnitID, p.plan.RefreshCoil, []bool{true}); err != nil {
		return &display.RenderError{
			Slot: slots.Count,
			Err:  fmt.Errorf("refresh coil %d: %w", p.plan.RefreshCoil, err),
		}
	}
	return nil
}

func (p *Panel) slotAddr(id slots.ID) uint16 {
	return p.plan.BaseAddress + uint16(id)*p.plan.RegsPerSlot
}
