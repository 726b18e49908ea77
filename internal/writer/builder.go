// internal/writer/builder.go
package writer

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/covid-panel/internal/config"
	"github.com/tamzrod/covid-panel/internal/writer/ingest"
	wmodbus "github.com/tamzrod/covid-panel/internal/writer/modbus"
)

// BuildPanelPlan converts display config into a panel plan.
// Assumes config has already passed validation and normalization.
func BuildPanelPlan(d cfg.DisplayConfig) (PanelPlan, error) {
	var tr Transport
	switch d.Kind {
	case cfg.DisplayModbus:
		tr = TransportModbus
	case cfg.DisplayIngest:
		tr = TransportIngest
	default:
		return PanelPlan{}, fmt.Errorf("writer: display kind %q is not register-addressed", d.Kind)
	}

	return PanelPlan{
		Transport:   tr,
		Endpoint:    d.Endpoint,
		UnitID:      d.UnitID,
		BaseAddress: d.BaseAddress,
		RegsPerSlot: d.RegsPerSlot,
		RefreshCoil: d.RefreshCoil,
		Timeout:     time.Duration(d.TimeoutMs) * time.Millisecond,
	}, nil
}

// BuildStatusPlan returns nil when the status block is not configured.
func BuildStatusPlan(t cfg.TrackerConfig) *StatusPlan {
	if t.Status == nil {
		return nil
	}
	return &StatusPlan{
		Endpoint:   t.Status.Endpoint,
		UnitID:     t.Status.UnitID,
		BaseSlot:   t.Status.BaseSlot,
		DeviceName: t.DeviceName,
		Timeout:    time.Duration(t.Status.TimeoutMs) * time.Millisecond,
	}
}

// dial creates one client for endpoint. ONE attempt per call.
func dial(tr Transport, endpoint string, timeout time.Duration) (endpointClient, func() error, error) {
	switch tr {
	case TransportModbus, "":
		c, err := wmodbus.NewEndpointClient(wmodbus.Config{Endpoint: endpoint, Timeout: timeout})
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil

	case TransportIngest:
		c, err := ingest.NewEndpointClient(ingest.Config{Endpoint: endpoint, Timeout: timeout})
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil

	default:
		return nil, nil, fmt.Errorf("writer: unknown transport %q", tr)
	}
}
