// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"time"
)

// maxRegsPerWrite is the Modbus limit for one FC16 request.
const maxRegsPerWrite = 123

// panelSlots mirrors slots.Count; the config layer does not import the layout.
const panelSlots = 14

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}
	t := cfg.Tracker

	// ------------------------------------------------------------
	// CYCLE CONSTANTS
	// ------------------------------------------------------------

	if t.RefreshIntervalS < 0 {
		return fmt.Errorf("refresh_interval_s must be >= 0, got %d", t.RefreshIntervalS)
	}
	if t.RenderGraceS != nil && *t.RenderGraceS < 0 {
		return fmt.Errorf("render_grace_s must be >= 0, got %d", *t.RenderGraceS)
	}
	if t.BatteryLowV < 0 {
		return fmt.Errorf("battery_low_v must be >= 0, got %v", t.BatteryLowV)
	}
	if t.SubRegionIndex < 0 {
		return fmt.Errorf("sub_region_index must be >= 0, got %d", t.SubRegionIndex)
	}

	switch t.TimeSyncPolicy {
	case "", PolicyDegraded, PolicyStrict:
	default:
		return fmt.Errorf("time_sync_policy must be %q or %q, got %q", PolicyDegraded, PolicyStrict, t.TimeSyncPolicy)
	}

	// device_name sanity (ASCII only)
	for i := 0; i < len(t.DeviceName); i++ {
		if t.DeviceName[i] > 0x7F {
			return fmt.Errorf("device_name must contain ASCII characters only")
		}
	}

	// ------------------------------------------------------------
	// FEEDS + TIME
	// ------------------------------------------------------------

	for key, raw := range map[string]string{
		"sources.aggregate_url": t.Sources.AggregateURL,
		"sources.split_url":     t.Sources.SplitURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%s must be an absolute http(s) url, got %q", key, raw)
		}
	}
	if t.Sources.TimeoutMs < 0 || t.Time.TimeoutMs < 0 {
		return fmt.Errorf("timeouts must be >= 0")
	}
	switch t.Time.Source {
	case "", TimeNTP, TimeSystem:
	default:
		return fmt.Errorf("time.source must be %q or %q, got %q", TimeNTP, TimeSystem, t.Time.Source)
	}
	if t.Time.Timezone != "" {
		if _, err := time.LoadLocation(t.Time.Timezone); err != nil {
			return fmt.Errorf("time.timezone: %w", err)
		}
	}

	// ------------------------------------------------------------
	// BATTERY
	// ------------------------------------------------------------

	switch t.Battery.Kind {
	case "", BatterySysfs:
	case BatteryModbus:
		if t.Battery.Endpoint == "" {
			return fmt.Errorf("battery: kind %q requires endpoint", t.Battery.Kind)
		}
	case BatteryFixed:
		if t.Battery.Volts <= 0 {
			return fmt.Errorf("battery: kind %q requires volts > 0", t.Battery.Kind)
		}
	default:
		return fmt.Errorf("battery: unknown kind %q", t.Battery.Kind)
	}

	// ------------------------------------------------------------
	// DISPLAY GEOMETRY
	// ------------------------------------------------------------

	switch t.Display.Kind {
	case "", DisplayFile:
	case DisplayModbus, DisplayIngest:
		d := t.Display
		if d.Endpoint == "" {
			return fmt.Errorf("display: kind %q requires endpoint", d.Kind)
		}
		if d.RegsPerSlot > maxRegsPerWrite {
			return fmt.Errorf("display: regs_per_slot %d exceeds %d", d.RegsPerSlot, maxRegsPerWrite)
		}
		regs := uint32(d.RegsPerSlot)
		if regs == 0 {
			regs = DefaultRegsPerSlot
		}
		end := uint32(d.BaseAddress) + panelSlots*regs - 1
		if end > 0xFFFF {
			return fmt.Errorf("display: slot registers %d-%d exceed address space", d.BaseAddress, end)
		}
	default:
		return fmt.Errorf("display: unknown kind %q", t.Display.Kind)
	}

	// ------------------------------------------------------------
	// STATUS BLOCK (OPT-IN)
	// ------------------------------------------------------------

	if t.Status != nil {
		if t.Status.Endpoint == "" {
			return fmt.Errorf("status: endpoint required")
		}
		if t.Display.Kind == DisplayModbus &&
			t.Display.Endpoint == t.Status.Endpoint &&
			t.Display.UnitID == t.Status.UnitID {
			// status block uses 20 registers starting at base_slot*20
			sStart := uint32(t.Status.BaseSlot) * 20
			sEnd := sStart + 19
			regs := uint32(t.Display.RegsPerSlot)
			if regs == 0 {
				regs = DefaultRegsPerSlot
			}
			dStart := uint32(t.Display.BaseAddress)
			dEnd := dStart + panelSlots*regs - 1
			if !(sEnd < dStart || sStart > dEnd) {
				return fmt.Errorf(
					"status block %d-%d overlaps display registers %d-%d on endpoint=%s unit_id=%d",
					sStart, sEnd, dStart, dEnd, t.Status.Endpoint, t.Status.UnitID,
				)
			}
		}
	}

	// ------------------------------------------------------------
	// SLEEP
	// ------------------------------------------------------------

	switch t.Sleep.Mode {
	case "", SleepTimer, SleepRTCWake:
	default:
		return fmt.Errorf("sleep: unknown mode %q", t.Sleep.Mode)
	}

	return nil
}
