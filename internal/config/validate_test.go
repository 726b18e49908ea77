// internal/config/validate_test.go
package config

import (
	"reflect"
	"testing"
)

// helper to build a modbus display config quickly
func modbusDisplay(endpoint string, unitID uint8, base, regs uint16) DisplayConfig {
	return DisplayConfig{
		Kind:        DisplayModbus,
		Endpoint:    endpoint,
		UnitID:      unitID,
		BaseAddress: base,
		RegsPerSlot: regs,
	}
}

func intPtr(v int) *int { return &v }

// ---- tests ----

func TestValidate_EmptyConfigIsValid(t *testing.T) {
	if err := Validate(&Config{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  TrackerConfig
	}{
		{"negative interval", TrackerConfig{RefreshIntervalS: -1}},
		{"negative grace", TrackerConfig{RenderGraceS: intPtr(-2)}},
		{"negative threshold", TrackerConfig{BatteryLowV: -3.5}},
		{"negative index", TrackerConfig{SubRegionIndex: -1}},
		{"unknown policy", TrackerConfig{TimeSyncPolicy: "lenient"}},
		{"non ascii name", TrackerConfig{DeviceName: "café"}},
		{"relative url", TrackerConfig{Sources: SourcesConfig{AggregateURL: "/summary/"}}},
		{"ftp url", TrackerConfig{Sources: SourcesConfig{SplitURL: "ftp://x/split"}}},
		{"unknown time source", TrackerConfig{Time: TimeConfig{Source: "gps"}}},
		{"bad zone", TrackerConfig{Time: TimeConfig{Timezone: "Mars/Olympus_Mons"}}},
		{"modbus battery no endpoint", TrackerConfig{Battery: BatteryConfig{Kind: BatteryModbus}}},
		{"fixed battery no volts", TrackerConfig{Battery: BatteryConfig{Kind: BatteryFixed}}},
		{"unknown battery", TrackerConfig{Battery: BatteryConfig{Kind: "adc"}}},
		{"modbus display no endpoint", TrackerConfig{Display: DisplayConfig{Kind: DisplayModbus}}},
		{"ingest display no endpoint", TrackerConfig{Display: DisplayConfig{Kind: DisplayIngest}}},
		{"regs per slot too large", TrackerConfig{Display: modbusDisplay("ep1", 1, 0, 124)}},
		{"display past address space", TrackerConfig{Display: modbusDisplay("ep1", 1, 65500, 16)}},
		{"unknown display", TrackerConfig{Display: DisplayConfig{Kind: "hdmi"}}},
		{"status no endpoint", TrackerConfig{Status: &StatusConfig{}}},
		{"unknown sleep", TrackerConfig{Sleep: SleepConfig{Mode: "hibernate"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(&Config{Tracker: tt.cfg}); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestValidate_TimeSources(t *testing.T) {
	for _, src := range []string{"", TimeNTP, TimeSystem} {
		cfg := &Config{Tracker: TrackerConfig{Time: TimeConfig{Source: src}}}
		if err := Validate(cfg); err != nil {
			t.Fatalf("source %q: unexpected error: %v", src, err)
		}
	}
}

func TestValidate_StatusOverlapDetected(t *testing.T) {
	cfg := &Config{Tracker: TrackerConfig{
		Display: modbusDisplay("ep1", 1, 0, 16),                         // 0–223
		Status:  &StatusConfig{Endpoint: "ep1", UnitID: 1, BaseSlot: 5}, // 100–119 → overlap
	}}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected overlap error, got nil")
	}
}

func TestValidate_StatusTouchingAllowed(t *testing.T) {
	cfg := &Config{Tracker: TrackerConfig{
		Display: modbusDisplay("ep1", 1, 20, 16),                        // 20–243
		Status:  &StatusConfig{Endpoint: "ep1", UnitID: 1, BaseSlot: 0}, // 0–19
	}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_StatusOtherUnitAllowed(t *testing.T) {
	cfg := &Config{Tracker: TrackerConfig{
		Display: modbusDisplay("ep1", 1, 0, 16),
		Status:  &StatusConfig{Endpoint: "ep1", UnitID: 2, BaseSlot: 0},
	}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := &Config{}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg, &Config{}) {
		t.Fatalf("Validate mutated config: %+v", cfg)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := &Config{Tracker: TrackerConfig{DeviceName: "A-VERY-LONG-DEVICE-NAME"}}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Normalize(cfg)

	tr := cfg.Tracker
	if tr.RefreshIntervalS != 14400 {
		t.Fatalf("refresh_interval_s: expected 14400, got %d", tr.RefreshIntervalS)
	}
	if tr.RenderGraceS == nil || *tr.RenderGraceS != 2 {
		t.Fatalf("render_grace_s: expected 2, got %v", tr.RenderGraceS)
	}
	if tr.BatteryLowV != 3.5 {
		t.Fatalf("battery_low_v: expected 3.5, got %v", tr.BatteryLowV)
	}
	if tr.TimeSyncPolicy != PolicyDegraded {
		t.Fatalf("time_sync_policy: expected %q, got %q", PolicyDegraded, tr.TimeSyncPolicy)
	}
	if tr.DeviceName != "A-VERY-LONG-DEVI" {
		t.Fatalf("device_name: expected truncation to 16 chars, got %q", tr.DeviceName)
	}
	if tr.Sources.AggregateURL != "https://api.covid19tracker.ca/summary/" ||
		tr.Sources.SplitURL != "https://api.covid19tracker.ca/summary/split/" {
		t.Fatalf("sources: unexpected defaults %+v", tr.Sources)
	}
	if tr.Time.Source != TimeNTP {
		t.Fatalf("time.source: expected %q, got %q", TimeNTP, tr.Time.Source)
	}
	if tr.Time.NTPServer != DefaultNTPServer {
		t.Fatalf("time.ntp_server: expected %q, got %q", DefaultNTPServer, tr.Time.NTPServer)
	}
	if tr.Battery.Kind != BatterySysfs || tr.Battery.Path != DefaultSysfsBattery {
		t.Fatalf("battery: unexpected defaults %+v", tr.Battery)
	}
	if tr.Display.Kind != DisplayFile || tr.Display.RegsPerSlot != 16 {
		t.Fatalf("display: unexpected defaults %+v", tr.Display)
	}
	if tr.Sleep.Mode != SleepTimer {
		t.Fatalf("sleep.mode: expected %q, got %q", SleepTimer, tr.Sleep.Mode)
	}
	if tr.Status != nil {
		t.Fatalf("status must stay opt-in, got %+v", tr.Status)
	}
}

func TestNormalize_SystemClockIsOptIn(t *testing.T) {
	cfg := &Config{Tracker: TrackerConfig{Time: TimeConfig{Source: TimeSystem}}}
	Normalize(cfg)

	if cfg.Tracker.Time.Source != TimeSystem {
		t.Fatalf("time.source: expected %q, got %q", TimeSystem, cfg.Tracker.Time.Source)
	}
	if cfg.Tracker.Time.NTPServer != "" {
		t.Fatalf("system clock must not get an ntp server, got %q", cfg.Tracker.Time.NTPServer)
	}
}

func TestNormalize_KeepsExplicitNTPServer(t *testing.T) {
	cfg := &Config{Tracker: TrackerConfig{Time: TimeConfig{NTPServer: "time.nrc.ca"}}}
	Normalize(cfg)

	if cfg.Tracker.Time.NTPServer != "time.nrc.ca" {
		t.Fatalf("ntp_server overwritten: %q", cfg.Tracker.Time.NTPServer)
	}
}

func TestNormalize_KeepsExplicitZeroGrace(t *testing.T) {
	cfg := &Config{Tracker: TrackerConfig{RenderGraceS: intPtr(0)}}
	Normalize(cfg)
	if *cfg.Tracker.RenderGraceS != 0 {
		t.Fatalf("render_grace_s: expected explicit 0 kept, got %d", *cfg.Tracker.RenderGraceS)
	}
}
