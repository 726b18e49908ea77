// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
tracker:
  refresh_interval_s: 3600
  render_grace_s: 2
  battery_low_v: 3.5
  sub_region_index: 2
  time_sync_policy: strict
  device_name: MAGTAG-01
  time:
    source: ntp
    ntp_server: pool.ntp.org
    timezone: UTC
  battery:
    kind: modbus
    endpoint: 127.0.0.1:502
    unit_id: 3
    address: 10
  display:
    kind: modbus
    endpoint: 127.0.0.1:5020
    unit_id: 1
    base_address: 100
  status:
    endpoint: 127.0.0.1:5020
    unit_id: 1
    base_slot: 0
  sleep:
    mode: rtcwake
`

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}

	tr := cfg.Tracker
	if tr.RefreshIntervalS != 3600 || tr.SubRegionIndex != 2 {
		t.Fatalf("cycle constants: got interval=%d index=%d", tr.RefreshIntervalS, tr.SubRegionIndex)
	}
	if tr.TimeSyncPolicy != PolicyStrict {
		t.Fatalf("time_sync_policy: expected %q, got %q", PolicyStrict, tr.TimeSyncPolicy)
	}
	if tr.Time.Source != TimeNTP || tr.Time.NTPServer != "pool.ntp.org" {
		t.Fatalf("time: got %+v", tr.Time)
	}
	if tr.Battery.UnitID != 3 || tr.Battery.Address != 10 {
		t.Fatalf("battery: got %+v", tr.Battery)
	}
	if tr.Display.BaseAddress != 100 {
		t.Fatalf("display.base_address: expected 100, got %d", tr.Display.BaseAddress)
	}
	if tr.Status == nil || tr.Status.Endpoint != "127.0.0.1:5020" {
		t.Fatalf("status: got %+v", tr.Status)
	}
	if tr.Sleep.Mode != SleepRTCWake {
		t.Fatalf("sleep.mode: expected %q, got %q", SleepRTCWake, tr.Sleep.Mode)
	}
}

func TestParse_UnknownKeyRejected(t *testing.T) {
	if _, err := Parse([]byte("tracker:\n  refresh_every: 10\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
