// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultRefreshIntervalS = 4 * 60 * 60
	DefaultRenderGraceS     = 2
	DefaultBatteryLowV      = 3.5
	DefaultAggregateURL     = "https://api.covid19tracker.ca/summary/"
	DefaultSplitURL         = "https://api.covid19tracker.ca/summary/split/"
	DefaultSourceTimeoutMs  = 10000
	DefaultTimeTimeoutMs    = 5000
	DefaultNTPServer        = "pool.ntp.org"
	DefaultModbusTimeoutMs  = 2000
	DefaultRegsPerSlot      = 16
	DefaultSysfsBattery     = "/sys/class/power_supply/battery/voltage_now"
	DefaultFramePath        = "frame.yaml"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	t := &cfg.Tracker

	if t.RefreshIntervalS == 0 {
		t.RefreshIntervalS = DefaultRefreshIntervalS
	}
	if t.RenderGraceS == nil {
		g := DefaultRenderGraceS
		t.RenderGraceS = &g
	}
	if t.BatteryLowV == 0 {
		t.BatteryLowV = DefaultBatteryLowV
	}
	if t.TimeSyncPolicy == "" {
		t.TimeSyncPolicy = PolicyDegraded
	}

	// Truncate to what the status block can hold
	if len(t.DeviceName) > 16 {
		t.DeviceName = t.DeviceName[:16]
	}

	if t.Sources.AggregateURL == "" {
		t.Sources.AggregateURL = DefaultAggregateURL
	}
	if t.Sources.SplitURL == "" {
		t.Sources.SplitURL = DefaultSplitURL
	}
	if t.Sources.TimeoutMs == 0 {
		t.Sources.TimeoutMs = DefaultSourceTimeoutMs
	}
	// the system clock is opt-in; the panel's timestamp comes from the network
	if t.Time.Source == "" {
		t.Time.Source = TimeNTP
	}
	if t.Time.Source == TimeNTP && t.Time.NTPServer == "" {
		t.Time.NTPServer = DefaultNTPServer
	}
	if t.Time.TimeoutMs == 0 {
		t.Time.TimeoutMs = DefaultTimeTimeoutMs
	}

	if t.Battery.Kind == "" {
		t.Battery.Kind = BatterySysfs
	}
	if t.Battery.Kind == BatterySysfs && t.Battery.Path == "" {
		t.Battery.Path = DefaultSysfsBattery
	}
	if t.Battery.TimeoutMs == 0 {
		t.Battery.TimeoutMs = DefaultModbusTimeoutMs
	}

	if t.Display.Kind == "" {
		t.Display.Kind = DisplayFile
	}
	if t.Display.Kind == DisplayFile && t.Display.Path == "" {
		t.Display.Path = DefaultFramePath
	}
	if t.Display.RegsPerSlot == 0 {
		t.Display.RegsPerSlot = DefaultRegsPerSlot
	}
	if t.Display.TimeoutMs == 0 {
		t.Display.TimeoutMs = DefaultModbusTimeoutMs
	}

	if t.Status != nil && t.Status.TimeoutMs == 0 {
		t.Status.TimeoutMs = DefaultModbusTimeoutMs
	}

	if t.Sleep.Mode == "" {
		t.Sleep.Mode = SleepTimer
	}
}
