// internal/config/config.go
package config

type Config struct {
	Tracker TrackerConfig `yaml:"tracker"`
}

type TrackerConfig struct {
	RefreshIntervalS int     `yaml:"refresh_interval_s"`
	RenderGraceS     *int    `yaml:"render_grace_s"`
	BatteryLowV      float64 `yaml:"battery_low_v"`
	SubRegionIndex   int     `yaml:"sub_region_index"`
	TimeSyncPolicy   string  `yaml:"time_sync_policy"` // degraded | strict
	DeviceName       string  `yaml:"device_name"`

	Sources SourcesConfig `yaml:"sources"`
	Time    TimeConfig    `yaml:"time"`
	Battery BatteryConfig `yaml:"battery"`
	Display DisplayConfig `yaml:"display"`
	Sleep   SleepConfig   `yaml:"sleep"`

	// Status block (optional, opt-in)
	Status *StatusConfig `yaml:"status"`
}

// ---- FEEDS ----

type SourcesConfig struct {
	AggregateURL string `yaml:"aggregate_url"`
	SplitURL     string `yaml:"split_url"`
	TimeoutMs    int    `yaml:"timeout_ms"`
}

// ---- TIME ----

type TimeConfig struct {
	Source    string `yaml:"source"`     // ntp | system
	NTPServer string `yaml:"ntp_server"` // ntp only
	Timezone  string `yaml:"timezone"`   // empty => host local zone
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- BATTERY ----

type BatteryConfig struct {
	Kind string `yaml:"kind"` // modbus | sysfs | fixed

	// modbus
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	Address   uint16 `yaml:"address"`
	TimeoutMs int    `yaml:"timeout_ms"`

	// sysfs
	Path string `yaml:"path"`

	// fixed
	Volts float64 `yaml:"volts"`
}

// ---- DISPLAY ----

type DisplayConfig struct {
	Kind string `yaml:"kind"` // modbus | ingest | file

	// modbus / ingest
	Endpoint    string `yaml:"endpoint"`
	UnitID      uint8  `yaml:"unit_id"`
	BaseAddress uint16 `yaml:"base_address"`
	RegsPerSlot uint16 `yaml:"regs_per_slot"`
	RefreshCoil uint16 `yaml:"refresh_coil"`
	TimeoutMs   int    `yaml:"timeout_ms"`

	// file
	Path string `yaml:"path"`
}

// ---- STATUS ----

type StatusConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	BaseSlot  uint16 `yaml:"base_slot"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- SLEEP ----

type SleepConfig struct {
	Mode string `yaml:"mode"` // timer | rtcwake
}

// ---- KIND NAMES ----

const (
	PolicyDegraded = "degraded"
	PolicyStrict   = "strict"

	BatteryModbus = "modbus"
	BatterySysfs  = "sysfs"
	BatteryFixed  = "fixed"

	DisplayModbus = "modbus"
	DisplayIngest = "ingest"
	DisplayFile   = "file"

	SleepTimer   = "timer"
	SleepRTCWake = "rtcwake"

	TimeNTP    = "ntp"
	TimeSystem = "system"
)
