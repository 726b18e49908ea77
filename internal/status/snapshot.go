// internal/status/snapshot.go
package status

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond the current cycle.
type Snapshot struct {
	Health            uint16
	LastErrorCode     uint16
	FailedStage       uint16
	BatteryMillivolts uint16
	SleepMinutes      uint16
}
