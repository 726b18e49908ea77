// internal/power/monitor.go
package power

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultLowThreshold is the battery-low threshold in volts.
// Below this, the panel shows the low battery annotation.
const DefaultLowThreshold = 3.5

// VoltageReader reads the battery terminal voltage in volts.
type VoltageReader interface {
	ReadVolts(ctx context.Context) (float64, error)
}

// Clock returns the current time from some time source.
type Clock interface {
	Now(ctx context.Context) (time.Time, error)
}

// TimeSyncError means the time source could not be reached or disagreed.
type TimeSyncError struct {
	Source string
	Err    error
}

func (e *TimeSyncError) Error() string {
	return fmt.Sprintf("power: time sync (%s): %v", e.Source, e.Err)
}

func (e *TimeSyncError) Unwrap() error { return e.Err }

// Code is the status-block error code.
func (e *TimeSyncError) Code() uint16 { return 30 }

// IsLow reports whether v is strictly below DefaultLowThreshold.
func IsLow(v float64) bool {
	return v < DefaultLowThreshold
}

// Monitor bundles the battery reader, the time source and the local zone.
type Monitor struct {
	reader    VoltageReader
	clock     Clock
	threshold float64
	loc       *time.Location
}

// NewMonitor creates a monitor. threshold <= 0 uses DefaultLowThreshold;
// a nil loc uses time.Local.
func NewMonitor(reader VoltageReader, clock Clock, threshold float64, loc *time.Location) *Monitor {
	if threshold <= 0 {
		threshold = DefaultLowThreshold
	}
	if loc == nil {
		loc = time.Local
	}
	return &Monitor{reader: reader, clock: clock, threshold: threshold, loc: loc}
}

// BatteryVoltage reads the battery once.
func (m *Monitor) BatteryVoltage(ctx context.Context) (float64, error) {
	if m == nil || m.reader == nil {
		return 0, errors.New("power: no battery reader")
	}
	v, err := m.reader.ReadVolts(ctx)
	if err != nil {
		return 0, fmt.Errorf("power: battery read: %w", err)
	}
	return v, nil
}

// IsLow compares v against the configured threshold (strictly below).
func (m *Monitor) IsLow(v float64) bool {
	return v < m.threshold
}

// Threshold returns the configured low-battery threshold.
func (m *Monitor) Threshold() float64 { return m.threshold }

// CurrentLocalTime queries the time source and converts to the local zone.
// Failures are always *TimeSyncError.
func (m *Monitor) CurrentLocalTime(ctx context.Context) (time.Time, error) {
	if m == nil || m.clock == nil {
		return time.Time{}, &TimeSyncError{Source: "none", Err: errors.New("no clock")}
	}

	t, err := m.clock.Now(ctx)
	if err != nil {
		var tse *TimeSyncError
		if errors.As(err, &tse) {
			return time.Time{}, tse
		}
		return time.Time{}, &TimeSyncError{Source: sourceName(m.clock), Err: err}
	}
	return t.In(m.loc), nil
}

func sourceName(c Clock) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return "clock"
}
