// internal/cycle/outcome.go
package cycle

import (
	"fmt"
	"time"

	"github.com/tamzrod/covid-panel/internal/metrics"
	"github.com/tamzrod/covid-panel/internal/sleep"
)

// State is one node of the refresh-cycle state machine.
type State uint8

const (
	StateIdle State = iota
	StateConnecting
	StateFetchingAggregate
	StateFetchingSubRegion
	StateRendering
	StateSleeping
	StateFailedEarly
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateFetchingAggregate:
		return "fetching-aggregate"
	case StateFetchingSubRegion:
		return "fetching-subregion"
	case StateRendering:
		return "rendering"
	case StateSleeping:
		return "sleeping"
	case StateFailedEarly:
		return "failed-early"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Stage is where a failed cycle stopped.
type Stage uint8

const (
	StageNone Stage = iota
	StageConnect
	StageFetch
	StageRender
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageConnect:
		return "connect"
	case StageFetch:
		return "fetch"
	case StageRender:
		return "render"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// Outcome is the result of one wake.
// Err == nil is Success: both records are set and the frame was committed.
// Err != nil is Failure at Stage: nothing was committed to the display.
type Outcome struct {
	CycleID string
	Trace   []State

	// ---- success ----
	Aggregate    metrics.Record
	SubRegion    metrics.Record
	Timestamp    time.Time // zero when time sync was skipped
	Battery      float64
	BatteryKnown bool
	BatteryLow   bool

	// ---- failure ----
	Stage Stage
	Err   error

	Sleep sleep.Directive
}

// Success reports whether the frame was committed.
func (o Outcome) Success() bool { return o.Err == nil }

// Degraded reports a committed frame without a timestamp.
func (o Outcome) Degraded() bool { return o.Err == nil && o.Timestamp.IsZero() }

// Final is the last state visited.
func (o Outcome) Final() State {
	if len(o.Trace) == 0 {
		return StateIdle
	}
	return o.Trace[len(o.Trace)-1]
}
