// internal/cycle/controller.go
package cycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/tamzrod/covid-panel/internal/display"
	"github.com/tamzrod/covid-panel/internal/metrics"
	"github.com/tamzrod/covid-panel/internal/network"
	"github.com/tamzrod/covid-panel/internal/power"
	"github.com/tamzrod/covid-panel/internal/sleep"
	"github.com/tamzrod/covid-panel/internal/slots"
	"github.com/tamzrod/covid-panel/internal/status"
	"github.com/tamzrod/covid-panel/internal/writer"
)

// TimeSyncPolicy decides what a time-sync failure does to the cycle.
type TimeSyncPolicy uint8

const (
	// TimeSyncDegraded renders without a timestamp.
	TimeSyncDegraded TimeSyncPolicy = iota
	// TimeSyncStrict fails the cycle at the fetch stage.
	TimeSyncStrict
)

// ParseTimeSyncPolicy maps the config value.
func ParseTimeSyncPolicy(s string) (TimeSyncPolicy, error) {
	switch s {
	case "", "degraded":
		return TimeSyncDegraded, nil
	case "strict":
		return TimeSyncStrict, nil
	default:
		return 0, fmt.Errorf("cycle: unknown time sync policy %q", s)
	}
}

// Config is the process-wide read-only cycle configuration.
type Config struct {
	RefreshInterval time.Duration
	RenderGrace     time.Duration
	SubRegionIndex  int
	Endpoints       metrics.Endpoints
	TimeSync        TimeSyncPolicy
}

// Device bundles the peripherals one cycle talks to.
// It is passed explicitly; nothing here is global.
type Device struct {
	Network network.Connector
	Power   *power.Monitor
	Display display.Sink
	Sleep   sleep.Scheduler
	Status  writer.StatusWriter // optional
}

// Controller runs refresh cycles.
type Controller struct {
	cfg Config
	dev Device
	log *log.Logger

	// swapped in tests
	pause func(ctx context.Context, d time.Duration)
	newID func() string
}

// New validates wiring. A nil logger discards output.
func New(cfg Config, dev Device, logger *log.Logger) (*Controller, error) {
	if cfg.RefreshInterval <= 0 {
		return nil, errors.New("cycle: refresh interval must be > 0")
	}
	if cfg.RenderGrace < 0 {
		return nil, errors.New("cycle: render grace must be >= 0")
	}
	if cfg.SubRegionIndex < 0 {
		return nil, errors.New("cycle: sub-region index must be >= 0")
	}
	if dev.Network == nil || dev.Power == nil || dev.Display == nil || dev.Sleep == nil {
		return nil, errors.New("cycle: network, power, display and sleep are required")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Controller{
		cfg:   cfg,
		dev:   dev,
		log:   logger,
		pause: pause,
		newID: func() string { return uuid.NewString()[:8] },
	}, nil
}

// Run wakes, renders and sleeps until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.Wake(ctx)
	}
}

// Wake runs exactly one cycle from Idle and commits the sleep directive.
// Every path ends in Sleeping; no error escapes.
func (c *Controller) Wake(ctx context.Context) Outcome {
	out := c.refresh(ctx)

	c.enter(&out, StateSleeping)
	c.publishStatus(out)
	c.commitSleep(ctx, out)

	return out
}

// refresh is Idle → ... → Rendering, or an early exit with Stage/Err set.
func (c *Controller) refresh(ctx context.Context) Outcome {
	out := Outcome{
		CycleID: c.newID(),
		Sleep:   sleep.Directive{Duration: c.cfg.RefreshInterval},
	}
	c.enter(&out, StateIdle)

	// ---- connect ----
	c.enter(&out, StateConnecting)
	sess, err := c.dev.Network.Connect(ctx)
	if err != nil {
		c.fail(&out, StageConnect, err)
		c.enter(&out, StateFailedEarly)
		return out
	}

	src := metrics.NewSource(c.cfg.Endpoints, sess)
	frame := display.NewFrame()

	// ---- aggregate + footer staging ----
	c.enter(&out, StateFetchingAggregate)
	agg, err := src.Fetch(ctx, metrics.Aggregate())
	if err != nil {
		c.fail(&out, StageFetch, err)
		return out
	}
	if err := c.stageFooter(ctx, frame, &out); err != nil {
		c.fail(&out, StageFetch, err)
		return out
	}

	// ---- sub-region ----
	c.enter(&out, StateFetchingSubRegion)
	sub, err := src.Fetch(ctx, metrics.SubRegion(c.cfg.SubRegionIndex))
	if err != nil {
		c.fail(&out, StageFetch, err)
		return out
	}

	stageRecords(frame, agg, sub)

	// ---- render (one batched commit) ----
	c.enter(&out, StateRendering)
	err = frame.Commit(ctx, c.dev.Display)

	// the panel keeps drawing after the last write returns
	c.pause(ctx, c.cfg.RenderGrace)

	if err != nil {
		c.fail(&out, StageRender, err)
		return out
	}

	out.Aggregate = agg
	out.SubRegion = sub
	c.log.Printf("cycle=%s: rendered %d slots (aggregate cases=%d, subregion[%d] cases=%d)",
		out.CycleID, frame.Len(), agg.Get(metrics.TotalCases), c.cfg.SubRegionIndex, sub.Get(metrics.TotalCases))
	return out
}

// stageFooter stages the timestamp and battery slots.
// It returns an error only for a time-sync failure under the strict policy.
func (c *Controller) stageFooter(ctx context.Context, frame *display.Frame, out *Outcome) error {
	now, err := c.dev.Power.CurrentLocalTime(ctx)
	switch {
	case err == nil:
		out.Timestamp = now
		frame.Set(slots.LastUpdated, slots.LastUpdatedLabel+FormatTimestamp(now))
	case c.cfg.TimeSync == TimeSyncStrict:
		return err
	default:
		c.log.Printf("cycle=%s: WARN: %v; rendering without timestamp", out.CycleID, err)
		frame.Set(slots.LastUpdated, "")
	}

	v, err := c.dev.Power.BatteryVoltage(ctx)
	if err != nil {
		c.log.Printf("cycle=%s: WARN: %v; battery status left blank", out.CycleID, err)
		frame.Set(slots.BatteryStatus, "")
		return nil
	}

	out.Battery = v
	out.BatteryKnown = true
	out.BatteryLow = c.dev.Power.IsLow(v)

	if out.BatteryLow {
		frame.Set(slots.BatteryStatus, slots.LowBatteryText)
	} else {
		frame.Set(slots.BatteryStatus, "")
	}
	return nil
}

// stageRecords writes all twelve data slots through the slot table.
func stageRecords(frame *display.Frame, agg, sub metrics.Record) {
	for _, s := range slots.DataSlots() {
		rec := agg
		if s.Binding.Region == metrics.RegionSubRegion {
			rec = sub
		}
		frame.Set(s.ID, s.Label+FormatCount(rec.Get(s.Binding.Field)))
	}
}

// ---- transitions ----

func (c *Controller) enter(out *Outcome, s State) {
	out.Trace = append(out.Trace, s)
	c.log.Printf("cycle=%s: state=%s", out.CycleID, s)
}

func (c *Controller) fail(out *Outcome, stage Stage, err error) {
	out.Stage = stage
	out.Err = err
	c.log.Printf("cycle=%s: ERROR: stage=%s class=%s code=%d: %v; nothing rendered",
		out.CycleID, stage, describe(err), errorCode(err), err)
}

// ---- sleep + status ----

func (c *Controller) commitSleep(ctx context.Context, out Outcome) {
	c.log.Printf("cycle=%s: sleeping %s", out.CycleID, out.Sleep.Duration)

	err := c.dev.Sleep.Suspend(ctx, out.Sleep)
	if err == nil || ctx.Err() != nil {
		return
	}

	// Platform suspend failed: still honor the interval, never spin.
	c.log.Printf("cycle=%s: ERROR: suspend failed: %v; waiting in-process", out.CycleID, err)
	_ = sleep.Timer{}.Suspend(ctx, out.Sleep)
}

func (c *Controller) publishStatus(out Outcome) {
	if c.dev.Status == nil {
		return
	}
	if err := c.dev.Status.WriteStatus(snapshotOf(out)); err != nil {
		c.log.Printf("cycle=%s: status write failed: %v", out.CycleID, err)
	}
}

func snapshotOf(out Outcome) status.Snapshot {
	s := status.Snapshot{
		Health:        status.HealthOK,
		LastErrorCode: errorCode(out.Err),
		SleepMinutes:  clampU16(out.Sleep.Duration.Minutes()),
	}

	switch {
	case out.Err != nil:
		s.Health = status.HealthError
	case out.Degraded():
		s.Health = status.HealthDegraded
	}

	switch out.Stage {
	case StageConnect:
		s.FailedStage = status.StageConnect
	case StageFetch:
		s.FailedStage = status.StageFetch
	case StageRender:
		s.FailedStage = status.StageRender
	default:
		s.FailedStage = status.StageNone
	}

	if out.BatteryKnown {
		s.BatteryMillivolts = clampU16(out.Battery * 1000)
	}
	return s
}

func clampU16(v float64) uint16 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(math.Round(v))
}

func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
