// cmd/tracker/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tamzrod/covid-panel/internal/config"
	"github.com/tamzrod/covid-panel/internal/cycle"
	"github.com/tamzrod/covid-panel/internal/display"
	"github.com/tamzrod/covid-panel/internal/metrics"
	"github.com/tamzrod/covid-panel/internal/network"
	"github.com/tamzrod/covid-panel/internal/power"
	pmodbus "github.com/tamzrod/covid-panel/internal/power/modbus"
	"github.com/tamzrod/covid-panel/internal/sleep"
	"github.com/tamzrod/covid-panel/internal/writer"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: tracker <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)
	t := cfg.Tracker

	// --------------------
	// Build device context
	// --------------------

	mon, err := buildPower(t)
	if err != nil {
		log.Fatalf("power build failed: %v", err)
	}

	sink, err := buildDisplay(t.Display)
	if err != nil {
		log.Fatalf("display build failed (kind=%s): %v", t.Display.Kind, err)
	}

	// Status writer (optional)
	var statusWriter writer.StatusWriter
	if sw, ok := writer.NewDeviceStatusWriter(writer.BuildStatusPlan(t)); ok {
		statusWriter = sw
	}

	dev := cycle.Device{
		Network: network.NewHTTPConnector(network.Config{
			ProbeURL: t.Sources.AggregateURL,
			Timeout:  ms(t.Sources.TimeoutMs),
		}),
		Power:   mon,
		Display: sink,
		Sleep:   buildSleep(t.Sleep),
		Status:  statusWriter,
	}

	policy, err := cycle.ParseTimeSyncPolicy(t.TimeSyncPolicy)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctrl, err := cycle.New(cycle.Config{
		RefreshInterval: time.Duration(t.RefreshIntervalS) * time.Second,
		RenderGrace:     time.Duration(*t.RenderGraceS) * time.Second,
		SubRegionIndex:  t.SubRegionIndex,
		Endpoints: metrics.Endpoints{
			AggregateURL: t.Sources.AggregateURL,
			SplitURL:     t.Sources.SplitURL,
		},
		TimeSync: policy,
	}, dev, log.New(os.Stderr, "tracker: ", log.LstdFlags))
	if err != nil {
		log.Fatalf("cycle build failed: %v", err)
	}

	// --------------------
	// Wake / render / sleep until signalled
	// --------------------

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("tracker stopped: %v", err)
	}
}

// ---- builders ----

func buildPower(t config.TrackerConfig) (*power.Monitor, error) {
	var reader power.VoltageReader
	switch t.Battery.Kind {
	case config.BatteryModbus:
		g, err := pmodbus.New(pmodbus.Config{
			Endpoint: t.Battery.Endpoint,
			UnitID:   t.Battery.UnitID,
			Address:  t.Battery.Address,
			Timeout:  ms(t.Battery.TimeoutMs),
		})
		if err != nil {
			return nil, err
		}
		reader = g
	case config.BatterySysfs:
		reader = power.SysfsReader{Path: t.Battery.Path}
	case config.BatteryFixed:
		reader = power.FixedReader(t.Battery.Volts)
	default:
		return nil, fmt.Errorf("unknown battery kind %q", t.Battery.Kind)
	}

	var clock power.Clock
	switch t.Time.Source {
	case config.TimeNTP:
		clock = power.NewNTPClock(t.Time.NTPServer, ms(t.Time.TimeoutMs))
	case config.TimeSystem:
		clock = power.SystemClock{}
	default:
		return nil, fmt.Errorf("unknown time source %q", t.Time.Source)
	}

	loc := time.Local
	if t.Time.Timezone != "" {
		l, err := time.LoadLocation(t.Time.Timezone)
		if err != nil {
			return nil, fmt.Errorf("timezone %q: %w", t.Time.Timezone, err)
		}
		loc = l
	}

	return power.NewMonitor(reader, clock, t.BatteryLowV, loc), nil
}

func buildDisplay(d config.DisplayConfig) (display.Sink, error) {
	if d.Kind == config.DisplayFile {
		return display.FileSink{Path: d.Path}, nil
	}

	plan, err := writer.BuildPanelPlan(d)
	if err != nil {
		return nil, err
	}
	panel, err := writer.NewPanel(plan)
	if err != nil {
		return nil, err
	}
	return panel, nil
}

func buildSleep(s config.SleepConfig) sleep.Scheduler {
	if s.Mode == config.SleepRTCWake {
		return sleep.RTCWake{}
	}
	return sleep.Timer{}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
