// internal/sleep/scheduler.go
package sleep

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// Directive is the sleep the cycle commits to. One value per cycle.
type Directive struct {
	Duration time.Duration
}

// Scheduler suspends execution for a directive's duration.
// When Suspend returns, the caller starts a fresh cycle from Idle.
type Scheduler interface {
	Suspend(ctx context.Context, d Directive) error
}

// Timer blocks in-process. Cancelling ctx ends the sleep early.
type Timer struct {
	// after is swapped in tests.
	after func(time.Duration) <-chan time.Time
}

func (t Timer) Suspend(ctx context.Context, d Directive) error {
	if d.Duration <= 0 {
		return nil
	}
	after := t.after
	if after == nil {
		after = time.After
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-after(d.Duration):
		return nil
	}
}

// RTCWake arms the RTC alarm and suspends the host to RAM via rtcwake(8).
// The call returns after the host resumes.
type RTCWake struct {
	Binary string // default "rtcwake"
	Mode   string // default "mem"

	run func(ctx context.Context, name string, args ...string) error
}

func (r RTCWake) Suspend(ctx context.Context, d Directive) error {
	secs := int64(d.Duration / time.Second)
	if secs <= 0 {
		return errors.New("rtcwake: duration must be at least 1s")
	}

	bin := r.Binary
	if bin == "" {
		bin = "rtcwake"
	}
	mode := r.Mode
	if mode == "" {
		mode = "mem"
	}

	run := r.run
	if run == nil {
		run = runCommand
	}

	if err := run(ctx, bin, "-m", mode, "-s", strconv.FormatInt(secs, 10)); err != nil {
		return fmt.Errorf("rtcwake: %w", err)
	}
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%v: %s", err, out)
	}
	return nil
}
