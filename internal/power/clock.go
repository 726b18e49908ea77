// internal/power/clock.go
package power

import (
	"context"
	"errors"
	"time"

	"github.com/beevik/ntp"
)

// NTPClock asks one NTP server for the time.
// One query per call, no retries.
type NTPClock struct {
	Server  string
	Timeout time.Duration

	// query is swapped in tests.
	query func(host string, opt ntp.QueryOptions) (*ntp.Response, error)
}

// NewNTPClock creates a clock bound to server.
func NewNTPClock(server string, timeout time.Duration) *NTPClock {
	return &NTPClock{Server: server, Timeout: timeout, query: ntp.QueryWithOptions}
}

func (c *NTPClock) String() string { return "ntp:" + c.Server }

func (c *NTPClock) Now(ctx context.Context) (time.Time, error) {
	if c.Server == "" {
		return time.Time{}, errors.New("ntp: server required")
	}
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	timeout := c.Timeout
	if dl, ok := ctx.Deadline(); ok {
		left := time.Until(dl)
		if left <= 0 {
			// ntp treats a zero timeout as its default
			return time.Time{}, context.DeadlineExceeded
		}
		if timeout <= 0 || left < timeout {
			timeout = left
		}
	}

	q := c.query
	if q == nil {
		q = ntp.QueryWithOptions
	}

	resp, err := q(c.Server, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		return time.Time{}, err
	}
	if err := resp.Validate(); err != nil {
		return time.Time{}, err
	}
	return time.Now().Add(resp.ClockOffset), nil
}

// SystemClock trusts the host clock (already disciplined elsewhere).
type SystemClock struct{}

func (SystemClock) String() string { return "system" }

func (SystemClock) Now(context.Context) (time.Time, error) {
	return time.Now(), nil
}
