// internal/power/monitor_test.go
package power

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t   time.Time
	err error
}

func (f fakeClock) Now(context.Context) (time.Time, error) { return f.t, f.err }

type failingReader struct{}

func (failingReader) ReadVolts(context.Context) (float64, error) {
	return 0, errors.New("i2c nack")
}

func TestIsLow_Boundary(t *testing.T) {
	tests := []struct {
		v   float64
		low bool
	}{
		{2.71, true},
		{3.2, true},
		{3.4999, true},
		{3.5, false},
		{3.6, false},
		{4.2, false},
	}

	m := NewMonitor(FixedReader(4), SystemClock{}, 0, nil)
	for _, tt := range tests {
		assert.Equal(t, tt.low, IsLow(tt.v), "IsLow(%v)", tt.v)
		assert.Equal(t, tt.low, m.IsLow(tt.v), "Monitor.IsLow(%v)", tt.v)
	}
	assert.Equal(t, DefaultLowThreshold, m.Threshold())
}

func TestMonitor_CustomThreshold(t *testing.T) {
	m := NewMonitor(FixedReader(3.6), SystemClock{}, 3.7, nil)
	v, err := m.BatteryVoltage(context.Background())
	require.NoError(t, err)
	assert.True(t, m.IsLow(v))
}

func TestMonitor_BatteryReadError(t *testing.T) {
	m := NewMonitor(failingReader{}, SystemClock{}, 0, nil)
	_, err := m.BatteryVoltage(context.Background())
	assert.ErrorContains(t, err, "i2c nack")
}

func TestMonitor_CurrentLocalTimeConvertsZone(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	utc := time.Date(2021, 2, 14, 20, 5, 0, 0, time.UTC)

	m := NewMonitor(FixedReader(4), fakeClock{t: utc}, 0, loc)
	got, err := m.CurrentLocalTime(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 15, got.Hour())
	assert.Equal(t, loc, got.Location())
}

func TestMonitor_TimeSyncFailureIsTyped(t *testing.T) {
	m := NewMonitor(FixedReader(4), fakeClock{err: errors.New("no route")}, 0, nil)

	_, err := m.CurrentLocalTime(context.Background())

	var tse *TimeSyncError
	require.ErrorAs(t, err, &tse)
	assert.Equal(t, uint16(30), tse.Code())
	assert.ErrorContains(t, err, "no route")
}

func TestNTPClock_QueryFailure(t *testing.T) {
	c := NewNTPClock("ntp.test", time.Second)
	var gotTimeout time.Duration
	c.query = func(host string, opt ntp.QueryOptions) (*ntp.Response, error) {
		gotTimeout = opt.Timeout
		return nil, errors.New("i/o timeout")
	}

	m := NewMonitor(FixedReader(4), c, 0, nil)
	_, err := m.CurrentLocalTime(context.Background())

	var tse *TimeSyncError
	require.ErrorAs(t, err, &tse)
	assert.Equal(t, "ntp:ntp.test", tse.Source)
	assert.Equal(t, time.Second, gotTimeout)
}

// spentDeadline reports an expired deadline before its timer has fired.
type spentDeadline struct{ context.Context }

func (spentDeadline) Deadline() (time.Time, bool) { return time.Now().Add(-time.Millisecond), true }

func TestNTPClock_SpentDeadlineSkipsQuery(t *testing.T) {
	c := NewNTPClock("ntp.test", time.Second)
	queried := false
	c.query = func(string, ntp.QueryOptions) (*ntp.Response, error) {
		queried = true
		return nil, errors.New("unexpected query")
	}

	_, err := c.Now(spentDeadline{context.Background()})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, queried)
}

func TestNTPClock_DeadlineShortensTimeout(t *testing.T) {
	c := NewNTPClock("ntp.test", time.Minute)
	var gotTimeout time.Duration
	c.query = func(_ string, opt ntp.QueryOptions) (*ntp.Response, error) {
		gotTimeout = opt.Timeout
		return nil, errors.New("i/o timeout")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _ = c.Now(ctx)

	assert.Greater(t, gotTimeout, time.Duration(0))
	assert.LessOrEqual(t, gotTimeout, 5*time.Second)
}

func TestNTPClock_RequiresServer(t *testing.T) {
	_, err := NewNTPClock("", time.Second).Now(context.Background())
	assert.Error(t, err)
}

func TestSysfsReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "voltage_now")
	require.NoError(t, os.WriteFile(path, []byte("3712000\n"), 0o644))

	v, err := SysfsReader{Path: path}.ReadVolts(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 3.712, v, 1e-9)

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	_, err = SysfsReader{Path: path}.ReadVolts(context.Background())
	assert.Error(t, err)

	_, err = SysfsReader{}.ReadVolts(context.Background())
	assert.Error(t, err)
}
