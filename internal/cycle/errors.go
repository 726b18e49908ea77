// internal/cycle/errors.go
package cycle

import (
	"errors"

	"github.com/tamzrod/covid-panel/internal/display"
	"github.com/tamzrod/covid-panel/internal/metrics"
	"github.com/tamzrod/covid-panel/internal/network"
	"github.com/tamzrod/covid-panel/internal/power"
)

// describe names the failure class for logs.
func describe(err error) string {
	var ce *network.ConnectivityError
	var fe *metrics.FetchError
	var te *power.TimeSyncError
	var re *display.RenderError

	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &ce):
		return "connectivity/" + ce.Kind.String()
	case errors.As(err, &fe):
		return "fetch/" + fe.Kind.String()
	case errors.As(err, &te):
		return "timesync"
	case errors.As(err, &re):
		return "render"
	default:
		return "unclassified"
	}
}

// errorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns 1 (generic error).
func errorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return 1
}
