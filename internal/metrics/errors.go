// internal/metrics/errors.go
package metrics

import "fmt"

// FetchKind classifies a MetricSource failure.
type FetchKind uint8

const (
	FetchNetwork FetchKind = iota
	FetchDecode
	FetchTypeMismatch
)

func (k FetchKind) String() string {
	switch k {
	case FetchNetwork:
		return "network"
	case FetchDecode:
		return "decode"
	case FetchTypeMismatch:
		return "type mismatch"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// FetchError is returned by Source.Fetch and Decode.
type FetchError struct {
	Kind     FetchKind
	Selector Selector
	Field    string // empty unless a single field is at fault
	Err      error
}

func (e *FetchError) Error() string {
	where := e.Selector.String()
	if e.Field != "" {
		where += "." + e.Field
	}
	return fmt.Sprintf("metrics: fetch %s: %s: %v", where, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Code is the status-block error code (20..22).
func (e *FetchError) Code() uint16 { return 20 + uint16(e.Kind) }
