// internal/metrics/source.go
package metrics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Getter performs one blocking HTTP GET and returns the response body.
// Any transport failure (DNS, TLS, timeout, non-2xx) is returned as error.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Endpoints are the two feed URLs.
type Endpoints struct {
	AggregateURL string
	SplitURL     string
}

// Source fetches and decodes one feed element per call.
// No retries: the next scheduled wake is the retry.
type Source struct {
	ep  Endpoints
	get Getter
}

// NewSource binds feed URLs to a transport.
func NewSource(ep Endpoints, get Getter) *Source {
	return &Source{ep: ep, get: get}
}

// Fetch issues exactly one GET for sel and decodes the selected element.
func (s *Source) Fetch(ctx context.Context, sel Selector) (Record, error) {
	if s == nil || s.get == nil {
		return Record{}, &FetchError{Kind: FetchNetwork, Selector: sel, Err: errors.New("no transport")}
	}

	url := s.ep.AggregateURL
	if sel.Kind == RegionSubRegion {
		url = s.ep.SplitURL
	}

	body, err := s.get.Get(ctx, url)
	if err != nil {
		return Record{}, &FetchError{Kind: FetchNetwork, Selector: sel, Err: err}
	}

	rec, err := Decode(body, sel.Index)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			fe.Selector = sel
			return Record{}, fe
		}
		return Record{}, &FetchError{Kind: FetchDecode, Selector: sel, Err: err}
	}
	return rec, nil
}

// Decode extracts element index of the top-level "data" array.
// Errors are *FetchError with Kind Decode or TypeMismatch.
func Decode(body []byte, index int) (Record, error) {
	if !gjson.ValidBytes(body) {
		return Record{}, &FetchError{Kind: FetchDecode, Err: errors.New("body is not valid JSON")}
	}
	if index < 0 {
		return Record{}, &FetchError{Kind: FetchDecode, Err: fmt.Errorf("negative element index %d", index)}
	}

	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return Record{}, &FetchError{Kind: FetchDecode, Err: errors.New(`missing "data" array`)}
	}

	elem := data.Get(strconv.Itoa(index))
	if !elem.Exists() || !elem.IsObject() {
		return Record{}, &FetchError{Kind: FetchDecode, Err: fmt.Errorf("data[%d] missing", index)}
	}

	var values [FieldCount]int64
	for _, f := range Fields() {
		v := elem.Get(f.Key())
		if !v.Exists() || v.Type == gjson.Null {
			return Record{}, &FetchError{Kind: FetchDecode, Field: f.Key(), Err: errors.New("field missing")}
		}

		n, err := coerce(v, f.Delta())
		if err != nil {
			return Record{}, &FetchError{Kind: FetchTypeMismatch, Field: f.Key(), Err: err}
		}
		values[f] = n
	}

	return NewRecord(values), nil
}

// coerce converts a JSON number or numeric string into an int64.
// Integral floats are accepted; fractional values are not. Negatives are
// rejected unless signed is set.
func coerce(v gjson.Result, signed bool) (int64, error) {
	var text string
	switch v.Type {
	case gjson.Number:
		text = v.Raw
	case gjson.String:
		text = strings.TrimSpace(v.Str)
	default:
		return 0, fmt.Errorf("unexpected JSON %s %s", v.Type, v.Raw)
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%q is not a number", text)
		}
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("%q is not integral", text)
		}
		// float64(MaxInt64) rounds up to 2^63, which int64 cannot hold
		if f >= math.MaxInt64 || f < math.MinInt64 {
			return 0, fmt.Errorf("%q out of range", text)
		}
		n = int64(f)
	}

	if n < 0 && !signed {
		return 0, fmt.Errorf("%q is negative", text)
	}
	return n, nil
}
