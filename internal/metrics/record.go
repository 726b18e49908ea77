// internal/metrics/record.go
package metrics

import "fmt"

// Field identifies one of the six counters carried by a Record.
type Field uint8

const (
	TotalCases Field = iota
	NewCases
	TotalVaccinations
	NewVaccinations
	TotalVaccinated
	NewVaccinated
)

// FieldCount is the fixed number of counters per Record.
const FieldCount = 6

// Fields returns all fields in display order.
func Fields() [FieldCount]Field {
	return [FieldCount]Field{
		TotalCases,
		NewCases,
		TotalVaccinations,
		NewVaccinations,
		TotalVaccinated,
		NewVaccinated,
	}
}

// Key is the JSON member name of the field inside one feed element.
func (f Field) Key() string {
	switch f {
	case TotalCases:
		return "total_cases"
	case NewCases:
		return "change_cases"
	case TotalVaccinations:
		return "total_vaccinations"
	case NewVaccinations:
		return "change_vaccinations"
	case TotalVaccinated:
		return "total_vaccinated"
	case NewVaccinated:
		return "change_vaccinated"
	default:
		return ""
	}
}

// Delta reports whether f is a day-over-day change. Feed corrections make
// these go negative; totals never do.
func (f Field) Delta() bool {
	return f == NewCases || f == NewVaccinations || f == NewVaccinated
}

func (f Field) String() string {
	if k := f.Key(); k != "" {
		return k
	}
	return fmt.Sprintf("field(%d)", uint8(f))
}

// Record is one decoded feed element.
// Values are set once by the decoder; there are no setters.
type Record struct {
	values [FieldCount]int64
}

// NewRecord builds a Record from values ordered as Fields().
func NewRecord(values [FieldCount]int64) Record {
	return Record{values: values}
}

// Get returns the counter for f. Unknown fields read as 0.
func (r Record) Get(f Field) int64 {
	if int(f) >= FieldCount {
		return 0
	}
	return r.values[f]
}

// Values returns a copy of all counters ordered as Fields().
func (r Record) Values() [FieldCount]int64 {
	return r.values
}

// ---- region selection ----

// RegionKind tells which feed a Selector consults.
type RegionKind uint8

const (
	RegionAggregate RegionKind = iota
	RegionSubRegion
)

func (k RegionKind) String() string {
	switch k {
	case RegionAggregate:
		return "aggregate"
	case RegionSubRegion:
		return "subregion"
	default:
		return fmt.Sprintf("region(%d)", uint8(k))
	}
}

// Selector picks the feed and the array element to read.
type Selector struct {
	Kind  RegionKind
	Index int
}

// Aggregate selects element 0 of the whole-population summary feed.
func Aggregate() Selector {
	return Selector{Kind: RegionAggregate, Index: 0}
}

// SubRegion selects element i of the split-by-region feed.
func SubRegion(i int) Selector {
	return Selector{Kind: RegionSubRegion, Index: i}
}

func (s Selector) String() string {
	if s.Kind == RegionAggregate {
		return "aggregate"
	}
	return fmt.Sprintf("subregion[%d]", s.Index)
}
