// internal/slots/slots.go
package slots

import (
	"fmt"

	"github.com/tamzrod/covid-panel/internal/metrics"
)

// Screen layout constants.
// These values define the panel layout and MUST NOT be configurable.
// The display addresses slots by index only.

// Count is the fixed number of slots on the panel.
const Count = 14

// ID is a slot index.
type ID uint8

// ---- aggregate column (x=120) ----

const (
	AggregateTotalCases ID = iota
	AggregateNewCases
	AggregateTotalVaccinations
	AggregateNewVaccinations
	AggregateTotalVaccinated
	AggregateNewVaccinated

	// ---- sub-region column (x=210) ----

	SubRegionTotalCases
	SubRegionNewCases
	SubRegionTotalVaccinations
	SubRegionNewVaccinations
	SubRegionTotalVaccinated
	SubRegionNewVaccinated

	// ---- footer ----

	LastUpdated
	BatteryStatus
)

// Font is a font reference understood by the display.
type Font string

const (
	FontBody   Font = "NuSans-12.bdf"
	FontFooter Font = "NuSans-10.bdf"
)

// Position is the top-left text anchor in panel pixels.
type Position struct {
	X int
	Y int
}

// Binding ties a data slot to one field of one region's record.
type Binding struct {
	Region metrics.RegionKind
	Field  metrics.Field
}

// Slot is one fixed screen region.
// Binding is nil for the two footer slots.
type Slot struct {
	ID      ID
	Pos     Position
	Font    Font
	Binding *Binding
	Label   string // rendered in front of the value
}

// LowBatteryText is the only text the battery slot ever shows.
const LowBatteryText = "Battery low"

// LastUpdatedLabel prefixes the timestamp.
const LastUpdatedLabel = "Last updated: "

var rowsY = [metrics.FieldCount]int{42, 54, 66, 78, 90, 102}

const (
	aggregateX = 120
	subRegionX = 210
)

var table = buildTable()

func buildTable() [Count]Slot {
	var t [Count]Slot

	for i, f := range metrics.Fields() {
		agg := ID(i)
		sub := ID(i + metrics.FieldCount)

		t[agg] = Slot{
			ID:      agg,
			Pos:     Position{X: aggregateX, Y: rowsY[i]},
			Font:    FontBody,
			Binding: &Binding{Region: metrics.RegionAggregate, Field: f},
		}
		t[sub] = Slot{
			ID:      sub,
			Pos:     Position{X: subRegionX, Y: rowsY[i]},
			Font:    FontBody,
			Binding: &Binding{Region: metrics.RegionSubRegion, Field: f},
		}
	}

	t[LastUpdated] = Slot{ID: LastUpdated, Pos: Position{X: 10, Y: 118}, Font: FontFooter, Label: LastUpdatedLabel}
	t[BatteryStatus] = Slot{ID: BatteryStatus, Pos: Position{X: 235, Y: 118}, Font: FontFooter}

	return t
}

// Table returns a copy of the full slot table indexed by ID.
func Table() [Count]Slot {
	out := table
	for i := range out {
		if out[i].Binding != nil {
			b := *out[i].Binding
			out[i].Binding = &b
		}
	}
	return out
}

// Get returns the slot for id.
func Get(id ID) (Slot, bool) {
	if int(id) >= Count {
		return Slot{}, false
	}
	return Table()[id], true
}

// ForRegion returns the data slots bound to region, in field order.
func ForRegion(region metrics.RegionKind) []Slot {
	out := make([]Slot, 0, metrics.FieldCount)
	for _, s := range Table() {
		if s.Binding != nil && s.Binding.Region == region {
			out = append(out, s)
		}
	}
	return out
}

// DataSlots returns all data slots (aggregate first, then sub-region).
func DataSlots() []Slot {
	return append(ForRegion(metrics.RegionAggregate), ForRegion(metrics.RegionSubRegion)...)
}

// Verify checks the slot table contract:
// every (region, field) pair is bound exactly once, footer slots carry no
// binding, and slot indices match their table position.
func Verify() error {
	return verify(Table())
}

func verify(t [Count]Slot) error {
	seen := make(map[Binding]ID)
	data := 0

	for i, s := range t {
		if s.ID != ID(i) {
			return fmt.Errorf("slots: entry %d carries id %d", i, s.ID)
		}
		if s.Binding == nil {
			continue
		}
		if prev, ok := seen[*s.Binding]; ok {
			return fmt.Errorf("slots: %s/%s bound to both %d and %d", s.Binding.Region, s.Binding.Field, prev, s.ID)
		}
		seen[*s.Binding] = s.ID
		data++
	}

	if data != 2*metrics.FieldCount {
		return fmt.Errorf("slots: %d data slots, want %d", data, 2*metrics.FieldCount)
	}
	if t[LastUpdated].Binding != nil || t[BatteryStatus].Binding != nil {
		return fmt.Errorf("slots: footer slots must not bind data")
	}
	return nil
}
