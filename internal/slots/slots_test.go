// internal/slots/slots_test.go
package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/covid-panel/internal/metrics"
)

func TestVerify_TableIsConsistent(t *testing.T) {
	require.NoError(t, Verify())
}

func TestDataSlots_TwelveDistinctPairs(t *testing.T) {
	data := DataSlots()
	require.Len(t, data, 12)

	ids := map[ID]bool{}
	pairs := map[Binding]bool{}
	for _, s := range data {
		require.NotNil(t, s.Binding)
		assert.False(t, ids[s.ID], "slot %d listed twice", s.ID)
		assert.False(t, pairs[*s.Binding], "binding %v listed twice", *s.Binding)
		ids[s.ID] = true
		pairs[*s.Binding] = true
	}

	for _, region := range []metrics.RegionKind{metrics.RegionAggregate, metrics.RegionSubRegion} {
		for _, f := range metrics.Fields() {
			assert.True(t, pairs[Binding{Region: region, Field: f}], "%s/%s unbound", region, f)
		}
	}
}

func TestTable_Layout(t *testing.T) {
	tests := []struct {
		id     ID
		pos    Position
		font   Font
		region metrics.RegionKind
		field  metrics.Field
	}{
		{AggregateTotalCases, Position{120, 42}, FontBody, metrics.RegionAggregate, metrics.TotalCases},
		{AggregateNewCases, Position{120, 54}, FontBody, metrics.RegionAggregate, metrics.NewCases},
		{AggregateTotalVaccinations, Position{120, 66}, FontBody, metrics.RegionAggregate, metrics.TotalVaccinations},
		{AggregateNewVaccinations, Position{120, 78}, FontBody, metrics.RegionAggregate, metrics.NewVaccinations},
		{AggregateTotalVaccinated, Position{120, 90}, FontBody, metrics.RegionAggregate, metrics.TotalVaccinated},
		{AggregateNewVaccinated, Position{120, 102}, FontBody, metrics.RegionAggregate, metrics.NewVaccinated},
		{SubRegionTotalCases, Position{210, 42}, FontBody, metrics.RegionSubRegion, metrics.TotalCases},
		{SubRegionNewCases, Position{210, 54}, FontBody, metrics.RegionSubRegion, metrics.NewCases},
		{SubRegionTotalVaccinations, Position{210, 66}, FontBody, metrics.RegionSubRegion, metrics.TotalVaccinations},
		{SubRegionNewVaccinations, Position{210, 78}, FontBody, metrics.RegionSubRegion, metrics.NewVaccinations},
		{SubRegionTotalVaccinated, Position{210, 90}, FontBody, metrics.RegionSubRegion, metrics.TotalVaccinated},
		{SubRegionNewVaccinated, Position{210, 102}, FontBody, metrics.RegionSubRegion, metrics.NewVaccinated},
	}

	table := Table()
	for _, tt := range tests {
		s := table[tt.id]
		assert.Equal(t, tt.id, s.ID)
		assert.Equal(t, tt.pos, s.Pos, "slot %d", tt.id)
		assert.Equal(t, tt.font, s.Font, "slot %d", tt.id)
		require.NotNil(t, s.Binding, "slot %d", tt.id)
		assert.Equal(t, tt.region, s.Binding.Region, "slot %d", tt.id)
		assert.Equal(t, tt.field, s.Binding.Field, "slot %d", tt.id)
	}

	footer := table[LastUpdated]
	assert.Equal(t, ID(12), footer.ID)
	assert.Equal(t, Position{10, 118}, footer.Pos)
	assert.Equal(t, FontFooter, footer.Font)
	assert.Nil(t, footer.Binding)

	battery := table[BatteryStatus]
	assert.Equal(t, ID(13), battery.ID)
	assert.Equal(t, Position{235, 118}, battery.Pos)
	assert.Equal(t, FontFooter, battery.Font)
	assert.Nil(t, battery.Binding)
}

func TestTable_ReturnsCopy(t *testing.T) {
	a := Table()
	a[AggregateTotalCases].Binding.Field = metrics.NewVaccinated
	a[AggregateTotalCases].Pos.X = 0

	require.NoError(t, Verify())
	b := Table()
	assert.Equal(t, metrics.TotalCases, b[AggregateTotalCases].Binding.Field)
	assert.Equal(t, 120, b[AggregateTotalCases].Pos.X)
}

func TestVerify_DetectsDuplicateBinding(t *testing.T) {
	tbl := Table()
	tbl[SubRegionNewCases].Binding = &Binding{Region: metrics.RegionAggregate, Field: metrics.NewCases}

	assert.Error(t, verify(tbl))
}

func TestVerify_DetectsFooterBinding(t *testing.T) {
	tbl := Table()
	tbl[AggregateNewCases].Binding = nil
	tbl[BatteryStatus].Binding = &Binding{Region: metrics.RegionAggregate, Field: metrics.NewCases}

	assert.Error(t, verify(tbl))
}

func TestGet_OutOfRange(t *testing.T) {
	_, ok := Get(ID(Count))
	assert.False(t, ok)

	s, ok := Get(BatteryStatus)
	require.True(t, ok)
	assert.Equal(t, BatteryStatus, s.ID)
}
