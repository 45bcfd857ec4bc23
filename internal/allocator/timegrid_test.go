package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridDefaultWindow(t *testing.T) {
	grid, err := NewGrid(GridConfig{})
	require.NoError(t, err)
	require.Equal(t, 11, grid.Len())

	slots := grid.Slots()
	assert.Equal(t, "08:30", slots[0].Start)
	assert.Equal(t, "09:15", slots[0].End)
	assert.Equal(t, "16:00", slots[10].Start)
	assert.Equal(t, "16:45", slots[10].End)
}

func TestNewGridSlotsAreContiguous(t *testing.T) {
	grid, err := NewGrid(GridConfig{})
	require.NoError(t, err)
	slots := grid.Slots()
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].End, slots[i].Start)
	}
}

func TestNewGridIsDeterministic(t *testing.T) {
	first, err := NewGrid(GridConfig{})
	require.NoError(t, err)
	second, err := NewGrid(GridConfig{})
	require.NoError(t, err)
	assert.Equal(t, first.Slots(), second.Slots())
}

func TestNewGridCustomWindow(t *testing.T) {
	grid, err := NewGrid(GridConfig{Open: "09:00", Close: "12:00", SlotWidth: 60})
	require.NoError(t, err)
	require.Equal(t, 3, grid.Len())
	assert.Equal(t, "11:00", grid.Slots()[2].Start)
}

func TestNewGridDropsPartialTrailingSlot(t *testing.T) {
	grid, err := NewGrid(GridConfig{Open: "09:00", Close: "10:30", SlotWidth: 45})
	require.NoError(t, err)
	require.Equal(t, 2, grid.Len())
	assert.Equal(t, "10:30", grid.Slots()[1].End)
}

func TestNewGridRejectsInvertedWindow(t *testing.T) {
	_, err := NewGrid(GridConfig{Open: "17:00", Close: "08:30"})
	assert.Error(t, err)
}

func TestNewGridRejectsWindowTooNarrow(t *testing.T) {
	_, err := NewGrid(GridConfig{Open: "08:30", Close: "09:00", SlotWidth: 45})
	assert.Error(t, err)
}

func TestGridSlotAt(t *testing.T) {
	grid, err := NewGrid(GridConfig{})
	require.NoError(t, err)

	slot, idx, ok := grid.SlotAt("10:00")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.Equal(t, "10:45", slot.End)

	_, _, ok = grid.SlotAt("10:15")
	assert.False(t, ok)
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, 510, minutes)

	for _, bad := range []string{"", "8h30", "24:00", "12:60", "-1:00"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "clock %q", bad)
	}
}

func TestFormatClockRoundTrips(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(545))
	minutes, err := ParseClock(FormatClock(960))
	require.NoError(t, err)
	assert.Equal(t, 960, minutes)
}

func TestAllDaysOrdering(t *testing.T) {
	days := AllDays()
	require.Len(t, days, 7)
	assert.Equal(t, Monday, days[0])
	assert.Equal(t, Friday, days[4])
	assert.Equal(t, Saturday, days[5])
	assert.Equal(t, Sunday, days[6])
}

func TestNormalizeDay(t *testing.T) {
	assert.Equal(t, Monday, NormalizeDay(" monday "))
	assert.True(t, IsValidDay(NormalizeDay("Sunday")))
	assert.False(t, IsValidDay("MOONDAY"))
}
