package resolution

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds_UTC(t *testing.T) {
	at := time.Date(2024, 3, 14, 10, 30, 0, 0, time.UTC)

	start, end := dayBounds(at, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), end)
}

func TestDayBounds_ReferenceZoneShiftsTheDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 02:00 UTC is still the previous evening on the US east coast.
	at := time.Date(2024, 3, 14, 2, 0, 0, 0, time.UTC)

	start, end := dayBounds(at, loc)

	assert.Equal(t, time.Date(2024, 3, 13, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, loc), end)
}

func TestDayBounds_ContainsTheInstant(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	at := time.Date(2024, 6, 1, 23, 59, 0, 0, loc)

	start, end := dayBounds(at, loc)

	assert.False(t, at.Before(start))
	assert.True(t, at.Before(end))
}
