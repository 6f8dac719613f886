package arrivals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockConstructionClamps(t *testing.T) {
	for _, tc := range []struct {
		hour       int
		minute     float64
		wantHour   int
		wantMinute float64
	}{
		{10, 30, 10, 30},
		{0, 15, 1, 15},
		{-3, 15, 1, 15},
		{25, 15, 24, 15},
		{10, -1, 10, 0},
		{10, 75, 10, 59},
		{1, 0, 1, 0},
		{24, 59, 24, 59},
	} {
		got := NewTimeOfDay(tc.hour, tc.minute)
		assert.Equal(t, tc.wantHour, got.Hour, "hour for (%d, %f)", tc.hour, tc.minute)
		assert.Equal(t, tc.wantMinute, got.Minute, "minute for (%d, %f)", tc.hour, tc.minute)
	}
}

func TestClockTick(t *testing.T) {
	// Plain advance within an hour
	clock := NewTimeOfDay(10, 30)
	clock.Tick(15)
	assert.Equal(t, TimeOfDay{Hour: 10, Minute: 45}, clock)

	// Hour carry
	clock.Tick(20)
	assert.Equal(t, TimeOfDay{Hour: 11, Minute: 5}, clock)

	// A single tick crossing several hours
	clock = NewTimeOfDay(10, 30)
	clock.Tick(95)
	assert.Equal(t, TimeOfDay{Hour: 12, Minute: 5}, clock)

	// Fractional minutes accumulate
	clock = NewTimeOfDay(5, 0)
	for i := 0; i < 4; i++ {
		clock.Tick(0.25)
	}
	assert.Equal(t, 5, clock.Hour)
	assert.InDelta(t, 1.0, clock.Minute, 1e-9)
}

func TestClockServiceDayRollover(t *testing.T) {
	// The service day ends at hour 24 and wraps to hour 1, never 25.
	clock := NewTimeOfDay(24, 59)
	clock.Tick(1)
	assert.Equal(t, TimeOfDay{Hour: 1, Minute: 0}, clock)

	// Crossing the day boundary mid-delta
	clock = NewTimeOfDay(23, 30)
	clock.Tick(120)
	assert.Equal(t, TimeOfDay{Hour: 1, Minute: 30}, clock)
}

func TestClockElapsedSince(t *testing.T) {
	elapsed, err := NewTimeOfDay(10, 30).ElapsedSince(NewTimeOfDay(10, 0))
	require.NoError(t, err)
	assert.Equal(t, 30.0, elapsed)

	elapsed, err = NewTimeOfDay(12, 5).ElapsedSince(NewTimeOfDay(10, 45))
	require.NoError(t, err)
	assert.Equal(t, 80.0, elapsed)

	elapsed, err = NewTimeOfDay(7, 0).ElapsedSince(NewTimeOfDay(7, 0))
	require.NoError(t, err)
	assert.Equal(t, 0.0, elapsed)

	// The comparison does not wrap: 24:50 is chronologically after
	// 1:05, so this is a caller error, not a 15 minute gap.
	_, err = NewTimeOfDay(1, 5).ElapsedSince(NewTimeOfDay(24, 50))
	assert.ErrorIs(t, err, ErrTimeOrder)

	_, err = NewTimeOfDay(10, 0).ElapsedSince(NewTimeOfDay(10, 1))
	assert.ErrorIs(t, err, ErrTimeOrder)
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "5:07", NewTimeOfDay(5, 7.8).String())
	assert.Equal(t, "24:00", NewTimeOfDay(24, 0).String())
}
