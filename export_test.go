package arrivals

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citymap.dev/arrivals/testutil"
)

func TestWriteArrivalLog(t *testing.T) {
	snap := testutil.Snapshot(
		testutil.Station("1001", "Center", 46.05, 14.5,
			testutil.Trip(t, "6", "CRNUCE - DOLGI MOST", "8:15", "5:00")),
	)

	buf := &bytes.Buffer{}
	err := WriteArrivalLog(buf, DayArrivals(snap, PlaybackOptions{}))
	require.NoError(t, err)

	assert.Equal(t,
		"time,route,trip_name,latitude,longitude\n"+
			"5:00,6,CRNUCE - DOLGI MOST,46.05,14.5\n"+
			"8:15,6,CRNUCE - DOLGI MOST,46.05,14.5\n",
		buf.String())
}

func TestDayArrivalsExcludeGarageTrips(t *testing.T) {
	garage := testutil.Trip(t, "6", "DOLGI MOST - GARAZA", "23:50")
	garage.EndsInGarage = true

	snap := testutil.Snapshot(
		testutil.Station("1001", "Center", 46.05, 14.5,
			testutil.Trip(t, "6", "CRNUCE - DOLGI MOST", "8:15"),
			garage),
	)

	assert.Len(t, DayArrivals(snap, PlaybackOptions{}), 2)
	assert.Len(t, DayArrivals(snap, PlaybackOptions{ExcludeGarageTrips: true}), 1)
}
