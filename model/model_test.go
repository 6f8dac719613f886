package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceTo(t *testing.T) {
	center := GeographicalLocation{Latitude: 46.05, Longitude: 14.50}

	assert.Equal(t, 0.0, center.DistanceTo(center))

	// One hundredth of a degree of latitude is about 1.11 km.
	north := GeographicalLocation{Latitude: 46.06, Longitude: 14.50}
	assert.InDelta(t, 1.112, center.DistanceTo(north), 0.01)

	// Symmetric
	assert.Equal(t, center.DistanceTo(north), north.DistanceTo(center))
}

func TestTimetableEntryString(t *testing.T) {
	assert.Equal(t, "5:07", TimetableEntry{Hour: 5, Minute: 7}.String())
	assert.Equal(t, "24:00", TimetableEntry{Hour: 24, Minute: 0}.String())
}

func TestSnapshotJSONCapturedAt(t *testing.T) {
	snap := AllStationsSnapshot{
		CapturedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		Stations:   []StationSnapshot{},
	}

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"captured_at":1709280000`)

	var parsed AllStationsSnapshot
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, snap.CapturedAt, parsed.CapturedAt)
}
