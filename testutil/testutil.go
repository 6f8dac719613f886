package testutil

// Helpers for building snapshot fixtures in tests.

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"citymap.dev/arrivals/model"
)

// Trip builds a trip timetable with entries given as "H:MM" strings.
func Trip(t testing.TB, route string, tripName string, times ...string) model.TripTimetable {
	entries := make([]model.TimetableEntry, 0, len(times))
	for _, s := range times {
		parts := strings.Split(s, ":")
		require.Len(t, parts, 2, "time %q must be H:MM", s)

		hour, err := strconv.Atoi(parts[0])
		require.NoError(t, err)
		minute, err := strconv.Atoi(parts[1])
		require.NoError(t, err)

		entries = append(entries, model.TimetableEntry{Hour: hour, Minute: minute})
	}

	return model.TripTimetable{
		Route:     route,
		TripName:  tripName,
		Timetable: entries,
	}
}

// Station builds a station with all trips grouped under one route
// group.
func Station(code string, name string, lat float64, lon float64, trips ...model.TripTimetable) model.StationSnapshot {
	groups := []model.RouteGroupTimetable{}
	if len(trips) > 0 {
		groups = append(groups, model.RouteGroupTimetable{
			RouteGroupName: "1",
			TripTimetables: trips,
		})
	}

	return model.StationSnapshot{
		StationCode:       code,
		InternalStationID: 1000 + len(code),
		Name:              name,
		Location:          model.GeographicalLocation{Latitude: lat, Longitude: lon},
		Timetables:        groups,
	}
}

// Snapshot builds a full snapshot from stations.
func Snapshot(stations ...model.StationSnapshot) *model.AllStationsSnapshot {
	return &model.AllStationsSnapshot{
		CapturedAt: time.Date(2024, 3, 1, 4, 30, 0, 0, time.UTC),
		Stations:   stations,
	}
}

// SnapshotJSON marshals a snapshot to its wire format.
func SnapshotJSON(t testing.TB, snap *model.AllStationsSnapshot) []byte {
	body, err := json.Marshal(snap)
	require.NoError(t, err)
	return body
}
