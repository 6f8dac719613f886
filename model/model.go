package model

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Holds all external facing types for station snapshots.
//
// A snapshot is a point-in-time capture of the city's stations and
// their timetables. It is loaded once and treated as immutable ground
// truth for a playback session.

// A latitude/longitude pair in degrees (WGS84).
type GeographicalLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Great-circle distance to another location, in kilometers.
func (l GeographicalLocation) DistanceTo(other GeographicalLocation) float64 {
	const earthRadiusKm = 6371

	aLatRad := l.Latitude * math.Pi / 180
	aLonRad := l.Longitude * math.Pi / 180
	bLatRad := other.Latitude * math.Pi / 180
	bLonRad := other.Longitude * math.Pi / 180
	deltaLat := aLatRad - bLatRad
	deltaLon := aLonRad - bLonRad

	a := math.Cos(aLatRad)*math.Cos(bLatRad)*math.Pow(math.Sin(deltaLon/2), 2) + math.Pow(math.Sin(deltaLat/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return c * earthRadiusKm
}

// One scheduled arrival time at a station. Hour is in [1,24], minute
// in [0,59]. This is a recurring daily time, not a calendar date.
type TimetableEntry struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (e TimetableEntry) String() string {
	return fmt.Sprintf("%d:%02d", e.Hour, e.Minute)
}

// A station visited by a trip, with its position along the route.
type TripStation struct {
	StationCode string `json:"station_code"`
	Name        string `json:"name"`
	StopNumber  int    `json:"stop_number"`
}

// One scheduled trip as seen from a single station: the trip's route
// and names, its scheduled arrival times at this station (ascending
// by hour, minute), and the stations the trip visits.
type TripTimetable struct {
	Route         string           `json:"route"`
	TripName      string           `json:"trip_name"`
	ShortTripName string           `json:"short_trip_name"`
	EndsInGarage  bool             `json:"ends_in_garage"`
	Timetable     []TimetableEntry `json:"timetable"`
	Stations      []TripStation    `json:"stations"`
}

// Groups trip timetables under a route group number (e.g. line "6").
type RouteGroupTimetable struct {
	RouteGroupName string          `json:"route_group_name"`
	TripTimetables []TripTimetable `json:"trip_timetables"`
}

// One station as captured at a point in time.
type StationSnapshot struct {
	StationCode       string                `json:"station_code"`
	InternalStationID int                   `json:"internal_station_id"`
	Name              string                `json:"name"`
	Location          GeographicalLocation  `json:"location"`
	TripsOnStation    []string              `json:"trips_on_station"`
	Timetables        []RouteGroupTimetable `json:"timetables"`
}

// The root snapshot container: a capture timestamp plus every
// station. Never mutated after construction.
type AllStationsSnapshot struct {
	CapturedAt time.Time
	Stations   []StationSnapshot
}

// On the wire, captured_at is unix seconds.
type allStationsSnapshotJSON struct {
	CapturedAt int64             `json:"captured_at"`
	Stations   []StationSnapshot `json:"station_details"`
}

func (s AllStationsSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(allStationsSnapshotJSON{
		CapturedAt: s.CapturedAt.Unix(),
		Stations:   s.Stations,
	})
}

func (s *AllStationsSnapshot) UnmarshalJSON(data []byte) error {
	var raw allStationsSnapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.CapturedAt = time.Unix(raw.CapturedAt, 0).UTC()
	s.Stations = raw.Stations
	return nil
}
