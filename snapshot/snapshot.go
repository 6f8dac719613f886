// Package snapshot parses station snapshot JSON documents into the
// typed data model. The schema is validated at the deserialization
// boundary: missing required fields produce a content error instead
// of zero values leaking into the playback engine.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spkg/bom"

	"citymap.dev/arrivals/model"
)

// Raw document shapes. Required fields are pointers so that absence
// is distinguishable from a zero value.

type documentJSON struct {
	CapturedAt     *int64        `json:"captured_at"`
	StationDetails []stationJSON `json:"station_details"`
}

type locationJSON struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type stationJSON struct {
	StationCode       *string          `json:"station_code"`
	InternalStationID *int             `json:"internal_station_id"`
	Name              *string          `json:"name"`
	Location          *locationJSON    `json:"location"`
	TripsOnStation    []string         `json:"trips_on_station"`
	Timetables        []routeGroupJSON `json:"timetables"`
}

// Parse decodes and validates a full snapshot document. Unicode BOMs
// are stripped if present (some capture tooling writes them).
func Parse(data []byte) (*model.AllStationsSnapshot, error) {
	decoder := json.NewDecoder(bom.NewReader(bytes.NewReader(data)))

	var doc documentJSON
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	if doc.CapturedAt == nil {
		return nil, fmt.Errorf("missing captured_at")
	}

	snapshot := &model.AllStationsSnapshot{
		CapturedAt: time.Unix(*doc.CapturedAt, 0).UTC(),
		Stations:   make([]model.StationSnapshot, 0, len(doc.StationDetails)),
	}

	seen := map[string]bool{}
	for i, raw := range doc.StationDetails {
		station, err := parseStation(raw)
		if err != nil {
			return nil, fmt.Errorf("station %d: %w", i, err)
		}
		if seen[station.StationCode] {
			return nil, fmt.Errorf("repeated station_code '%s'", station.StationCode)
		}
		seen[station.StationCode] = true
		snapshot.Stations = append(snapshot.Stations, station)
	}

	return snapshot, nil
}

func parseStation(raw stationJSON) (model.StationSnapshot, error) {
	if raw.StationCode == nil || *raw.StationCode == "" {
		return model.StationSnapshot{}, fmt.Errorf("missing station_code")
	}
	if raw.InternalStationID == nil {
		return model.StationSnapshot{}, fmt.Errorf("missing internal_station_id for station '%s'", *raw.StationCode)
	}
	if raw.Name == nil || *raw.Name == "" {
		return model.StationSnapshot{}, fmt.Errorf("missing name for station '%s'", *raw.StationCode)
	}
	if raw.Location == nil || raw.Location.Latitude == nil || raw.Location.Longitude == nil {
		return model.StationSnapshot{}, fmt.Errorf("missing location for station '%s'", *raw.StationCode)
	}

	timetables, err := parseTimetables(raw.Timetables)
	if err != nil {
		return model.StationSnapshot{}, fmt.Errorf("station '%s': %w", *raw.StationCode, err)
	}

	return model.StationSnapshot{
		StationCode:       *raw.StationCode,
		InternalStationID: *raw.InternalStationID,
		Name:              *raw.Name,
		Location: model.GeographicalLocation{
			Latitude:  *raw.Location.Latitude,
			Longitude: *raw.Location.Longitude,
		},
		TripsOnStation: raw.TripsOnStation,
		Timetables:     timetables,
	}, nil
}
