package snapshot

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"citymap.dev/arrivals/model"
)

type routeGroupJSON struct {
	RouteGroupName *string             `json:"route_group_name"`
	TripTimetables []tripTimetableJSON `json:"trip_timetables"`
}

type tripTimetableJSON struct {
	Route         *string             `json:"route"`
	TripName      *string             `json:"trip_name"`
	ShortTripName *string             `json:"short_trip_name"`
	EndsInGarage  *bool               `json:"ends_in_garage"`
	Timetable     []timetableEntryJSON `json:"timetable"`
	Stations      []tripStationJSON    `json:"stations"`
}

type timetableEntryJSON struct {
	Hour   *int `json:"hour"`
	Minute *int `json:"minute"`
}

type tripStationJSON struct {
	StationCode *string `json:"station_code"`
	Name        *string `json:"name"`
	StopNumber  *int    `json:"stop_number"`
}

func parseTimetables(raw []routeGroupJSON) ([]model.RouteGroupTimetable, error) {
	groups := make([]model.RouteGroupTimetable, 0, len(raw))
	for i, rg := range raw {
		if rg.RouteGroupName == nil {
			return nil, fmt.Errorf("missing route_group_name (timetable %d)", i)
		}

		trips := make([]model.TripTimetable, 0, len(rg.TripTimetables))
		for j, tt := range rg.TripTimetables {
			trip, err := parseTripTimetable(tt)
			if err != nil {
				return nil, errors.Wrapf(err, "route group '%s' trip %d", *rg.RouteGroupName, j)
			}
			trips = append(trips, trip)
		}

		groups = append(groups, model.RouteGroupTimetable{
			RouteGroupName: *rg.RouteGroupName,
			TripTimetables: trips,
		})
	}
	return groups, nil
}

func parseTripTimetable(raw tripTimetableJSON) (model.TripTimetable, error) {
	if raw.Route == nil {
		return model.TripTimetable{}, fmt.Errorf("missing route")
	}
	if raw.TripName == nil {
		return model.TripTimetable{}, fmt.Errorf("missing trip_name")
	}
	if raw.EndsInGarage == nil {
		return model.TripTimetable{}, fmt.Errorf("missing ends_in_garage")
	}

	shortName := ""
	if raw.ShortTripName != nil {
		shortName = *raw.ShortTripName
	}

	// Absent timetable and stations lists stay nil so a parsed
	// snapshot compares equal to the one that was marshaled.
	var entries []model.TimetableEntry
	if raw.Timetable != nil {
		entries = make([]model.TimetableEntry, 0, len(raw.Timetable))
	}
	for i, e := range raw.Timetable {
		if e.Hour == nil || e.Minute == nil {
			return model.TripTimetable{}, fmt.Errorf("missing hour or minute (entry %d)", i)
		}
		if *e.Hour < 1 || *e.Hour > 24 {
			return model.TripTimetable{}, fmt.Errorf("hour %d out of range (entry %d)", *e.Hour, i)
		}
		if *e.Minute < 0 || *e.Minute > 59 {
			return model.TripTimetable{}, fmt.Errorf("minute %d out of range (entry %d)", *e.Minute, i)
		}
		entries = append(entries, model.TimetableEntry{Hour: *e.Hour, Minute: *e.Minute})
	}

	// Entries are supposed to arrive sorted, but the upstream API
	// makes no promises.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Hour != entries[j].Hour {
			return entries[i].Hour < entries[j].Hour
		}
		return entries[i].Minute < entries[j].Minute
	})

	var stations []model.TripStation
	if raw.Stations != nil {
		stations = make([]model.TripStation, 0, len(raw.Stations))
	}
	for i, s := range raw.Stations {
		if s.StationCode == nil || s.Name == nil || s.StopNumber == nil {
			return model.TripTimetable{}, errors.Errorf("incomplete station entry %d", i)
		}
		stations = append(stations, model.TripStation{
			StationCode: *s.StationCode,
			Name:        *s.Name,
			StopNumber:  *s.StopNumber,
		})
	}

	return model.TripTimetable{
		Route:         *raw.Route,
		TripName:      *raw.TripName,
		ShortTripName: shortName,
		EndsInGarage:  *raw.EndsInGarage,
		Timetable:     entries,
		Stations:      stations,
	}, nil
}
