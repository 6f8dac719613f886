package arrivals

import (
	"sort"

	"citymap.dev/arrivals/model"
)

// One scheduled bus arrival at a station. The location is copied from
// the owning station when the index is built, so playback data stays
// independent of the snapshot.
type BusArrival struct {
	Route    string
	TripName string
	Location model.GeographicalLocation
}

// All arrivals sharing one exact (hour, minute) timestamp. Within one
// generation cycle there is at most one ArrivalSet per distinct
// timestamp.
type ArrivalSet struct {
	Time     TimeOfDay
	Arrivals []BusArrival
}

type arrivalKey struct {
	hour   int
	minute int
}

// buildArrivalIndex flattens a snapshot's nested timetables into an
// ascending-time-ordered sequence of ArrivalSet. Arrivals at the same
// (hour, minute) are coalesced into one set; their relative order
// follows station traversal order. Deterministic given the same
// snapshot.
func buildArrivalIndex(snapshot *model.AllStationsSnapshot, includeGarage bool) []ArrivalSet {
	byTime := map[arrivalKey]int{}
	index := []ArrivalSet{}

	for _, station := range snapshot.Stations {
		for _, group := range station.Timetables {
			for _, trip := range group.TripTimetables {
				if trip.EndsInGarage && !includeGarage {
					continue
				}
				for _, entry := range trip.Timetable {
					arrival := BusArrival{
						Route:    trip.Route,
						TripName: trip.TripName,
						Location: station.Location,
					}

					key := arrivalKey{entry.Hour, entry.Minute}
					if i, found := byTime[key]; found {
						index[i].Arrivals = append(index[i].Arrivals, arrival)
					} else {
						byTime[key] = len(index)
						index = append(index, ArrivalSet{
							Time:     NewTimeOfDay(entry.Hour, float64(entry.Minute)),
							Arrivals: []BusArrival{arrival},
						})
					}
				}
			}
		}
	}

	sort.Slice(index, func(i, j int) bool {
		if index[i].Time.Hour != index[j].Time.Hour {
			return index[i].Time.Hour < index[j].Time.Hour
		}
		return index[i].Time.Minute < index[j].Time.Minute
	})

	return index
}
