package arrivals

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"citymap.dev/arrivals/model"
)

// DayArrivals returns the full day's arrival sets for a snapshot, in
// ascending time order, without constructing a playback. Useful for
// exports and inspection.
func DayArrivals(snapshot *model.AllStationsSnapshot, opts PlaybackOptions) []ArrivalSet {
	return buildArrivalIndex(snapshot, !opts.ExcludeGarageTrips)
}

type arrivalLogRow struct {
	Time      string  `csv:"time"`
	Route     string  `csv:"route"`
	TripName  string  `csv:"trip_name"`
	Latitude  float64 `csv:"latitude"`
	Longitude float64 `csv:"longitude"`
}

// WriteArrivalLog writes arrival sets as a CSV log, one row per
// arrival.
func WriteArrivalLog(w io.Writer, sets []ArrivalSet) error {
	rows := []arrivalLogRow{}
	for _, set := range sets {
		for _, arrival := range set.Arrivals {
			rows = append(rows, arrivalLogRow{
				Time:      set.Time.String(),
				Route:     arrival.Route,
				TripName:  arrival.TripName,
				Latitude:  arrival.Location.Latitude,
				Longitude: arrival.Location.Longitude,
			})
		}
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("marshaling arrival log: %w", err)
	}

	return nil
}
