package arrivals

import (
	"errors"

	"citymap.dev/arrivals/model"
)

var ErrNoStations = errors.New("snapshot contains no stations")

// Locator finds the station closest to a geographic point. A linear
// scan over the snapshot's stations; no spatial index, which is fine
// for station counts in the low hundreds.
type Locator struct {
	snapshot *model.AllStationsSnapshot
}

func NewLocator(snapshot *model.AllStationsSnapshot) *Locator {
	return &Locator{snapshot: snapshot}
}

// Nearest returns the closest station and its great-circle distance
// in kilometers. Ties go to the first station encountered. Returns
// ErrNoStations for an empty snapshot.
func (l *Locator) Nearest(location model.GeographicalLocation) (*model.StationSnapshot, float64, error) {
	if len(l.snapshot.Stations) == 0 {
		return nil, 0, ErrNoStations
	}

	best := &l.snapshot.Stations[0]
	bestDistance := location.DistanceTo(best.Location)
	for i := 1; i < len(l.snapshot.Stations); i++ {
		station := &l.snapshot.Stations[i]
		if d := location.DistanceTo(station.Location); d < bestDistance {
			best = station
			bestDistance = d
		}
	}

	return best, bestDistance, nil
}
