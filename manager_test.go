package arrivals

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citymap.dev/arrivals/downloader"
	"citymap.dev/arrivals/lpp"
	"citymap.dev/arrivals/storage"
)

// Serves canned documents keyed by URL.
type cannedDownloader struct {
	responses map[string]string
}

func (d *cannedDownloader) Get(
	ctx context.Context,
	url string,
	headers map[string]string,
	options downloader.GetOptions,
) ([]byte, error) {
	body, found := d.responses[url]
	if !found {
		return nil, fmt.Errorf("no canned response for %s", url)
	}
	return []byte(body), nil
}

func managerWithCannedAPI(t *testing.T) *Manager {
	canned := &cannedDownloader{
		responses: map[string]string{
			"https://api.test/station-details?show-subroutes=1": `{
				"success": true,
				"data": [
					{
						"int_id": 3307,
						"latitude": 46.061,
						"longitude": 14.513,
						"name": "ZELEZNA",
						"ref_id": "201011",
						"route_groups_on_station": ["6"]
					}
				]
			}`,
			"https://api.test/station/timetable?next-hours=10&previous-hours=14&route-group-number=6&station-code=201011": `{
				"success": true,
				"data": {
					"station": {"ref_id": "201011", "name": "ZELEZNA"},
					"route_groups": [
						{
							"route_group_number": "6",
							"routes": [
								{
									"timetable": [{"hour": 5, "minutes": [0, 30]}],
									"stations": [{"ref_id": "201011", "name": "ZELEZNA", "order_no": 1}],
									"name": "DOLGI MOST",
									"parent_name": "CRNUCE - DOLGI MOST",
									"group_name": "6",
									"route_number_prefix": "",
									"route_number_suffix": "",
									"is_garage": false
								}
							]
						}
					]
				}
			}`,
		},
	}

	client := lpp.NewClient("https://api.test/")
	client.Downloader = canned
	client.TimeNow = func() time.Time {
		return time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC)
	}

	return NewManager(storage.NewMemoryStorage(), client)
}

func TestManagerRecordAndLoad(t *testing.T) {
	m := managerWithCannedAPI(t)

	metadata, err := m.Record(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, metadata.StationCount)
	assert.Equal(t, "https://api.test/", metadata.Source)
	assert.Len(t, metadata.SHA256, 64)

	snap, err := m.LoadSnapshot(time.Now())
	require.NoError(t, err)
	require.Len(t, snap.Stations, 1)

	station := snap.Stations[0]
	assert.Equal(t, "201011", station.StationCode)
	assert.Equal(t, 3307, station.InternalStationID)
	assert.Equal(t, "ZELEZNA", station.Name)
	require.Len(t, station.Timetables, 1)
	require.Len(t, station.Timetables[0].TripTimetables, 1)

	trip := station.Timetables[0].TripTimetables[0]
	assert.Equal(t, "6", trip.Route)
	assert.Equal(t, "CRNUCE - DOLGI MOST", trip.TripName)
	assert.Len(t, trip.Timetable, 2)

	// The archived snapshot drives playback directly.
	p := NewPlayback(snap, NewTimeOfDay(4, 59))
	sets := p.Tick(1)
	require.Len(t, sets, 1)
	assert.Equal(t, NewTimeOfDay(5, 0), sets[0].Time)
}

func TestManagerLoadSnapshotEmpty(t *testing.T) {
	m := NewManager(storage.NewMemoryStorage(), nil)

	_, err := m.LoadSnapshot(time.Now())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestManagerLoadSnapshotRespectsCaptureTime(t *testing.T) {
	m := managerWithCannedAPI(t)

	_, err := m.Record(context.Background())
	require.NoError(t, err)

	// Asking for a snapshot from before the capture finds nothing.
	_, err = m.LoadSnapshot(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNoSnapshot)
}
