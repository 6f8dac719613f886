// Package lpp is a client for the LPP-style city bus API. It fetches
// station details and per-station timetables and assembles them into
// a full station snapshot.
package lpp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"citymap.dev/arrivals/downloader"
	"citymap.dev/arrivals/model"
)

const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxSize     = 8 << 20 // 8 MB
	DefaultConcurrency = 8
)

type Client struct {
	// Base API URL, e.g. "https://data.lpp.si/api/".
	BaseURL   string
	UserAgent string

	Timeout     time.Duration
	MaxSize     int
	Concurrency int

	// When non-zero, responses are cached by the Downloader for this
	// long. Useful with the filesystem downloader for offline work.
	CacheTTL time.Duration

	Downloader downloader.Downloader
	TimeNow    func() time.Time
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:     baseURL,
		UserAgent:   "arrivals-recorder/1.0",
		Timeout:     DefaultTimeout,
		MaxSize:     DefaultMaxSize,
		Concurrency: DefaultConcurrency,
		Downloader:  downloader.NewMemory(),
		TimeNow:     time.Now,
	}
}

// Raw API response shapes. Every endpoint wraps its payload in an
// envelope with a success flag.

type stationDetailsResponse struct {
	Success bool            `json:"success"`
	Data    []StationDetail `json:"data"`
}

type StationDetail struct {
	IntID       int      `json:"int_id"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Name        string   `json:"name"`
	RefID       string   `json:"ref_id"`
	RouteGroups []string `json:"route_groups_on_station"`
}

type timetableResponse struct {
	Success bool         `json:"success"`
	Data    timetableRaw `json:"data"`
}

type timetableRaw struct {
	Station     timetableStationRaw   `json:"station"`
	RouteGroups []timetableRouteGroup `json:"route_groups"`
}

type timetableStationRaw struct {
	RefID string `json:"ref_id"`
	Name  string `json:"name"`
}

type timetableRouteGroup struct {
	RouteGroupNumber string           `json:"route_group_number"`
	Routes           []timetableRoute `json:"routes"`
}

type timetableRoute struct {
	Timetable    []timetableHour    `json:"timetable"`
	Stations     []timetableStation `json:"stations"`
	Name         string             `json:"name"`
	ParentName   string             `json:"parent_name"`
	GroupName    string             `json:"group_name"`
	NumberPrefix string             `json:"route_number_prefix"`
	NumberSuffix string             `json:"route_number_suffix"`
	IsGarage     bool               `json:"is_garage"`
}

// One hour's arrivals: hour=13, minutes=[11,52] means arrivals at
// 13:11 and 13:52.
type timetableHour struct {
	Hour    int   `json:"hour"`
	Minutes []int `json:"minutes"`
}

type timetableStation struct {
	RefID   string `json:"ref_id"`
	Name    string `json:"name"`
	OrderNo int    `json:"order_no"`
}

func (c *Client) get(ctx context.Context, u string, out interface{}) error {
	body, err := c.Downloader.Get(ctx, u, map[string]string{"User-Agent": c.UserAgent}, downloader.GetOptions{
		Timeout:  c.Timeout,
		MaxSize:  c.MaxSize,
		Cache:    c.CacheTTL > 0,
		CacheTTL: c.CacheTTL,
	})
	if err != nil {
		return fmt.Errorf("downloading: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}

	return nil
}

func (c *Client) stationDetailsURL() (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	u = u.JoinPath("station-details")

	q := u.Query()
	q.Set("show-subroutes", "1")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// The timetable endpoint takes a window of hours around "now". To
// capture the entire service day, next-hours covers everything up to
// the current hour and previous-hours everything after it.
func (c *Client) timetableURL(stationCode string, routeGroups []string) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	u = u.JoinPath("station", "timetable")

	currentHour := c.TimeNow().Hour()

	q := u.Query()
	q.Set("station-code", stationCode)
	q.Set("next-hours", fmt.Sprintf("%d", currentHour))
	q.Set("previous-hours", fmt.Sprintf("%d", 24-currentHour))
	for _, rg := range routeGroups {
		q.Add("route-group-number", rg)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// StationDetails fetches the list of all stations, without
// timetables.
func (c *Client) StationDetails(ctx context.Context) ([]StationDetail, error) {
	u, err := c.stationDetailsURL()
	if err != nil {
		return nil, err
	}

	var resp stationDetailsResponse
	if err := c.get(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("fetching station details: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("station details: success field is false")
	}

	return resp.Data, nil
}

// Timetables fetches the full-day timetables for one station.
func (c *Client) Timetables(ctx context.Context, stationCode string, routeGroups []string) ([]model.RouteGroupTimetable, error) {
	u, err := c.timetableURL(stationCode, routeGroups)
	if err != nil {
		return nil, err
	}

	var resp timetableResponse
	if err := c.get(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("fetching timetable for station '%s': %w", stationCode, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("timetable for station '%s': success field is false", stationCode)
	}

	groups := make([]model.RouteGroupTimetable, 0, len(resp.Data.RouteGroups))
	for _, rg := range resp.Data.RouteGroups {
		trips := make([]model.TripTimetable, 0, len(rg.Routes))
		for _, route := range rg.Routes {
			trips = append(trips, convertRoute(route))
		}
		groups = append(groups, model.RouteGroupTimetable{
			RouteGroupName: rg.RouteGroupNumber,
			TripTimetables: trips,
		})
	}

	return groups, nil
}

func convertRoute(route timetableRoute) model.TripTimetable {
	entries := []model.TimetableEntry{}
	for _, hour := range route.Timetable {
		for _, minute := range hour.Minutes {
			entries = append(entries, model.TimetableEntry{
				Hour:   hour.Hour,
				Minute: minute,
			})
		}
	}

	stations := make([]model.TripStation, 0, len(route.Stations))
	for _, s := range route.Stations {
		stations = append(stations, model.TripStation{
			StationCode: s.RefID,
			Name:        s.Name,
			StopNumber:  s.OrderNo,
		})
	}

	return model.TripTimetable{
		Route:         route.NumberPrefix + route.GroupName + route.NumberSuffix,
		TripName:      route.ParentName,
		ShortTripName: route.Name,
		EndsInGarage:  route.IsGarage,
		Timetable:     entries,
		Stations:      stations,
	}
}

// FetchSnapshot captures a full snapshot: all stations with their
// full-day timetables. Per-station timetable fetches run with bounded
// concurrency.
func (c *Client) FetchSnapshot(ctx context.Context) (*model.AllStationsSnapshot, error) {
	details, err := c.StationDetails(ctx)
	if err != nil {
		return nil, err
	}

	stations := make([]model.StationSnapshot, len(details))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Concurrency)
	for i, detail := range details {
		i, detail := i, detail
		g.Go(func() error {
			timetables, err := c.Timetables(ctx, detail.RefID, detail.RouteGroups)
			if err != nil {
				return err
			}
			stations[i] = model.StationSnapshot{
				StationCode:       detail.RefID,
				InternalStationID: detail.IntID,
				Name:              detail.Name,
				Location: model.GeographicalLocation{
					Latitude:  detail.Latitude,
					Longitude: detail.Longitude,
				},
				TripsOnStation: detail.RouteGroups,
				Timetables:     timetables,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.AllStationsSnapshot{
		CapturedAt: c.TimeNow().UTC(),
		Stations:   stations,
	}, nil
}
