package cameras

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ryanmalley101/pykada/endpoints"
	"github.com/ryanmalley101/pykada/internal/query"
)

// OccupancyInterval is the bucketing interval for occupancy trend data.
type OccupancyInterval string

const (
	Interval15Minutes OccupancyInterval = "15_minutes"
	Interval1Hour     OccupancyInterval = "1_hour"
	Interval6Hours    OccupancyInterval = "6_hours"
	Interval12Hours   OccupancyInterval = "12_hours"
	Interval1Day      OccupancyInterval = "1_day"
)

// OccupancyType selects what the occupancy trend counts.
type OccupancyType string

const (
	OccupancyPerson  OccupancyType = "person"
	OccupancyVehicle OccupancyType = "vehicle"
)

// OccupancyTrendsOptions parameterizes an occupancy trends query.
type OccupancyTrendsOptions struct {
	CameraID  string
	StartTime int64
	EndTime   int64
	Interval  OccupancyInterval
	Type      OccupancyType
	PresetID  string
}

// Validate checks required fields and enum membership before the request is
// built.
func (o OccupancyTrendsOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.CameraID, validation.Required),
		validation.Field(&o.Interval, validation.In(
			Interval15Minutes, Interval1Hour, Interval6Hours, Interval12Hours, Interval1Day)),
		validation.Field(&o.Type, validation.In(OccupancyPerson, OccupancyVehicle)),
	)
}

// OccupancyTrends holds bucketed occupancy counts for one camera.
type OccupancyTrends struct {
	CameraID    string           `json:"camera_id"`
	TrendType   string           `json:"trend_type,omitempty"`
	DataPoints  []OccupancyPoint `json:"data_points"`
	MaxCapacity int              `json:"max_capacity,omitempty"`
}

// OccupancyPoint is one bucket of an occupancy trend.
type OccupancyPoint struct {
	Timestamp int64 `json:"timestamp"`
	In        int   `json:"people_in,omitempty"`
	Out       int   `json:"people_out,omitempty"`
	Count     int   `json:"count,omitempty"`
}

// GetOccupancyTrends returns occupancy trend data for a camera over a time
// range.
func (c *Client) GetOccupancyTrends(ctx context.Context, opts OccupancyTrendsOptions) (*OccupancyTrends, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	q := query.New().
		Set("camera_id", opts.CameraID).
		SetInt("start_time", opts.StartTime).
		SetInt("end_time", opts.EndTime).
		Set("interval", string(opts.Interval)).
		Set("type", string(opts.Type)).
		Set("preset_id", opts.PresetID)

	var trends OccupancyTrends
	if err := c.exec.Get(ctx, endpoints.OccupancyTrends, q.Values(), &trends); err != nil {
		return nil, err
	}
	return &trends, nil
}

// ObjectCountPage is one page of per-frame object counts.
type ObjectCountPage struct {
	ObjectCounts  []ObjectCount `json:"object_counts"`
	NextPageToken string        `json:"next_page_token"`
}

// ObjectCount is one object count sample.
type ObjectCount struct {
	Timestamp   int64 `json:"timestamp"`
	PersonCount int   `json:"person_count"`
	CarCount    int   `json:"vehicle_count"`
}

// GetObjectCounts returns one page of object count samples for a camera.
func (c *Client) GetObjectCounts(ctx context.Context, cameraID string, startTime, endTime int64, pageToken string, pageSize int) (*ObjectCountPage, error) {
	if err := requireID(cameraID, "camera_id"); err != nil {
		return nil, err
	}

	q := query.New().
		Set("camera_id", cameraID).
		SetInt("start_time", startTime).
		SetInt("end_time", endTime).
		Set("page_token", pageToken).
		SetInt("page_size", int64(pageSize))

	var page ObjectCountPage
	if err := c.exec.Get(ctx, endpoints.ObjectCounts, q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}
