package sensors

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ryanmalley101/pykada/endpoints"
	"github.com/ryanmalley101/pykada/internal/query"
	"github.com/ryanmalley101/pykada/requests"
)

// Client provides access to the environmental sensor endpoints.
type Client struct {
	exec *requests.Client
}

// NewClient creates a sensor client on top of the given executor.
func NewClient(exec *requests.Client) *Client {
	return &Client{exec: exec}
}

// Field is one measurable sensor channel.
type Field string

const (
	FieldHumidity           Field = "humidity"
	FieldMotion             Field = "motion"
	FieldNoiseLevel         Field = "noise_level"
	FieldPM25               Field = "pm_2_5"
	FieldTamper             Field = "tamper"
	FieldTemperature        Field = "temperature"
	FieldAirQualityIndex    Field = "usa_air_quality_index"
	FieldVapeIndex          Field = "vape_index"
	FieldCarbonDioxide      Field = "carbon_dioxide"
	FieldCarbonMonoxide     Field = "carbon_monoxide"
	FieldBarometricPressure Field = "barometric_pressure"
	FieldFormaldehyde       Field = "formaldehyde"
	FieldAmbientLight       Field = "ambient_light"
	FieldHeatIndex          Field = "heat_index"
)

// KnownFields is the set of sensor fields the service accepts in filters.
var KnownFields = map[Field]struct{}{
	FieldHumidity: {}, FieldMotion: {}, FieldNoiseLevel: {}, FieldPM25: {},
	FieldTamper: {}, FieldTemperature: {}, FieldAirQualityIndex: {},
	FieldVapeIndex: {}, FieldCarbonDioxide: {}, FieldCarbonMonoxide: {},
	FieldBarometricPressure: {}, FieldFormaldehyde: {}, FieldAmbientLight: {},
	FieldHeatIndex: {}, "pm_4_0": {}, "pm_1_0_0": {}, "tvoc(SV11)": {},
	"tvoc_index(SV23/SV25)": {},
}

func checkFields(fields []Field) error {
	for _, f := range fields {
		if _, ok := KnownFields[f]; !ok {
			return fmt.Errorf("sensor field %q is not a known field", f)
		}
	}
	return nil
}

func fieldStrings(fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, string(f))
	}
	return out
}

// Reading is one time-series sample from a sensor.
type Reading struct {
	Timestamp int64              `json:"timestamp"`
	Values    map[string]float64 `json:"data"`
}

// DataOptions parameterizes a sensor data query. DeviceID is required.
type DataOptions struct {
	DeviceID  string
	StartTime int64
	EndTime   int64
	Fields    []Field
	Interval  string
	PageToken string
	PageSize  int
}

// DataPage is one page of sensor readings. The sensor endpoints use a page
// cursor rather than the page token of the rest of the API.
type DataPage struct {
	Data       []Reading `json:"data"`
	PageCursor string    `json:"page_cursor"`
}

// GetData returns one page of readings for a sensor.
func (c *Client) GetData(ctx context.Context, opts DataOptions) (*DataPage, error) {
	if err := validation.Validate(opts.DeviceID, validation.Required); err != nil {
		return nil, fmt.Errorf("device_id: %w", err)
	}
	if err := checkFields(opts.Fields); err != nil {
		return nil, err
	}

	q := query.New().
		Set("device_id", opts.DeviceID).
		SetInt("start_time", opts.StartTime).
		SetInt("end_time", opts.EndTime).
		SetList("fields", fieldStrings(opts.Fields)).
		Set("interval", opts.Interval).
		Set("page_cursor", opts.PageToken).
		SetInt("page_size", int64(opts.PageSize))

	var page DataPage
	if err := c.exec.Get(ctx, endpoints.SensorData, q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetAllData walks every page of readings matching opts; its PageToken and
// PageSize fields are ignored.
func (c *Client) GetAllData(ctx context.Context, opts DataOptions, pageOpts ...requests.PageOption) ([]Reading, error) {
	return requests.Paginate(ctx, func(ctx context.Context, token string, size int) ([]Reading, string, error) {
		opts.PageToken = token
		opts.PageSize = size
		page, err := c.GetData(ctx, opts)
		if err != nil {
			return nil, "", err
		}
		return page.Data, page.PageCursor, nil
	}, pageOpts...)
}

// AlertEvent is one sensor alert.
type AlertEvent struct {
	DeviceID  string  `json:"device_id"`
	Field     Field   `json:"field"`
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp"`
}

// AlertOptions parameterizes a sensor alert query. DeviceIDs must be
// non-empty.
type AlertOptions struct {
	DeviceIDs []string
	StartTime int64
	EndTime   int64
	Fields    []Field
	PageToken string
	PageSize  int
}

// AlertPage is one page of sensor alerts.
type AlertPage struct {
	AlertEvents []AlertEvent `json:"alert_events"`
	PageCursor  string       `json:"page_cursor"`
}

// GetAlerts returns one page of alerts for a set of sensors.
func (c *Client) GetAlerts(ctx context.Context, opts AlertOptions) (*AlertPage, error) {
	if err := validation.Validate(opts.DeviceIDs, validation.Required); err != nil {
		return nil, fmt.Errorf("device_ids: %w", err)
	}
	if err := checkFields(opts.Fields); err != nil {
		return nil, err
	}

	q := query.New().
		SetList("device_ids", opts.DeviceIDs).
		SetInt("start_time", opts.StartTime).
		SetInt("end_time", opts.EndTime).
		SetList("fields", fieldStrings(opts.Fields)).
		Set("page_cursor", opts.PageToken).
		SetInt("page_size", int64(opts.PageSize))

	var page AlertPage
	if err := c.exec.Get(ctx, endpoints.SensorAlerts, q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetAllAlerts walks every page of alerts matching opts; its PageToken and
// PageSize fields are ignored.
func (c *Client) GetAllAlerts(ctx context.Context, opts AlertOptions, pageOpts ...requests.PageOption) ([]AlertEvent, error) {
	return requests.Paginate(ctx, func(ctx context.Context, token string, size int) ([]AlertEvent, string, error) {
		opts.PageToken = token
		opts.PageSize = size
		page, err := c.GetAlerts(ctx, opts)
		if err != nil {
			return nil, "", err
		}
		return page.AlertEvents, page.PageCursor, nil
	}, pageOpts...)
}
