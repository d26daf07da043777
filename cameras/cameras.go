package cameras

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ryanmalley101/pykada/endpoints"
	"github.com/ryanmalley101/pykada/internal/query"
	"github.com/ryanmalley101/pykada/requests"
)

// Client provides access to the camera endpoints.
type Client struct {
	exec *requests.Client
}

// NewClient creates a camera client on top of the given executor.
func NewClient(exec *requests.Client) *Client {
	return &Client{exec: exec}
}

// Camera describes one camera device in the organization.
type Camera struct {
	CameraID        string `json:"camera_id"`
	Name            string `json:"name"`
	Serial          string `json:"serial"`
	Model           string `json:"model"`
	Site            string `json:"site"`
	Status          string `json:"status"`
	MACAddress      string `json:"mac"`
	LocalIP         string `json:"local_ip"`
	FirmwareVersion string `json:"firmware"`
	DateAdded       int64  `json:"date_added"`
}

// CameraPage is one page of the camera device listing.
type CameraPage struct {
	Cameras       []Camera `json:"cameras"`
	NextPageToken string   `json:"next_page_token"`
}

// ListCameras returns one page of camera devices. pageToken is empty for the
// first page; pageSize of 0 keeps the service default.
func (c *Client) ListCameras(ctx context.Context, pageToken string, pageSize int) (*CameraPage, error) {
	q := query.New().
		Set("page_token", pageToken).
		SetInt("page_size", int64(pageSize))

	var page CameraPage
	if err := c.exec.Get(ctx, endpoints.CameraData, q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListAllCameras walks every page of the camera device listing.
func (c *Client) ListAllCameras(ctx context.Context, opts ...requests.PageOption) ([]Camera, error) {
	return requests.Paginate(ctx, func(ctx context.Context, token string, size int) ([]Camera, string, error) {
		page, err := c.ListCameras(ctx, token, size)
		if err != nil {
			return nil, "", err
		}
		return page.Cameras, page.NextPageToken, nil
	}, opts...)
}

// Alert is one camera notification.
type Alert struct {
	CameraID         string `json:"camera_id"`
	NotificationType string `json:"notification_type"`
	CreatedAt        int64  `json:"created"`
	ImageURL         string `json:"image_url,omitempty"`
	VideoURL         string `json:"video_url,omitempty"`
}

// AlertPage is one page of camera alerts.
type AlertPage struct {
	Alerts        []Alert `json:"alerts"`
	NextPageToken string  `json:"next_page_token"`
}

// AlertListOptions filters the camera alert listing. Zero fields are omitted
// from the request.
type AlertListOptions struct {
	StartTime         int64
	EndTime           int64
	IncludeImageURL   *bool
	NotificationTypes []string
	PageToken         string
	PageSize          int
}

// ListAlerts returns one page of camera alerts.
func (c *Client) ListAlerts(ctx context.Context, opts AlertListOptions) (*AlertPage, error) {
	q := query.New().
		SetInt("start_time", opts.StartTime).
		SetInt("end_time", opts.EndTime).
		SetBool("include_image_url", opts.IncludeImageURL).
		SetList("notification_type", opts.NotificationTypes).
		Set("page_token", opts.PageToken).
		SetInt("page_size", int64(opts.PageSize))

	var page AlertPage
	if err := c.exec.Get(ctx, endpoints.CameraAlerts, q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListAllAlerts walks every page of camera alerts matching opts; the
// PageToken and PageSize fields of opts are ignored.
func (c *Client) ListAllAlerts(ctx context.Context, opts AlertListOptions, pageOpts ...requests.PageOption) ([]Alert, error) {
	return requests.Paginate(ctx, func(ctx context.Context, token string, size int) ([]Alert, string, error) {
		opts.PageToken = token
		opts.PageSize = size
		page, err := c.ListAlerts(ctx, opts)
		if err != nil {
			return nil, "", err
		}
		return page.Alerts, page.NextPageToken, nil
	}, pageOpts...)
}

// Link is a time-limited URL returned by the footage and thumbnail link
// endpoints.
type Link struct {
	URL    string `json:"url"`
	Expiry int64  `json:"expiry,omitempty"`
}

// FootageLink returns a link to video footage of a camera at the given
// timestamp (0 for live).
func (c *Client) FootageLink(ctx context.Context, cameraID string, timestamp int64) (*Link, error) {
	if err := requireID(cameraID, "camera_id"); err != nil {
		return nil, err
	}

	q := query.New().
		Set("camera_id", cameraID).
		SetInt("timestamp", timestamp)

	var link Link
	if err := c.exec.Get(ctx, endpoints.FootageLink, q.Values(), &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// ThumbnailLink returns a link to a thumbnail of a camera at the given
// timestamp, valid for expirySeconds (0 keeps the service default of one
// hour).
func (c *Client) ThumbnailLink(ctx context.Context, cameraID string, timestamp, expirySeconds int64) (*Link, error) {
	if err := requireID(cameraID, "camera_id"); err != nil {
		return nil, err
	}

	q := query.New().
		Set("camera_id", cameraID).
		SetInt("timestamp", timestamp).
		SetInt("expiry", expirySeconds)

	var link Link
	if err := c.exec.Get(ctx, endpoints.ThumbnailLink, q.Values(), &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// Resolution selects the thumbnail resolution.
type Resolution string

const (
	ResolutionLow  Resolution = "low-res"
	ResolutionHigh Resolution = "hi-res"
)

// LatestThumbnail returns the most recent thumbnail of a camera as raw image
// bytes.
func (c *Client) LatestThumbnail(ctx context.Context, cameraID string, resolution Resolution) ([]byte, error) {
	if err := requireID(cameraID, "camera_id"); err != nil {
		return nil, err
	}

	q := query.New().
		Set("camera_id", cameraID).
		Set("resolution", string(resolution))

	return c.exec.GetRaw(ctx, endpoints.LatestThumbnail, q.Values())
}

// HistoricalThumbnail returns the thumbnail of a camera at the given
// timestamp as raw image bytes.
func (c *Client) HistoricalThumbnail(ctx context.Context, cameraID string, timestamp int64, resolution Resolution) ([]byte, error) {
	if err := requireID(cameraID, "camera_id"); err != nil {
		return nil, err
	}

	q := query.New().
		Set("camera_id", cameraID).
		SetInt("timestamp", timestamp).
		Set("resolution", string(resolution))

	return c.exec.GetRaw(ctx, endpoints.Thumbnail, q.Values())
}

func requireID(value, name string) error {
	if err := validation.Validate(value, validation.Required); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
