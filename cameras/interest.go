package cameras

import (
	"context"
	"encoding/base64"

	"github.com/ryanmalley101/pykada/endpoints"
	"github.com/ryanmalley101/pykada/internal/query"
	"github.com/ryanmalley101/pykada/requests"
)

// POI is a person of interest.
type POI struct {
	PersonID  string `json:"person_id"`
	Label     string `json:"label"`
	CreatedAt int64  `json:"created"`
}

// POIPage is one page of the person of interest listing. The POI endpoint
// names its continuation token differently from the rest of the API.
type POIPage struct {
	PersonsOfInterest []POI  `json:"persons_of_interest"`
	PageToken         string `json:"page_token"`
}

// ListPOIs returns one page of persons of interest.
func (c *Client) ListPOIs(ctx context.Context, pageToken string, pageSize int) (*POIPage, error) {
	q := query.New().
		Set("page_token", pageToken).
		SetInt("page_size", int64(pageSize))

	var page POIPage
	if err := c.exec.Get(ctx, endpoints.POI, q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListAllPOIs walks every page of persons of interest.
func (c *Client) ListAllPOIs(ctx context.Context, opts ...requests.PageOption) ([]POI, error) {
	return requests.Paginate(ctx, func(ctx context.Context, token string, size int) ([]POI, string, error) {
		page, err := c.ListPOIs(ctx, token, size)
		if err != nil {
			return nil, "", err
		}
		return page.PersonsOfInterest, page.PageToken, nil
	}, opts...)
}

// CreatePOI registers a person of interest from raw image bytes and a label.
// The image is base64-encoded on the wire.
func (c *Client) CreatePOI(ctx context.Context, image []byte, label string) (*POI, error) {
	if err := requireID(label, "label"); err != nil {
		return nil, err
	}
	if len(image) == 0 {
		return nil, requireID("", "image")
	}

	payload := map[string]string{
		"base64_image": base64.StdEncoding.EncodeToString(image),
		"label":        label,
	}

	var poi POI
	if err := c.exec.Post(ctx, endpoints.POI, nil, payload, &poi); err != nil {
		return nil, err
	}
	return &poi, nil
}

// UpdatePOI relabels a person of interest.
func (c *Client) UpdatePOI(ctx context.Context, personID, label string) (*POI, error) {
	if err := requireID(personID, "person_id"); err != nil {
		return nil, err
	}

	q := query.New().Set("person_id", personID)
	payload := map[string]string{"label": label}

	var poi POI
	if err := c.exec.Patch(ctx, endpoints.POI, q.Values(), payload, &poi); err != nil {
		return nil, err
	}
	return &poi, nil
}

// DeletePOI removes a person of interest from the organization.
func (c *Client) DeletePOI(ctx context.Context, personID string) error {
	if err := requireID(personID, "person_id"); err != nil {
		return err
	}

	q := query.New().Set("person_id", personID)
	return c.exec.Delete(ctx, endpoints.POI, q.Values(), nil)
}

// LPOI is a license plate of interest.
type LPOI struct {
	LicensePlate string `json:"license_plate"`
	Description  string `json:"description"`
	CreatedAt    int64  `json:"creation_time"`
}

// LPOIPage is one page of the license plate of interest listing.
type LPOIPage struct {
	LicensePlates []LPOI `json:"license_plate_of_interest"`
	NextPageToken string `json:"next_page_token"`
}

// ListLPOIs returns one page of license plates of interest.
func (c *Client) ListLPOIs(ctx context.Context, pageToken string, pageSize int) (*LPOIPage, error) {
	q := query.New().
		Set("page_token", pageToken).
		SetInt("page_size", int64(pageSize))

	var page LPOIPage
	if err := c.exec.Get(ctx, endpoints.LPOI, q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListAllLPOIs walks every page of license plates of interest.
func (c *Client) ListAllLPOIs(ctx context.Context, opts ...requests.PageOption) ([]LPOI, error) {
	return requests.Paginate(ctx, func(ctx context.Context, token string, size int) ([]LPOI, string, error) {
		page, err := c.ListLPOIs(ctx, token, size)
		if err != nil {
			return nil, "", err
		}
		return page.LicensePlates, page.NextPageToken, nil
	}, opts...)
}

// CreateLPOI registers a license plate of interest.
func (c *Client) CreateLPOI(ctx context.Context, licensePlate, description string) (*LPOI, error) {
	if err := requireID(licensePlate, "license_plate"); err != nil {
		return nil, err
	}

	payload := map[string]string{
		"license_plate": licensePlate,
		"description":   description,
	}

	var lpoi LPOI
	if err := c.exec.Post(ctx, endpoints.LPOI, nil, payload, &lpoi); err != nil {
		return nil, err
	}
	return &lpoi, nil
}

// UpdateLPOI changes the description of a license plate of interest.
func (c *Client) UpdateLPOI(ctx context.Context, licensePlate, description string) (*LPOI, error) {
	if err := requireID(licensePlate, "license_plate"); err != nil {
		return nil, err
	}

	q := query.New().Set("license_plate", licensePlate)
	payload := map[string]string{"description": description}

	var lpoi LPOI
	if err := c.exec.Patch(ctx, endpoints.LPOI, q.Values(), payload, &lpoi); err != nil {
		return nil, err
	}
	return &lpoi, nil
}

// DeleteLPOI removes a license plate of interest.
func (c *Client) DeleteLPOI(ctx context.Context, licensePlate string) error {
	if err := requireID(licensePlate, "license_plate"); err != nil {
		return err
	}

	q := query.New().Set("license_plate", licensePlate)
	return c.exec.Delete(ctx, endpoints.LPOI, q.Values(), nil)
}
