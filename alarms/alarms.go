// Package alarms wraps the classic alarms endpoints of the Verkada Command
// API: alarm site information and the devices within a site.
package alarms

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ryanmalley101/pykada/endpoints"
	"github.com/ryanmalley101/pykada/internal/query"
	"github.com/ryanmalley101/pykada/requests"
)

// Client provides access to the classic alarms endpoints.
type Client struct {
	exec *requests.Client
}

// NewClient creates an alarms client on top of the given executor.
func NewClient(exec *requests.Client) *Client {
	return &Client{exec: exec}
}

// Device is one alarm device (sensor, keypad, hub) within a site.
type Device struct {
	DeviceID   string `json:"device_id"`
	Name       string `json:"name"`
	DeviceType string `json:"device_type"`
	SiteID     string `json:"site_id"`
	Status     string `json:"status,omitempty"`
}

// ListDevices returns the alarm devices of a site, optionally filtered to a
// subset of device IDs.
func (c *Client) ListDevices(ctx context.Context, siteID string, deviceIDs []string) ([]Device, error) {
	if err := validation.Validate(siteID, validation.Required); err != nil {
		return nil, fmt.Errorf("site_id: %w", err)
	}

	q := query.New().
		Set("site_id", siteID).
		SetList("device_ids", deviceIDs)

	var out struct {
		Devices []Device `json:"devices"`
	}
	if err := c.exec.Get(ctx, endpoints.AlarmDevices, q.Values(), &out); err != nil {
		return nil, err
	}
	return out.Devices, nil
}

// Site is one alarm site.
type Site struct {
	SiteID   string `json:"site_id"`
	Name     string `json:"name"`
	Armed    bool   `json:"armed"`
	TimeZone string `json:"time_zone,omitempty"`
}

// ListSites returns information about alarm sites; an empty siteIDs lists
// every site.
func (c *Client) ListSites(ctx context.Context, siteIDs []string) ([]Site, error) {
	q := query.New().SetList("site_ids", siteIDs)

	var out struct {
		Sites []Site `json:"sites"`
	}
	if err := c.exec.Get(ctx, endpoints.AlarmSites, q.Values(), &out); err != nil {
		return nil, err
	}
	return out.Sites, nil
}
