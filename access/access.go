package access

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ryanmalley101/pykada/endpoints"
	"github.com/ryanmalley101/pykada/internal/query"
	"github.com/ryanmalley101/pykada/requests"
)

// Client provides access to the access control endpoints.
type Client struct {
	exec *requests.Client
}

// NewClient creates an access control client on top of the given executor.
func NewClient(exec *requests.Client) *Client {
	return &Client{exec: exec}
}

// DoorStatus is the configured lock state of a door.
type DoorStatus string

const (
	DoorLocked           DoorStatus = "LOCKED"
	DoorCardAndCode      DoorStatus = "CARD_AND_CODE"
	DoorAccessControlled DoorStatus = "ACCESS_CONTROLLED"
	DoorUnlocked         DoorStatus = "UNLOCKED"
)

// Door describes one access-controlled door.
type Door struct {
	DoorID     string     `json:"door_id"`
	Name       string     `json:"name"`
	SiteID     string     `json:"site_id"`
	Status     DoorStatus `json:"door_status"`
	ACUID      string     `json:"access_controller_id"`
	LastOnline int64      `json:"last_online,omitempty"`
}

// ListDoors retrieves doors, optionally filtered by door and/or site IDs.
func (c *Client) ListDoors(ctx context.Context, doorIDs, siteIDs []string) ([]Door, error) {
	q := query.New().
		SetList("door_ids", doorIDs).
		SetList("site_ids", siteIDs)

	var out struct {
		Doors []Door `json:"doors"`
	}
	if err := c.exec.Get(ctx, endpoints.AccessDoors, q.Values(), &out); err != nil {
		return nil, err
	}
	return out.Doors, nil
}

// UnlockDoorAsAdmin unlocks a door without attributing the unlock to a user.
func (c *Client) UnlockDoorAsAdmin(ctx context.Context, doorID string) error {
	if err := validation.Validate(doorID, validation.Required); err != nil {
		return fmt.Errorf("door_id: %w", err)
	}

	payload := map[string]string{"door_id": doorID}
	return c.exec.Post(ctx, endpoints.AccessDoorUnlock, nil, payload, nil)
}

// UnlockDoorAsUser unlocks a door on behalf of a user. Exactly one of userID
// (internal) or externalID must be provided.
func (c *Client) UnlockDoorAsUser(ctx context.Context, doorID, userID, externalID string) error {
	if err := validation.Validate(doorID, validation.Required); err != nil {
		return fmt.Errorf("door_id: %w", err)
	}
	if (userID == "") == (externalID == "") {
		return errors.New("exactly one of user_id or external_id must be provided")
	}

	payload := map[string]string{"door_id": doorID}
	if userID != "" {
		payload["user_id"] = userID
	} else {
		payload["external_id"] = externalID
	}

	return c.exec.Post(ctx, endpoints.AccessUserUnlock, nil, payload, nil)
}

// Group is one access group.
type Group struct {
	GroupID string   `json:"group_id"`
	Name    string   `json:"name"`
	UserIDs []string `json:"user_ids,omitempty"`
}

// ListGroups retrieves every access group in the organization.
func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	var out struct {
		Groups []Group `json:"access_groups"`
	}
	if err := c.exec.Get(ctx, endpoints.AccessGroups, nil, &out); err != nil {
		return nil, err
	}
	return out.Groups, nil
}
