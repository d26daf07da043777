// Package helix wraps the Helix video annotation endpoints of the Verkada
// Command API. Helix attaches structured events (an event type with a typed
// attribute schema, then timestamped event instances) to camera footage.
package helix

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ryanmalley101/pykada/endpoints"
	"github.com/ryanmalley101/pykada/internal/query"
	"github.com/ryanmalley101/pykada/requests"
)

// Client provides access to the Helix endpoints.
type Client struct {
	exec *requests.Client
}

// NewClient creates a Helix client on top of the given executor.
func NewClient(exec *requests.Client) *Client {
	return &Client{exec: exec}
}

// EventType defines a class of Helix events. EventSchema maps attribute
// names to their types ("string", "integer", "float", "boolean").
type EventType struct {
	EventTypeUID string            `json:"event_type_uid,omitempty"`
	Name         string            `json:"name"`
	EventSchema  map[string]string `json:"event_schema"`
}

// CreateEventType registers a new Helix event type.
func (c *Client) CreateEventType(ctx context.Context, name string, eventSchema map[string]string) (*EventType, error) {
	if err := validation.Validate(name, validation.Required); err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}

	payload := EventType{Name: name, EventSchema: eventSchema}

	var created EventType
	if err := c.exec.Post(ctx, endpoints.HelixEventTypes, nil, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListEventTypes returns event types, optionally filtered by UID or name.
func (c *Client) ListEventTypes(ctx context.Context, eventTypeUID, name string) ([]EventType, error) {
	q := query.New().
		Set("event_type_uid", eventTypeUID).
		Set("name", name)

	var out struct {
		EventTypes []EventType `json:"event_types"`
	}
	if err := c.exec.Get(ctx, endpoints.HelixEventTypes, q.Values(), &out); err != nil {
		return nil, err
	}
	return out.EventTypes, nil
}

// UpdateEventType replaces the name and schema of an event type.
func (c *Client) UpdateEventType(ctx context.Context, eventTypeUID, name string, eventSchema map[string]string) (*EventType, error) {
	if err := validation.Validate(eventTypeUID, validation.Required); err != nil {
		return nil, fmt.Errorf("event_type_uid: %w", err)
	}

	q := query.New().Set("event_type_uid", eventTypeUID)
	payload := EventType{Name: name, EventSchema: eventSchema}

	var updated EventType
	if err := c.exec.Patch(ctx, endpoints.HelixEventTypes, q.Values(), payload, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEventType removes an event type and its events.
func (c *Client) DeleteEventType(ctx context.Context, eventTypeUID string) error {
	if err := validation.Validate(eventTypeUID, validation.Required); err != nil {
		return fmt.Errorf("event_type_uid: %w", err)
	}

	q := query.New().Set("event_type_uid", eventTypeUID)
	return c.exec.Delete(ctx, endpoints.HelixEventTypes, q.Values(), nil)
}

// Event is one Helix event instance on a camera's timeline. Attributes must
// conform to the event type's schema; the service rejects mismatches.
type Event struct {
	CameraID     string         `json:"camera_id"`
	EventTypeUID string         `json:"event_type_uid"`
	TimeMs       int64          `json:"time_ms"`
	Flagged      bool           `json:"flagged,omitempty"`
	Attributes   map[string]any `json:"attributes,omitempty"`
}

// Validate checks the identifying fields of an event.
func (e Event) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.CameraID, validation.Required),
		validation.Field(&e.EventTypeUID, validation.Required),
		validation.Field(&e.TimeMs, validation.Required),
	)
}

// CreateEvent posts a Helix event onto a camera's timeline.
func (c *Client) CreateEvent(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	return c.exec.Post(ctx, endpoints.HelixEvents, nil, event, nil)
}

// GetEvent retrieves one Helix event by its identifying triple.
func (c *Client) GetEvent(ctx context.Context, cameraID, eventTypeUID string, timeMs int64) (*Event, error) {
	probe := Event{CameraID: cameraID, EventTypeUID: eventTypeUID, TimeMs: timeMs}
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	q := query.New().
		Set("camera_id", cameraID).
		Set("event_type_uid", eventTypeUID).
		SetInt("time_ms", timeMs)

	var event Event
	if err := c.exec.Get(ctx, endpoints.HelixEvents, q.Values(), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent replaces the attributes and flagged state of an event.
func (c *Client) UpdateEvent(ctx context.Context, cameraID, eventTypeUID string, timeMs int64, flagged bool, attributes map[string]any) error {
	probe := Event{CameraID: cameraID, EventTypeUID: eventTypeUID, TimeMs: timeMs}
	if err := probe.Validate(); err != nil {
		return err
	}

	q := query.New().
		Set("camera_id", cameraID).
		Set("event_type_uid", eventTypeUID).
		SetInt("time_ms", timeMs)

	payload := map[string]any{"attributes": attributes, "flagged": flagged}
	return c.exec.Patch(ctx, endpoints.HelixEvents, q.Values(), payload, nil)
}

// DeleteEvent removes one Helix event.
func (c *Client) DeleteEvent(ctx context.Context, cameraID, eventTypeUID string, timeMs int64) error {
	probe := Event{CameraID: cameraID, EventTypeUID: eventTypeUID, TimeMs: timeMs}
	if err := probe.Validate(); err != nil {
		return err
	}

	q := query.New().
		Set("camera_id", cameraID).
		Set("event_type_uid", eventTypeUID).
		SetInt("time_ms", timeMs)

	return c.exec.Delete(ctx, endpoints.HelixEvents, q.Values(), nil)
}
