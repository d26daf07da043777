package access

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ryanmalley101/pykada/endpoints"
	"github.com/ryanmalley101/pykada/internal/query"
	"github.com/ryanmalley101/pykada/requests"
)

// EventType is one kind of access event. The service rejects unknown values,
// so filters are validated against KnownEventTypes before the request is
// sent.
type EventType string

// Commonly filtered event types.
const (
	EventDoorOpened     EventType = "door_opened"
	EventDoorRejected   EventType = "door_rejected"
	EventDoorGranted    EventType = "door_granted"
	EventDoorForcedOpen EventType = "door_forced_open"
	EventDoorHeldOpen   EventType = "door_held_open"
	EventDoorLocked     EventType = "door_locked"
	EventDoorUnlocked   EventType = "door_unlocked"
	EventDoorLockdown   EventType = "door_lockdown"
	EventDoorTamper     EventType = "door_tamper"
)

// KnownEventTypes is the full set of event type values accepted by the
// events endpoint.
var KnownEventTypes = map[EventType]struct{}{
	EventDoorOpened: {}, EventDoorRejected: {}, EventDoorGranted: {},
	EventDoorForcedOpen: {}, EventDoorHeldOpen: {}, EventDoorLocked: {},
	EventDoorUnlocked: {}, EventDoorLockdown: {}, EventDoorTamper: {},
	"door_tailgating": {}, "door_crowd_detection": {}, "door_poi_detection": {},
	"door_initialized": {}, "door_armed": {}, "door_armed_button_pressed": {},
	"door_aux_unlock": {}, "door_unarmed_event": {}, "door_code_entered_event": {},
	"door_button_press_entered_event": {}, "door_acu_startup": {},
	"door_lock_state_changed": {}, "door_auxinput_change_state": {},
	"door_auxinput_held": {}, "door_low_battery": {}, "door_critical_battery": {},
	"door_mobile_nfc_scan_accepted": {}, "door_mobile_nfc_scan_rejected": {},
	"door_user_database_corrupt": {}, "door_keycard_entered_accepted": {},
	"door_keycard_entered_rejected": {}, "door_code_entered_accepted": {},
	"door_code_entered_rejected": {}, "door_remote_unlock_accepted": {},
	"door_remote_unlock_rejected": {}, "door_press_to_exit_accepted": {},
	"door_ble_unlock_attempt_accepted": {}, "door_ble_unlock_attempt_rejected": {},
	"door_acu_offline": {}, "door_fire_alarm_triggered": {},
	"door_fire_alarm_released": {}, "door_acu_fire_alarm_triggered": {},
	"door_acu_fire_alarm_released": {}, "door_schedule_toggle": {},
	"door_acu_dpi_cut": {}, "door_acu_dpi_short": {}, "door_acu_rex_cut": {},
	"door_acu_rex_short": {}, "door_acu_rex2_cut": {}, "door_acu_rex2_short": {},
	"door_acu_auxinput_cut": {}, "door_acu_auxinput_short": {},
	"door_lockdown_debounced": {}, "door_lp_presented_accepted": {},
	"door_lp_presented_rejected": {}, "door_apb_double_entry": {},
	"door_apb_double_exit": {}, "all_access_granted": {}, "all_access_rejected": {},
	"door_auxoutput_activated": {}, "door_auxoutput_deactivated": {},
}

// Event is one access event.
type Event struct {
	EventID   string    `json:"event_id"`
	EventType EventType `json:"event_type"`
	Timestamp int64     `json:"timestamp"`
	DoorID    string    `json:"door_id,omitempty"`
	SiteID    string    `json:"site_id,omitempty"`
	DeviceID  string    `json:"device_id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
}

// EventPage is one page of the access event stream.
type EventPage struct {
	Events        []Event `json:"events"`
	NextPageToken string  `json:"next_page_token"`
}

// EventListOptions filters the access event stream. Zero times keep the
// service default of the last hour.
type EventListOptions struct {
	StartTime  int64
	EndTime    int64
	EventTypes []EventType
	SiteID     string
	DeviceID   string
	UserID     string
	PageToken  string
	PageSize   int
}

// Validate checks page bounds and event type membership.
func (o EventListOptions) Validate() error {
	if err := validation.Validate(o.PageSize, validation.Min(0), validation.Max(200)); err != nil {
		return fmt.Errorf("page_size: %w", err)
	}
	for _, et := range o.EventTypes {
		if _, ok := KnownEventTypes[et]; !ok {
			return fmt.Errorf("event_type %q is not a known access event type", et)
		}
	}
	return nil
}

// ListEvents returns one page of access events matching opts.
func (c *Client) ListEvents(ctx context.Context, opts EventListOptions) (*EventPage, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	types := make([]string, 0, len(opts.EventTypes))
	for _, et := range opts.EventTypes {
		types = append(types, string(et))
	}

	q := query.New().
		SetInt("start_time", opts.StartTime).
		SetInt("end_time", opts.EndTime).
		SetList("event_type", types).
		Set("site_id", opts.SiteID).
		Set("device_id", opts.DeviceID).
		Set("user_id", opts.UserID).
		Set("page_token", opts.PageToken).
		SetInt("page_size", int64(opts.PageSize))

	var page EventPage
	if err := c.exec.Get(ctx, endpoints.AccessEvents, q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListAllEvents walks every page of access events matching opts; its
// PageToken and PageSize fields are ignored.
func (c *Client) ListAllEvents(ctx context.Context, opts EventListOptions, pageOpts ...requests.PageOption) ([]Event, error) {
	return requests.Paginate(ctx, func(ctx context.Context, token string, size int) ([]Event, string, error) {
		opts.PageToken = token
		opts.PageSize = size
		page, err := c.ListEvents(ctx, opts)
		if err != nil {
			return nil, "", err
		}
		return page.Events, page.NextPageToken, nil
	}, pageOpts...)
}
