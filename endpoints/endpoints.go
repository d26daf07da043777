// Package endpoints holds the absolute URLs of the Verkada Command public API.
//
// Every wrapper package builds its requests from these constants; callers of
// the lower-level requests.Client may use them directly.
package endpoints

// BaseURL is the Verkada Command API host.
const BaseURL = "https://api.verkada.com"

// Token issuance.
const (
	GetToken       = BaseURL + "/token"
	StreamingToken = BaseURL + "/cameras/v1/footage/token"
)

// Cameras.
const (
	CameraData      = BaseURL + "/cameras/v1/devices"
	CameraAlerts    = BaseURL + "/cameras/v1/alerts"
	FootageLink     = BaseURL + "/cameras/v1/footage/link"
	Thumbnail       = BaseURL + "/cameras/v1/footage/thumbnails"
	ThumbnailLink   = BaseURL + "/cameras/v1/footage/thumbnails/link"
	LatestThumbnail = BaseURL + "/cameras/v1/footage/thumbnails/latest"
	POI             = BaseURL + "/cameras/v1/people/person_of_interest"
	LPOI            = BaseURL + "/cameras/v1/analytics/lpr/license_plate_of_interest"
	LPRImages       = BaseURL + "/cameras/v1/analytics/lpr/images"
	LPRTimestamps   = BaseURL + "/cameras/v1/analytics/lpr/timestamps"
	ObjectCounts    = BaseURL + "/cameras/v1/analytics/object_counts"
	OccupancyTrends = BaseURL + "/cameras/v1/analytics/occupancy_trends"
	CloudBackup     = BaseURL + "/cameras/v1/cloud_backup/settings"
)

// Access control.
const (
	AccessDoors       = BaseURL + "/access/v1/doors"
	AccessDoorUnlock  = BaseURL + "/access/v1/door/admin_unlock"
	AccessUserUnlock  = BaseURL + "/access/v1/door/user_unlock"
	AccessEvents      = BaseURL + "/events/v1/access"
	AccessGroups      = BaseURL + "/access/v1/access_groups"
	AccessUsers       = BaseURL + "/access/v1/access_users"
	AccessCredentials = BaseURL + "/access/v1/credentials/card"
)

// Environmental sensors.
const (
	SensorData   = BaseURL + "/environment/v1/data"
	SensorAlerts = BaseURL + "/environment/v1/alerts"
)

// Classic alarms.
const (
	AlarmDevices = BaseURL + "/alarms/v1/devices"
	AlarmSites   = BaseURL + "/alarms/v1/sites"
)

// Helix video annotation.
const (
	HelixEventTypes = BaseURL + "/cameras/v1/video_tagging/event_type"
	HelixEvents     = BaseURL + "/cameras/v1/video_tagging/event"
)
