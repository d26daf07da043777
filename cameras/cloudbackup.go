package cameras

import (
	"context"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ryanmalley101/pykada/endpoints"
	"github.com/ryanmalley101/pykada/internal/query"
)

var (
	// Seven 0/1 flags, Sunday first.
	dayFlagsRe = regexp.MustCompile(`^[01](?:,[01]){6}$`)
	// "start,end" second offsets within a day.
	timeslotRe = regexp.MustCompile(`^\d{1,5},\d{1,5}$`)
)

// VideoQuality is the quality of footage uploaded by cloud backup.
type VideoQuality string

const (
	QualityStandard VideoQuality = "STANDARD_QUALITY"
	QualityHigh     VideoQuality = "HIGH_QUALITY"
)

// VideoToUpload selects which footage cloud backup uploads.
type VideoToUpload string

const (
	UploadMotion VideoToUpload = "MOTION"
	UploadAll    VideoToUpload = "ALL"
)

// CloudBackupSettings is the full cloud backup configuration of one camera.
// DaysToPreserve is a comma-delimited list of seven 0/1 flags starting
// Sunday; TimeToPreserve and UploadTimeslot are comma-delimited
// "start,end" second offsets within a day.
type CloudBackupSettings struct {
	CameraID       string        `json:"camera_id"`
	Enabled        int           `json:"enabled"`
	DaysToPreserve string        `json:"days_to_preserve"`
	TimeToPreserve string        `json:"time_to_preserve"`
	UploadTimeslot string        `json:"upload_timeslot"`
	VideoQuality   VideoQuality  `json:"video_quality"`
	VideoToUpload  VideoToUpload `json:"video_to_upload"`
}

// Validate checks the settings record before it is sent.
func (s CloudBackupSettings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.CameraID, validation.Required),
		validation.Field(&s.Enabled, validation.In(0, 1)),
		validation.Field(&s.DaysToPreserve, validation.Required, validation.Match(dayFlagsRe)),
		validation.Field(&s.TimeToPreserve, validation.Required, validation.Match(timeslotRe)),
		validation.Field(&s.UploadTimeslot, validation.Required, validation.Match(timeslotRe)),
		validation.Field(&s.VideoQuality, validation.Required, validation.In(QualityStandard, QualityHigh)),
		validation.Field(&s.VideoToUpload, validation.Required, validation.In(UploadMotion, UploadAll)),
	)
}

// CloudBackupUpdate is a partial update of CloudBackupSettings. Nil fields
// keep the camera's current value; non-nil fields replace it. This makes
// "toggle one setting, restore it later" explicit instead of requiring the
// caller to resend the whole record.
type CloudBackupUpdate struct {
	Enabled        *int
	DaysToPreserve *string
	TimeToPreserve *string
	UploadTimeslot *string
	VideoQuality   *VideoQuality
	VideoToUpload  *VideoToUpload
}

// apply overlays the set fields of u onto s.
func (u CloudBackupUpdate) apply(s *CloudBackupSettings) {
	if u.Enabled != nil {
		s.Enabled = *u.Enabled
	}
	if u.DaysToPreserve != nil {
		s.DaysToPreserve = *u.DaysToPreserve
	}
	if u.TimeToPreserve != nil {
		s.TimeToPreserve = *u.TimeToPreserve
	}
	if u.UploadTimeslot != nil {
		s.UploadTimeslot = *u.UploadTimeslot
	}
	if u.VideoQuality != nil {
		s.VideoQuality = *u.VideoQuality
	}
	if u.VideoToUpload != nil {
		s.VideoToUpload = *u.VideoToUpload
	}
}

// GetCloudBackupSettings retrieves the cloud backup configuration of a
// camera.
func (c *Client) GetCloudBackupSettings(ctx context.Context, cameraID string) (*CloudBackupSettings, error) {
	if err := requireID(cameraID, "camera_id"); err != nil {
		return nil, err
	}

	q := query.New().Set("camera_id", cameraID)

	var settings CloudBackupSettings
	if err := c.exec.Get(ctx, endpoints.CloudBackup, q.Values(), &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// SetCloudBackupSettings replaces the full cloud backup configuration of a
// camera. Uploading motion-only footage forces high quality, matching the
// service's own behaviour.
func (c *Client) SetCloudBackupSettings(ctx context.Context, settings CloudBackupSettings) (*CloudBackupSettings, error) {
	if settings.VideoToUpload == UploadMotion {
		settings.VideoQuality = QualityHigh
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	var updated CloudBackupSettings
	if err := c.exec.Post(ctx, endpoints.CloudBackup, nil, settings, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateCloudBackupSettings reads the camera's current configuration,
// overlays the set fields of update, and writes the result back.
func (c *Client) UpdateCloudBackupSettings(ctx context.Context, cameraID string, update CloudBackupUpdate) (*CloudBackupSettings, error) {
	current, err := c.GetCloudBackupSettings(ctx, cameraID)
	if err != nil {
		return nil, err
	}

	current.CameraID = cameraID
	update.apply(current)
	return c.SetCloudBackupSettings(ctx, *current)
}
