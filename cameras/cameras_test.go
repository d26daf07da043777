package cameras

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanmalley101/pykada/internal/testutil"
	"github.com/ryanmalley101/pykada/requests"
	"github.com/ryanmalley101/pykada/tokens"
)

func newTestClient(t *testing.T, steps ...testutil.Step) (*Client, *testutil.ScriptedTransport) {
	t.Helper()
	st := testutil.NewScriptedTransport(steps...)
	tt := &testutil.TokenTransport{}
	tm, err := tokens.NewManager("test-key", tokens.WithHTTPClient(tt.Client()))
	require.NoError(t, err)
	exec := requests.NewClient(tm, requests.WithHTTPClient(st.Client()))
	return NewClient(exec), st
}

func decodeBody(t *testing.T, st *testutil.ScriptedTransport, idx int, out any) {
	t.Helper()
	reqs := st.Requests()
	require.Greater(t, len(reqs), idx)
	raw, err := io.ReadAll(reqs[idx].Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestListCameras(t *testing.T) {
	c, st := newTestClient(t, testutil.Step{Status: 200, Body: `{
		"cameras": [{"camera_id": "c1", "name": "Lobby", "site": "HQ"}],
		"next_page_token": "p2"
	}`})

	page, err := c.ListCameras(context.Background(), "", 50)
	require.NoError(t, err)
	require.Len(t, page.Cameras, 1)
	assert.Equal(t, "c1", page.Cameras[0].CameraID)
	assert.Equal(t, "Lobby", page.Cameras[0].Name)
	assert.Equal(t, "p2", page.NextPageToken)

	q := st.Requests()[0].URL.Query()
	assert.Equal(t, "50", q.Get("page_size"))
	assert.Empty(t, q.Get("page_token"))
}

func TestListAllCamerasWalksPages(t *testing.T) {
	c, st := newTestClient(t,
		testutil.Step{Status: 200, Body: `{"cameras":[{"camera_id":"c1"}],"next_page_token":"p2"}`},
		testutil.Step{Status: 200, Body: `{"cameras":[{"camera_id":"c2"}]}`},
	)

	cams, err := c.ListAllCameras(context.Background())
	require.NoError(t, err)
	require.Len(t, cams, 2)
	assert.Equal(t, "c1", cams[0].CameraID)
	assert.Equal(t, "c2", cams[1].CameraID)

	reqs := st.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "p2", reqs[1].URL.Query().Get("page_token"))
}

func TestFootageLinkRequiresCameraID(t *testing.T) {
	c, st := newTestClient(t)

	_, err := c.FootageLink(context.Background(), "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera_id")
	assert.Zero(t, st.Calls())
}

func TestLatestThumbnailReturnsRawBytes(t *testing.T) {
	c, st := newTestClient(t, testutil.Step{Status: 200, Body: "jpeg-bytes"})

	img, err := c.LatestThumbnail(context.Background(), "c1", ResolutionHigh)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), img)

	q := st.Requests()[0].URL.Query()
	assert.Equal(t, "hi-res", q.Get("resolution"))
	assert.Equal(t, "c1", q.Get("camera_id"))
}

func TestOccupancyTrendsValidation(t *testing.T) {
	c, st := newTestClient(t, testutil.Step{Status: 200, Body: `{"camera_id":"c1","data_points":[]}`})

	_, err := c.GetOccupancyTrends(context.Background(), OccupancyTrendsOptions{
		CameraID: "c1",
		Interval: "45_minutes",
	})
	require.Error(t, err)
	assert.Zero(t, st.Calls())

	_, err = c.GetOccupancyTrends(context.Background(), OccupancyTrendsOptions{
		CameraID: "c1",
		Interval: Interval1Hour,
		Type:     OccupancyPerson,
	})
	require.NoError(t, err)
	q := st.Requests()[0].URL.Query()
	assert.Equal(t, "1_hour", q.Get("interval"))
	assert.Equal(t, "person", q.Get("type"))
}

func TestCreatePOIEncodesImage(t *testing.T) {
	c, st := newTestClient(t, testutil.Step{Status: 200, Body: `{"person_id":"p1","label":"visitor"}`})

	image := []byte{0xff, 0xd8, 0xff, 0xe0}
	poi, err := c.CreatePOI(context.Background(), image, "visitor")
	require.NoError(t, err)
	assert.Equal(t, "p1", poi.PersonID)

	var body map[string]string
	decodeBody(t, st, 0, &body)
	assert.Equal(t, base64.StdEncoding.EncodeToString(image), body["base64_image"])
	assert.Equal(t, "visitor", body["label"])
}

func TestCreatePOIRequiresImageAndLabel(t *testing.T) {
	c, st := newTestClient(t)

	_, err := c.CreatePOI(context.Background(), nil, "visitor")
	require.Error(t, err)

	_, err = c.CreatePOI(context.Background(), []byte{1}, "")
	require.Error(t, err)

	assert.Zero(t, st.Calls())
}

func TestCloudBackupSettingsValidate(t *testing.T) {
	valid := CloudBackupSettings{
		CameraID:       "c1",
		Enabled:        1,
		DaysToPreserve: "0,1,1,1,1,1,0",
		TimeToPreserve: "0,86400",
		UploadTimeslot: "3600,7200",
		VideoQuality:   QualityStandard,
		VideoToUpload:  UploadAll,
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.DaysToPreserve = "0,1,2,1,1,1,0"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.TimeToPreserve = "morning"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.VideoQuality = "ULTRA"
	assert.Error(t, bad.Validate())
}

func TestSetCloudBackupMotionForcesHighQuality(t *testing.T) {
	c, st := newTestClient(t, testutil.Step{Status: 200, Body: `{"camera_id":"c1"}`})

	settings := CloudBackupSettings{
		CameraID:       "c1",
		Enabled:        1,
		DaysToPreserve: "1,1,1,1,1,1,1",
		TimeToPreserve: "0,86400",
		UploadTimeslot: "0,86400",
		VideoQuality:   QualityStandard,
		VideoToUpload:  UploadMotion,
	}
	_, err := c.SetCloudBackupSettings(context.Background(), settings)
	require.NoError(t, err)

	var sent CloudBackupSettings
	decodeBody(t, st, 0, &sent)
	assert.Equal(t, QualityHigh, sent.VideoQuality)
}

func TestUpdateCloudBackupOverlaysCurrentSettings(t *testing.T) {
	c, st := newTestClient(t,
		testutil.Step{Status: 200, Body: `{
			"camera_id": "c1",
			"enabled": 0,
			"days_to_preserve": "0,1,1,1,1,1,0",
			"time_to_preserve": "0,86400",
			"upload_timeslot": "3600,7200",
			"video_quality": "STANDARD_QUALITY",
			"video_to_upload": "ALL"
		}`},
		testutil.Step{Status: 200, Body: `{"camera_id":"c1","enabled":1}`},
	)

	enabled := 1
	updated, err := c.UpdateCloudBackupSettings(context.Background(), "c1", CloudBackupUpdate{
		Enabled: &enabled,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Enabled)

	// One read, one write; the write keeps every untouched field.
	require.Equal(t, 2, st.Calls())
	var sent CloudBackupSettings
	decodeBody(t, st, 1, &sent)
	assert.Equal(t, 1, sent.Enabled)
	assert.Equal(t, "0,1,1,1,1,1,0", sent.DaysToPreserve)
	assert.Equal(t, QualityStandard, sent.VideoQuality)
}
