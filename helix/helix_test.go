package helix

import (
	"context"
	"net/http"
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

func TestCreateEventTypeRequiresName(t *testing.T) {
	c, st := newTestClient(t)

	_, err := c.CreateEventType(context.Background(), "", nil)
	require.Error(t, err)
	assert.Zero(t, st.Calls())
}

func TestCreateEventType(t *testing.T) {
	c, _ := newTestClient(t, testutil.Step{Status: 200, Body: `{
		"event_type_uid": "et1", "name": "package_delivery",
		"event_schema": {"carrier": "string", "packages": "integer"}
	}`})

	created, err := c.CreateEventType(context.Background(), "package_delivery",
		map[string]string{"carrier": "string", "packages": "integer"})
	require.NoError(t, err)
	assert.Equal(t, "et1", created.EventTypeUID)
	assert.Equal(t, "integer", created.EventSchema["packages"])
}

func TestEventValidate(t *testing.T) {
	valid := Event{CameraID: "c1", EventTypeUID: "et1", TimeMs: 1700000000000}
	assert.NoError(t, valid.Validate())

	assert.Error(t, Event{EventTypeUID: "et1", TimeMs: 1}.Validate())
	assert.Error(t, Event{CameraID: "c1", TimeMs: 1}.Validate())
	assert.Error(t, Event{CameraID: "c1", EventTypeUID: "et1"}.Validate())
}

func TestCreateEvent(t *testing.T) {
	c, st := newTestClient(t, testutil.Step{Status: 200, Body: `{}`})

	err := c.CreateEvent(context.Background(), Event{
		CameraID:     "c1",
		EventTypeUID: "et1",
		TimeMs:       1700000000000,
		Attributes:   map[string]any{"carrier": "UPS"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, st.Requests()[0].Method)
}

func TestDeleteEventBuildsIdentifyingQuery(t *testing.T) {
	c, st := newTestClient(t, testutil.Step{Status: 200, Body: `{}`})

	err := c.DeleteEvent(context.Background(), "c1", "et1", 1700000000000)
	require.NoError(t, err)

	req := st.Requests()[0]
	assert.Equal(t, http.MethodDelete, req.Method)
	q := req.URL.Query()
	assert.Equal(t, "c1", q.Get("camera_id"))
	assert.Equal(t, "et1", q.Get("event_type_uid"))
	assert.Equal(t, "1700000000000", q.Get("time_ms"))
}

func TestDeleteEventTypeRequiresUID(t *testing.T) {
	c, st := newTestClient(t)

	require.Error(t, c.DeleteEventType(context.Background(), ""))
	assert.Zero(t, st.Calls())
}
