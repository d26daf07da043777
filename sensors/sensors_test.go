package sensors

import (
	"context"
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

func TestGetDataRequiresDeviceID(t *testing.T) {
	c, st := newTestClient(t)

	_, err := c.GetData(context.Background(), DataOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device_id")
	assert.Zero(t, st.Calls())
}

func TestGetDataRejectsUnknownField(t *testing.T) {
	c, st := newTestClient(t)

	_, err := c.GetData(context.Background(), DataOptions{
		DeviceID: "sv1",
		Fields:   []Field{FieldTemperature, "wind_speed"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wind_speed")
	assert.Zero(t, st.Calls())
}

func TestGetDataBuildsQuery(t *testing.T) {
	c, st := newTestClient(t, testutil.Step{Status: 200, Body: `{
		"data": [{"timestamp": 1700000000, "data": {"temperature": 21.5}}],
		"page_cursor": "next"
	}`})

	page, err := c.GetData(context.Background(), DataOptions{
		DeviceID:  "sv1",
		StartTime: 1700000000,
		EndTime:   1700003600,
		Fields:    []Field{FieldTemperature, FieldHumidity},
		Interval:  "5m",
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 21.5, page.Data[0].Values["temperature"])
	assert.Equal(t, "next", page.PageCursor)

	q := st.Requests()[0].URL.Query()
	assert.Equal(t, "sv1", q.Get("device_id"))
	assert.Equal(t, "temperature,humidity", q.Get("fields"))
	assert.Equal(t, "5m", q.Get("interval"))
}

func TestGetAllDataFollowsPageCursor(t *testing.T) {
	c, st := newTestClient(t,
		testutil.Step{Status: 200, Body: `{"data":[{"timestamp":1}],"page_cursor":"c2"}`},
		testutil.Step{Status: 200, Body: `{"data":[{"timestamp":2}]}`},
	)

	readings, err := c.GetAllData(context.Background(), DataOptions{DeviceID: "sv1"})
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, int64(1), readings[0].Timestamp)
	assert.Equal(t, int64(2), readings[1].Timestamp)

	reqs := st.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "c2", reqs[1].URL.Query().Get("page_cursor"))
}

func TestGetAlertsRequiresDeviceIDs(t *testing.T) {
	c, st := newTestClient(t)

	_, err := c.GetAlerts(context.Background(), AlertOptions{})
	require.Error(t, err)
	assert.Zero(t, st.Calls())
}

func TestGetAlertsDecodes(t *testing.T) {
	c, st := newTestClient(t, testutil.Step{Status: 200, Body: `{
		"alert_events": [{"device_id": "sv1", "field": "vape_index", "value": 87.1, "timestamp": 1700000000}]
	}`})

	page, err := c.GetAlerts(context.Background(), AlertOptions{DeviceIDs: []string{"sv1", "sv2"}})
	require.NoError(t, err)
	require.Len(t, page.AlertEvents, 1)
	assert.Equal(t, FieldVapeIndex, page.AlertEvents[0].Field)

	q := st.Requests()[0].URL.Query()
	assert.Equal(t, "sv1,sv2", q.Get("device_ids"))
}
