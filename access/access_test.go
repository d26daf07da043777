package access

import (
	"context"
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

func sentBody(t *testing.T, st *testutil.ScriptedTransport, idx int) map[string]string {
	t.Helper()
	reqs := st.Requests()
	require.Greater(t, len(reqs), idx)
	raw, err := io.ReadAll(reqs[idx].Body)
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestListDoorsFilters(t *testing.T) {
	c, st := newTestClient(t, testutil.Step{Status: 200, Body: `{
		"doors": [{"door_id": "d1", "name": "Front", "door_status": "LOCKED"}]
	}`})

	doors, err := c.ListDoors(context.Background(), []string{"d1", "d2"}, []string{"s1"})
	require.NoError(t, err)
	require.Len(t, doors, 1)
	assert.Equal(t, DoorLocked, doors[0].Status)

	q := st.Requests()[0].URL.Query()
	assert.Equal(t, "d1,d2", q.Get("door_ids"))
	assert.Equal(t, "s1", q.Get("site_ids"))
}

func TestUnlockDoorAsAdmin(t *testing.T) {
	c, st := newTestClient(t, testutil.Step{Status: 200, Body: `{}`})

	require.NoError(t, c.UnlockDoorAsAdmin(context.Background(), "d1"))
	assert.Equal(t, map[string]string{"door_id": "d1"}, sentBody(t, st, 0))

	require.Error(t, c.UnlockDoorAsAdmin(context.Background(), ""))
	assert.Equal(t, 1, st.Calls())
}

func TestUnlockDoorAsUserRequiresExactlyOneIdentity(t *testing.T) {
	c, st := newTestClient(t, testutil.Step{Status: 200, Body: `{}`})

	require.Error(t, c.UnlockDoorAsUser(context.Background(), "d1", "", ""))
	require.Error(t, c.UnlockDoorAsUser(context.Background(), "d1", "u1", "ext1"))
	assert.Zero(t, st.Calls())

	require.NoError(t, c.UnlockDoorAsUser(context.Background(), "d1", "u1", ""))
	body := sentBody(t, st, 0)
	assert.Equal(t, "u1", body["user_id"])
	assert.NotContains(t, body, "external_id")

	require.NoError(t, c.UnlockDoorAsUser(context.Background(), "d1", "", "ext1"))
	body = sentBody(t, st, 1)
	assert.Equal(t, "ext1", body["external_id"])
	assert.NotContains(t, body, "user_id")
}

func TestListEventsValidatesOptions(t *testing.T) {
	c, st := newTestClient(t, testutil.Step{Status: 200, Body: `{"events":[]}`})

	_, err := c.ListEvents(context.Background(), EventListOptions{PageSize: 500})
	require.Error(t, err)

	_, err = c.ListEvents(context.Background(), EventListOptions{
		EventTypes: []EventType{"door_teleported"},
	})
	require.Error(t, err)
	assert.Zero(t, st.Calls())

	_, err = c.ListEvents(context.Background(), EventListOptions{
		EventTypes: []EventType{EventDoorOpened, EventDoorForcedOpen},
		PageSize:   100,
	})
	require.NoError(t, err)

	q := st.Requests()[0].URL.Query()
	assert.Equal(t, "door_opened,door_forced_open", q.Get("event_type"))
	assert.Equal(t, "100", q.Get("page_size"))
}

func TestListAllEventsWalksPages(t *testing.T) {
	c, st := newTestClient(t,
		testutil.Step{Status: 200, Body: `{"events":[{"event_id":"e1","event_type":"door_opened"}],"next_page_token":"p2"}`},
		testutil.Step{Status: 200, Body: `{"events":[{"event_id":"e2","event_type":"door_locked"}]}`},
	)

	events, err := c.ListAllEvents(context.Background(), EventListOptions{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].EventID)
	assert.Equal(t, EventDoorLocked, events[1].EventType)

	reqs := st.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "p2", reqs[1].URL.Query().Get("page_token"))
}

func TestListGroups(t *testing.T) {
	c, _ := newTestClient(t, testutil.Step{Status: 200, Body: `{
		"access_groups": [{"group_id": "g1", "name": "Engineering", "user_ids": ["u1"]}]
	}`})

	groups, err := c.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Engineering", groups[0].Name)
	assert.Equal(t, []string{"u1"}, groups[0].UserIDs)
}
