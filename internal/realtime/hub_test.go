package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewHub(logger)
}

func readFrame(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case frame := <-c.Send:
		var ev Event
		require.NoError(t, json.Unmarshal(frame, &ev))
		return ev
	default:
		t.Fatal("expected a frame in the client buffer")
		return Event{}
	}
}

func TestHub_PublishReachesEveryClient(t *testing.T) {
	hub := newTestHub()
	a, b := NewClient(), NewClient()
	hub.Register(a)
	hub.Register(b)

	payload := map[string]string{"incidentId": uuid.NewString()}
	require.NoError(t, hub.Publish(context.Background(), EventIncidentNoteAdded, payload))

	for _, c := range []*Client{a, b} {
		ev := readFrame(t, c)
		assert.Equal(t, EventIncidentNoteAdded, ev.Event)
		var got map[string]string
		require.NoError(t, json.Unmarshal(ev.Data, &got))
		assert.Equal(t, payload, got)
		assert.False(t, ev.Timestamp.IsZero())
	}
}

func TestHub_LateClientGetsNoReplay(t *testing.T) {
	hub := newTestHub()
	require.NoError(t, hub.Publish(context.Background(), EventNewIncident, map[string]int{"n": 1}))

	late := NewClient()
	hub.Register(late)

	assert.Empty(t, late.Send)
}

func TestHub_FullBufferIsSkipped(t *testing.T) {
	hub := newTestHub()
	slow, fast := NewClient(), NewClient()
	hub.Register(slow)
	hub.Register(fast)

	for i := 0; i < sendBufferSize; i++ {
		slow.Send <- []byte("{}")
	}

	require.NoError(t, hub.Publish(context.Background(), EventNewNotification, map[string]int{"n": 1}))

	assert.Len(t, slow.Send, sendBufferSize)
	assert.Equal(t, EventNewNotification, readFrame(t, fast).Event)
}

func TestHub_UnregisterIsIdempotent(t *testing.T) {
	hub := newTestHub()
	c := NewClient()
	hub.Register(c)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(c)
	hub.Unregister(c)

	assert.Equal(t, 0, hub.ClientCount())
	_, open := <-c.Send
	assert.False(t, open)
}

func TestHub_PublishUnmarshalablePayload(t *testing.T) {
	hub := newTestHub()

	err := hub.Publish(context.Background(), EventNewIncident, make(chan int))

	assert.Error(t, err)
}

func TestRedisRelay_DispatchForwardsRawFrame(t *testing.T) {
	hub := newTestHub()
	c := NewClient()
	hub.Register(c)
	relay := NewRedisRelay(nil, "events", hub, hub.logger)

	ev, err := NewEvent(EventIncidentUpdated, map[string]string{"status": "resolved"})
	require.NoError(t, err)
	frame, err := json.Marshal(ev)
	require.NoError(t, err)

	relay.dispatch(string(frame))
	relay.dispatch("not json")

	got := readFrame(t, c)
	assert.Equal(t, EventIncidentUpdated, got.Event)
	assert.Empty(t, c.Send)
}
