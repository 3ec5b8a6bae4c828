package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID uint, buffer int) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, buffer)}
}

func TestPushToUserDelivers(t *testing.T) {
	hub := NewHub()
	c := newTestClient(1, 4)
	hub.Register(c)
	defer c.Close()

	hub.PushToUser(1, "notification", map[string]string{"hello": "world"})

	require.Len(t, c.Send, 1)
	var ev Event
	require.NoError(t, json.Unmarshal(<-c.Send, &ev))
	assert.Equal(t, "notification", ev.Event)
}

func TestPushToUserMultipleConnections(t *testing.T) {
	hub := NewHub()
	a := newTestClient(1, 4)
	b := newTestClient(1, 4)
	hub.Register(a)
	hub.Register(b)
	defer a.Close()
	defer b.Close()

	assert.Equal(t, 2, hub.ConnectionCount(1))
	hub.PushToUser(1, "message", "hi")
	assert.Len(t, a.Send, 1)
	assert.Len(t, b.Send, 1)
}

func TestPushToOfflineUserIsNoop(t *testing.T) {
	hub := NewHub()
	c := newTestClient(1, 4)
	hub.Register(c)
	defer c.Close()

	hub.PushToUser(2, "notification", "nobody home")
	assert.Len(t, c.Send, 0)
	assert.Equal(t, 0, hub.ConnectionCount(2))
}

func TestSlowConsumerDropsEvent(t *testing.T) {
	hub := NewHub()
	c := newTestClient(1, 1)
	hub.Register(c)
	defer c.Close()

	// Buffer holds one event; the second must be dropped, not block.
	hub.PushToUser(1, "message", "first")
	hub.PushToUser(1, "message", "second")
	assert.Len(t, c.Send, 1)
}

func TestPushRacingCloseDoesNotPanic(t *testing.T) {
	hub := NewHub()
	c := newTestClient(1, 1)
	hub.Register(c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			hub.PushToUser(1, "message", i)
		}
	}()
	c.Close()
	<-done

	// Pushing to an already-closed client is a silent drop, not a panic.
	c.trySend([]byte("late"))
	assert.Equal(t, 0, hub.ConnectionCount(1))
}

func TestCloseUnregisters(t *testing.T) {
	hub := NewHub()
	c := newTestClient(1, 4)
	hub.Register(c)
	require.Equal(t, 1, hub.ConnectionCount(1))

	c.Close()
	assert.Equal(t, 0, hub.ConnectionCount(1))
	// Double close is safe.
	c.Close()
}
