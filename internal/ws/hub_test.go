package ws

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(log.New(io.Discard, "", 0))
	h.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func testClient(h *Hub, userID uuid.UUID) *Client {
	return &Client{hub: h, send: make(chan []byte, 4), userID: userID}
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for h.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, h.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case b := <-c.send:
		var evt Event
		if err := json.Unmarshal(b, &evt); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return evt
	case <-time.After(time.Second):
		t.Fatalf("no message delivered")
	}
	return Event{}
}

func expectNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case b := <-c.send:
		t.Fatalf("unexpected message %s", b)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_SendToUser(t *testing.T) {
	h := startHub(t)
	alice, bob := uuid.New(), uuid.New()
	a1, a2, b1 := testClient(h, alice), testClient(h, alice), testClient(h, bob)
	h.Register(a1)
	h.Register(a2)
	h.Register(b1)
	waitForClients(t, h, 3)

	h.SendToUser(alice, "application_status_changed", map[string]string{"status": "ACCEPTED"})

	for _, c := range []*Client{a1, a2} {
		evt := receive(t, c)
		if evt.Type != "application_status_changed" || evt.Timestamp != "2024-03-01T12:00:00Z" {
			t.Fatalf("unexpected event: %+v", evt)
		}
	}
	expectNothing(t, b1)
}

func TestHub_BroadcastAndUnregister(t *testing.T) {
	h := startHub(t)
	c1, c2 := testClient(h, uuid.New()), testClient(h, uuid.New())
	h.Register(c1)
	h.Register(c2)
	waitForClients(t, h, 2)

	h.Broadcast("job_posted", map[string]string{"title": "Engineer"})
	if receive(t, c1).Type != "job_posted" || receive(t, c2).Type != "job_posted" {
		t.Fatalf("broadcast not delivered to all clients")
	}

	h.Unregister(c1)
	waitForClients(t, h, 1)
	if _, ok := <-c1.send; ok {
		t.Fatalf("send channel of unregistered client must be closed")
	}
}

func TestHub_NilSafe(t *testing.T) {
	var h *Hub
	h.Broadcast("x", nil)
	h.SendToUser(uuid.New(), "x", nil)
	if h.ClientCount() != 0 {
		t.Fatalf("nil hub has no clients")
	}
}

func TestHub_StoppedHubNeverBlocks(t *testing.T) {
	h := NewHub(log.New(io.Discard, "", 0))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	c := testClient(h, uuid.New())
	h.Register(c)
	waitForClients(t, h, 1)

	cancel()
	<-stopped
	if _, ok := <-c.send; ok {
		t.Fatalf("stopping the hub must close client send channels")
	}

	finished := make(chan struct{})
	go func() {
		// More than the unregister buffer holds.
		for i := 0; i < 300; i++ {
			h.Unregister(c)
		}
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatalf("Unregister blocked after the hub stopped")
	}

	late := testClient(h, uuid.New())
	h.Register(late)
	if _, ok := <-late.send; ok {
		t.Fatalf("a client registered after stop must be closed")
	}
}
