package ws

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"testing"
	"time"
)

func TestNotifier_BroadcastsToClients(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	n := NewNotifier(hub)
	n.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	n.NotifyLearningPathReady(" go ", "ok", true)

	select {
	case msg := <-client.send:
		var evt LearningPathReadyEvent
		if err := json.Unmarshal(msg, &evt); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if evt.Type != EventLearningPathReady || evt.Skill != "go" || evt.Status != "ok" || !evt.Fallback {
			t.Fatalf("unexpected event: %+v", evt)
		}
		if evt.Timestamp != "2026-05-01T12:00:00Z" {
			t.Fatalf("unexpected timestamp %q", evt.Timestamp)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for broadcast")
	}

	hub.Unregister(client)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestNotifier_IgnoresEmptySkillAndNilHub(t *testing.T) {
	var n *Notifier
	n.NotifyLearningPathReady("go", "ok", false)

	hub := NewHub(log.New(io.Discard, "", 0))
	NewNotifier(hub).NotifyLearningPathReady("  ", "ok", false)
	if len(hub.broadcast) != 0 {
		t.Fatalf("expected no broadcast for empty skill")
	}
}

func TestHub_RunStopsAndClosesClients(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("hub did not stop")
	}
	if _, ok := <-client.send; ok {
		t.Fatalf("expected client send channel to be closed")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}
