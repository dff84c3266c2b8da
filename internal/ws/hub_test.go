package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func dialHub(t *testing.T, hub *Hub) (*websocket.Conn, func()) {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		socket, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.Subscribe(socket)
	}))

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		server.Close()
		t.Fatalf("dial: %v", err)
	}
	return client, func() {
		client.Close()
		server.Close()
	}
}

func TestHubBroadcastReachesSubscriber(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client, cleanup := dialHub(t, hub)
	defer cleanup()

	waitFor(t, "subscription", func() bool { return hub.Subscribers() == 1 })

	hub.BroadcastStatus("charger-1", "occupied")

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var event StatusEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if event.ChargerID != "charger-1" || event.Status != "occupied" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.At.IsZero() {
		t.Fatal("expected a timestamp on the event")
	}
}

func TestHubDropsClosedSubscriber(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client, cleanup := dialHub(t, hub)
	defer cleanup()

	waitFor(t, "subscription", func() bool { return hub.Subscribers() == 1 })

	client.Close()
	waitFor(t, "unsubscribe", func() bool { return hub.Subscribers() == 0 })

	// must not panic with nobody listening
	hub.BroadcastStatus("charger-1", "available")
}
