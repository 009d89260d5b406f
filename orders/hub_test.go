package orders

import (
	"encoding/json"
	"testing"
	"time"

	"feira/mq"
)

func TestHubRegisterPublishUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "prod-1",
	}

	hub.register <- client

	event := mq.OrderEvent{OrderID: "ord-1", ProducerID: "prod-1", Status: "pending", Total: 25}
	hub.Publish(event)

	select {
	case got := <-client.Send:
		var decoded mq.OrderEvent
		if err := json.Unmarshal(got, &decoded); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if decoded.OrderID != event.OrderID || decoded.Status != event.Status {
			t.Fatalf("expected %+v, got %+v", event, decoded)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	hub.unregister <- client
}

func TestHubPublishOtherRoomNotDelivered(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "prod-1",
	}
	hub.register <- client

	hub.Publish(mq.OrderEvent{OrderID: "ord-2", ProducerID: "prod-other", Status: "pending"})

	select {
	case got := <-client.Send:
		t.Fatalf("unexpected delivery: %s", got)
	case <-time.After(100 * time.Millisecond):
	}

	hub.unregister <- client
}
