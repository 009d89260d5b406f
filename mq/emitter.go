package mq

import (
	"context"
	"encoding/json"
	"log"

	"feira/rdx"
)

const ordersChannel = "order-events"

// OrderEvent is published whenever an order is created or changes status.
type OrderEvent struct {
	OrderID    string  `json:"order_id"`
	ProducerID string  `json:"producer_id"`
	ConsumerID string  `json:"consumer_id"`
	Status     string  `json:"status"`
	Total      float64 `json:"total"`
}

// Emit publishes an order event to Redis. Failures are logged, never fatal:
// the order itself is already persisted by the caller.
func Emit(ctx context.Context, event OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[mq] failed to marshal event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, ordersChannel, data).Err(); err != nil {
		log.Printf("[mq] failed to publish order event: %v", err)
	}
}

// Subscribe hands every order event to fn until ctx is cancelled.
func Subscribe(ctx context.Context, fn func(OrderEvent)) {
	sub := rdx.Conn.Subscribe(ctx, ordersChannel)
	ch := sub.Channel()

	log.Println("[mq] listening for order events")

	for {
		select {
		case <-ctx.Done():
			sub.Close()
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[mq] failed to parse order event: %v", err)
				continue
			}
			fn(event)
		}
	}
}
