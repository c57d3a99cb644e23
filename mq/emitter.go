package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"paperpen/rdx"
)

// OrderEvent is published on every order placement and status change. The
// admin live feed subscribes and pushes these to connected dashboards.
type OrderEvent struct {
	Type      string    `json:"type"` // "order-created", "status-changed", "order-deleted", "cart-sync-failed"
	OrderID   string    `json:"orderId,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	Status    string    `json:"status,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const orderChannel = "order-events"

// Emit publishes the event to Redis. Best-effort: a failed publish is
// logged, never propagated, since the feed is advisory.
func Emit(ctx context.Context, ev OrderEvent) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, orderChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
	}
}

// Subscribe returns a channel of order events. The channel closes when ctx
// is cancelled, which tears the Redis subscription down with it.
func Subscribe(ctx context.Context) <-chan OrderEvent {
	out := make(chan OrderEvent)

	sub := rdx.Conn.Subscribe(ctx, orderChannel)
	ch := sub.Channel()

	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev OrderEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Printf("[Subscribe] Failed to parse event: %v", err)
					continue
				}
				out <- ev
			}
		}
	}()

	return out
}
