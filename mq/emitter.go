package mq

import (
	"context"
	"encoding/json"
	"log"

	"projbank/models"
	"projbank/rdx"
)

// EventsChannel carries catalogue and order events for live admin feeds.
const EventsChannel = "projbank-events"

// Emit publishes an event to the Redis events channel. Failures are logged,
// never surfaced: events are advisory, the write they describe has already
// been committed.
func Emit(ctx context.Context, eventName string, content models.Index) {
	// handlers emit from goroutines that outlive the request; the publish
	// must not die with the request context
	ctx = context.WithoutCancel(ctx)

	payload := map[string]any{"event": eventName, "data": content}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("mq: failed to marshal %s event: %v", eventName, err)
		return
	}

	if err := rdx.Conn.Publish(ctx, EventsChannel, data).Err(); err != nil {
		log.Printf("mq: failed to publish %s event: %v", eventName, err)
	}
}

// Subscribe returns a channel of raw event payloads for one consumer.
// The returned cancel func must be called when the consumer goes away.
func Subscribe(ctx context.Context) (<-chan string, func()) {
	sub := rdx.Conn.Subscribe(ctx, EventsChannel)
	out := make(chan string)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() { _ = sub.Close() }
}
