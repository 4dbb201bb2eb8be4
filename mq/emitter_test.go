package mq

import (
	"context"
	"testing"
	"time"

	"projbank/models"
	"projbank/rdx"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestEmitSurvivesRequestContextCancellation(t *testing.T) {
	srv := miniredis.RunT(t)

	old := rdx.Conn
	rdx.Conn = redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdx.Conn = old })

	events, stop := Subscribe(context.Background())
	defer stop()
	time.Sleep(100 * time.Millisecond) // let the subscription register

	// handlers publish from a goroutine after returning, by which point
	// net/http has cancelled the request context
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	Emit(ctx, "order-completed", models.Index{EntityType: "order", EntityId: "o1", Method: "PUT"})

	select {
	case payload := <-events:
		assert.Contains(t, payload, `"order-completed"`)
		assert.Contains(t, payload, `"o1"`)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}
