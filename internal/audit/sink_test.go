package audit_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juan-009/authguard/core/event"
	"github.com/juan-009/authguard/internal/audit"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmitPermissionDenied_DeliversToHandler(t *testing.T) {
	sink := audit.New(4, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan event.Event, 1)
	go sink.Run(ctx, func(e event.Event) { received <- e })

	principal := uuid.New()
	sink.EmitPermissionDenied(context.Background(), principal, "users:write")

	select {
	case e := <-received:
		payload, ok := e.Payload.(audit.PermissionDenied)
		require.True(t, ok)
		assert.Equal(t, principal, payload.Principal)
		assert.Equal(t, "users:write", payload.Required)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestEmitPermissionDenied_DropsOldestWhenFull(t *testing.T) {
	sink := audit.New(2, discardLogger())

	for i := 0; i < 5; i++ {
		sink.EmitPermissionDenied(context.Background(), uuid.New(), "users:write")
	}

	assert.Greater(t, sink.Dropped(), int64(0))
}
