package audit

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/juan-009/authguard/core/event"
)

// DefaultBufferSize is the channel capacity used when Config.BufferSize is
// unset or non-positive.
const DefaultBufferSize = 256

// PermissionDenied is the payload recorded for every RBAC denial.
type PermissionDenied struct {
	Principal uuid.UUID `json:"principal"`
	Required  string    `json:"required"`
}

// Sink is a bounded, non-blocking event queue built on event.Event: a plain
// channel send blocks the publisher once full, so this type layers a
// drop-oldest policy on top instead.
type Sink struct {
	events  chan event.Event
	logger  *slog.Logger
	dropped atomic.Int64
}

// New builds a Sink with the given buffer size (DefaultBufferSize if
// bufferSize <= 0). logger may be nil.
func New(bufferSize int, logger *slog.Logger) *Sink {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{events: make(chan event.Event, bufferSize), logger: logger}
}

// EmitPermissionDenied implements internal/rbac.AuditSink.
func (s *Sink) EmitPermissionDenied(ctx context.Context, principal uuid.UUID, required string) {
	s.enqueue(event.NewEvent(PermissionDenied{Principal: principal, Required: required}))
}

// Dropped reports how many events have been discarded for buffer overflow
// since the sink was created.
func (s *Sink) Dropped() int64 {
	return s.dropped.Load()
}

func (s *Sink) enqueue(e event.Event) {
	select {
	case s.events <- e:
		return
	default:
	}

	select {
	case <-s.events:
		s.dropped.Add(1)
		s.logger.Warn("audit sink buffer full, dropped oldest event", slog.Int64("dropped_total", s.dropped.Load()))
	default:
	}

	select {
	case s.events <- e:
	default:
		s.dropped.Add(1)
	}
}

// Run drains the sink until ctx is cancelled, invoking handle for each
// event. Intended to run in its own goroutine for the process lifetime.
func (s *Sink) Run(ctx context.Context, handle func(event.Event)) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-s.events:
			if !ok {
				return
			}
			handle(e)
		}
	}
}
