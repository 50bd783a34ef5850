package event

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Event represents a domain event with metadata and payload.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Payload   any       `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent creates a new Event with auto-generated ID and timestamp.
// The event name is automatically derived from the payload type using reflection.
//
// Example:
//
//	type UserCreated struct {
//	    UserID string
//	    Email  string
//	}
//
//	event := event.NewEvent(UserCreated{UserID: "123", Email: "user@example.com"})
//	// event.Name will be "UserCreated"
//	// event.ID will be a UUID
//	// event.CreatedAt will be time.Now()
func NewEvent(payload any) Event {
	return Event{
		ID:        uuid.New().String(),
		Name:      getEventName(payload),
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}

// getEventName extracts the event name from a value using reflection.
// For struct types, it returns the struct name (e.g., "UserCreated"); for
// pointer types, the pointed-to type name.
func getEventName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
