// Package event defines the envelope that internal/audit's drop-oldest queue
// moves: a named, timestamped payload with a generated ID.
//
//	evt := event.NewEvent(PermissionDenied{Principal: id, Required: "users:write"})
//	// evt.Name == "PermissionDenied", evt.ID is a fresh UUID
//
// The event name is derived from the payload's type via reflection, so
// callers never hand-maintain a string-to-type mapping.
package event
