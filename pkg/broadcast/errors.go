package broadcast

import "errors"

var (
	// ErrBroadcasterClosed indicates an operation was attempted on a closed broadcaster.
	ErrBroadcasterClosed = errors.New("broadcaster is closed")

	// ErrSubscriberClosed indicates an operation was attempted on a closed subscriber.
	ErrSubscriberClosed = errors.New("subscriber is closed")
)
