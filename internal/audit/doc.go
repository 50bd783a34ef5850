// Package audit is the fire-and-forget sink for security-relevant events —
// today, permission denials reported by internal/rbac. It buffers
// core/event.Event values in a bounded channel and drops the oldest queued
// event (with a warning log) rather than blocking the caller when the
// buffer is full, per the concurrency model's "audit sink channel (bounded
// buffer; drop-oldest on overflow with a warning metric)" requirement.
package audit
