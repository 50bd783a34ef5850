// Package middleware provides HTTP middleware components for common
// cross-cutting concerns, built on core/handler's generic Context so they
// compose with any router.Context implementation.
//
//   - CORS: cross-origin resource sharing headers and preflight handling
//   - Logging: structured request/response logging
//   - RequestID: per-request identifiers for tracing
//   - SecurityHeaders: security-focused HTTP response headers
//   - RateLimit: per-client request throttling backed by pkg/ratelimiter
//
// Panic recovery lives in core/router itself, not here: mux.ServeHTTP
// recovers and routes to the configured error handler.
package middleware
