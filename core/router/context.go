package router

import (
	"context"
	"net/http"
	"time"
)

// Context is the default handler.Context implementation, backed by the
// inbound *http.Request's context and the path parameters extracted by
// the routing tree. The zero value is valid and behaves like
// context.Background with no request attached.
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
}

// newContext builds a Context for a single request, pairing it with the
// params extracted by the tree for the matched route.
func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{w: w, r: r, params: params}
}

// Deadline implements context.Context.
func (c *Context) Deadline() (time.Time, bool) {
	if c.r == nil {
		return time.Time{}, false
	}
	return c.r.Context().Deadline()
}

// Done implements context.Context.
func (c *Context) Done() <-chan struct{} {
	if c.r == nil {
		return nil
	}
	return c.r.Context().Done()
}

// Err implements context.Context.
func (c *Context) Err() error {
	if c.r == nil {
		return nil
	}
	return c.r.Context().Err()
}

// Value implements context.Context.
func (c *Context) Value(key any) any {
	if c.r == nil {
		return nil
	}
	return c.r.Context().Value(key)
}

// Request returns the underlying HTTP request.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the response writer for this request.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the path parameter named key, or "" if it wasn't
// captured by the matched route.
func (c *Context) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

// SetValue attaches a request-scoped value, rebuilding the request's
// context so downstream Deadline/Done/Err/Value calls observe it.
func (c *Context) SetValue(key, val any) {
	ctx := context.WithValue(c.r.Context(), key, val)
	c.r = c.r.WithContext(ctx)
}
