package clientip

import (
	"net"
	"net/http"
	"strings"
)

// priorityHeaders are checked in order before falling back to RemoteAddr.
var priorityHeaders = [...]string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the best-guess real client IP for r, checking proxy headers
// in priority order before falling back to r.RemoteAddr. It never panics;
// on total failure to find a valid IP it returns the raw RemoteAddr.
func GetIP(r *http.Request) string {
	for _, header := range priorityHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		if header == "X-Forwarded-For" {
			// May be a comma-separated chain; the leftmost is the original client.
			for _, candidate := range strings.Split(value, ",") {
				if ip := normalize(candidate); ip != "" {
					return ip
				}
			}
			continue
		}
		if ip := normalize(value); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// normalize validates and canonicalizes raw, rejecting the unspecified
// address (which indicates no meaningful client IP was determined).
func normalize(raw string) string {
	parsed := net.ParseIP(strings.TrimSpace(raw))
	if parsed == nil || parsed.IsUnspecified() {
		return ""
	}
	return parsed.String()
}
