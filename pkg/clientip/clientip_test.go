package clientip_test

import (
	"net/http"
	"testing"

	"github.com/juan-009/authguard/pkg/clientip"
	"github.com/stretchr/testify/assert"
)

func TestGetIP_PrefersCloudflareHeader(t *testing.T) {
	r := &http.Request{Header: http.Header{"CF-Connecting-IP": []string{"203.0.113.7"}}, RemoteAddr: "10.0.0.1:1234"}
	assert.Equal(t, "203.0.113.7", clientip.GetIP(r))
}

func TestGetIP_XForwardedForTakesLeftmost(t *testing.T) {
	r := &http.Request{Header: http.Header{"X-Forwarded-For": []string{"198.51.100.2, 10.0.0.1"}}, RemoteAddr: "10.0.0.1:1234"}
	assert.Equal(t, "198.51.100.2", clientip.GetIP(r))
}

func TestGetIP_FallsBackToRemoteAddr(t *testing.T) {
	r := &http.Request{Header: http.Header{}, RemoteAddr: "192.0.2.1:5678"}
	assert.Equal(t, "192.0.2.1", clientip.GetIP(r))
}

func TestGetIP_RejectsUnspecifiedAddress(t *testing.T) {
	r := &http.Request{Header: http.Header{"X-Real-IP": []string{"0.0.0.0"}}, RemoteAddr: "192.0.2.1:5678"}
	assert.Equal(t, "192.0.2.1", clientip.GetIP(r))
}
