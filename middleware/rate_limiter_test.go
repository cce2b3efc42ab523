package middleware

import (
	"net/http/httptest"
	"testing"
)

func TestClientIPUsesFirstForwardedHop(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/activities", nil)
	r.RemoteAddr = "10.0.0.1:52100"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 198.51.100.2, 10.0.0.1")

	if ip := clientIP(r); ip != "203.0.113.7" {
		t.Errorf("Expected first forwarded hop 203.0.113.7, got %q", ip)
	}
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/activities", nil)
	r.RemoteAddr = "192.0.2.9:41234"

	if ip := clientIP(r); ip != "192.0.2.9" {
		t.Errorf("Expected remote address 192.0.2.9, got %q", ip)
	}

	r.Header.Set("X-Forwarded-For", " ")
	if ip := clientIP(r); ip != "192.0.2.9" {
		t.Errorf("Expected blank header to fall back to remote address, got %q", ip)
	}
}
