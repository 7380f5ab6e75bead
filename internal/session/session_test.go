package session

import (
	"errors"
	"testing"
)

const testCookie = "mid=abc123; ds_user_id=12345; csrftoken=tok-987; sessionid=xyz"

func TestViewerIDFromCookie(t *testing.T) {
	if got := ViewerIDFromCookie(testCookie); got != 12345 {
		t.Fatalf("expected 12345, got %d", got)
	}
	if got := ViewerIDFromCookie("mid=abc123"); got != 0 {
		t.Fatalf("expected 0 for missing value, got %d", got)
	}
	if got := ViewerIDFromCookie("ds_user_id=notanumber"); got != 0 {
		t.Fatalf("expected 0 for malformed value, got %d", got)
	}
}

func TestCSRFTokenFromCookie(t *testing.T) {
	if got := CSRFTokenFromCookie(testCookie); got != "tok-987" {
		t.Fatalf("expected tok-987, got %q", got)
	}
	if got := CSRFTokenFromCookie(""); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}

func TestNewSession(t *testing.T) {
	sess, err := New(testCookie, "device-1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sess.ViewerID != 12345 || sess.CSRFToken != "tok-987" || sess.DeviceID != "device-1" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestNewSessionRequiresAllFields(t *testing.T) {
	cases := []struct {
		name     string
		cookie   string
		deviceID string
	}{
		{"missing viewer id", "csrftoken=tok", "device-1"},
		{"missing csrf token", "ds_user_id=1", "device-1"},
		{"blank device id", testCookie, "  "},
		{"empty cookie", "", "device-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.cookie, tc.deviceID); !errors.Is(err, ErrNotLoggedIn) {
				t.Fatalf("expected ErrNotLoggedIn, got %v", err)
			}
		})
	}
}
