// Package session holds the process-wide authenticated identity used
// to construct the transport client. It is built once at startup from
// the stored login cookie and is immutable afterwards.
package session

import (
	"errors"
	"strconv"
	"strings"
)

// Cookie names set by the web login flow.
const (
	cookieViewerID  = "ds_user_id"
	cookieCSRFToken = "csrftoken"
)

// ErrNotLoggedIn is returned when the stored cookie does not carry a
// complete authenticated identity.
var ErrNotLoggedIn = errors.New("user is not logged in")

// Session is the immutable authenticated context: viewer identity,
// device identifier, and the anti-forgery token required by mutating
// API calls.
type Session struct {
	ViewerID  int64
	DeviceID  string
	CSRFToken string
	Cookie    string
}

// New builds a session from the raw login cookie and the persisted
// device identifier. Construction fails if any field is missing; no
// operation in this package's consumers is meaningful without an
// authenticated identity.
func New(cookie, deviceID string) (*Session, error) {
	viewerID := ViewerIDFromCookie(cookie)
	csrfToken := CSRFTokenFromCookie(cookie)
	if viewerID == 0 || csrfToken == "" || strings.TrimSpace(deviceID) == "" {
		return nil, ErrNotLoggedIn
	}
	return &Session{
		ViewerID:  viewerID,
		DeviceID:  deviceID,
		CSRFToken: csrfToken,
		Cookie:    cookie,
	}, nil
}

// ViewerIDFromCookie extracts the numeric viewer id from the raw
// cookie, or 0 if absent or malformed.
func ViewerIDFromCookie(cookie string) int64 {
	value := cookieValue(cookie, cookieViewerID)
	if value == "" {
		return 0
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// CSRFTokenFromCookie extracts the anti-forgery token from the raw
// cookie, or "" if absent.
func CSRFTokenFromCookie(cookie string) string {
	return cookieValue(cookie, cookieCSRFToken)
}

// cookieValue finds a named value in a raw "k=v; k2=v2" cookie string.
func cookieValue(cookie, name string) string {
	for _, part := range strings.Split(cookie, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		if k == name {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
