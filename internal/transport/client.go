// Package transport provides the HTTP client for the direct-messaging
// API. It performs the network calls the inbox core depends on and
// resolves failures into errors, never panics.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/realsushi-official/barinsta/internal/metrics"
	"github.com/realsushi-official/barinsta/internal/models"
	"github.com/realsushi-official/barinsta/internal/session"
)

// Direct is the transport contract consumed by the inbox core. Client
// implements it against the live API; tests substitute fakes.
type Direct interface {
	CreateThread(ctx context.Context, userIDs []int64) (*models.Thread, error)
	BroadcastMediaShare(ctx context.Context, token string, dest Destination, mediaID string) error
	FetchInbox(ctx context.Context, pending bool) (*InboxFeed, error)
}

// Destination addresses a broadcast: an existing thread or a set of
// users to start one with. Exactly one side is set.
type Destination struct {
	ThreadID string  `json:"thread_id,omitempty"`
	UserIDs  []int64 `json:"recipient_users,omitempty"`
}

// DestinationThread addresses an existing thread.
func DestinationThread(threadID string) Destination {
	return Destination{ThreadID: threadID}
}

// DestinationUsers addresses a set of users without a thread.
func DestinationUsers(userIDs ...int64) Destination {
	return Destination{UserIDs: userIDs}
}

// InboxFeed is the server's view of one inbox.
type InboxFeed struct {
	Threads      []*models.Thread `json:"threads"`
	PendingTotal int              `json:"pending_requests_total"`
}

// Client is a direct-messaging API client bound to one session.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	sess   *session.Session
	logger zerolog.Logger
}

// NewClient creates a new API client for the given session.
func NewClient(baseURL string, sess *session.Session, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://i.instagram.com/api/v1"
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		sess:       sess,
		logger:     logger.With().Str("component", "transport").Logger(),
	}
}

// doRequest performs an HTTP request with session headers and returns
// the response body. Non-2xx responses are logged with url, status and
// body, and returned as errors.
func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", c.sess.Cookie)
	req.Header.Set("X-CSRF-Token", c.sess.CSRFToken)
	req.Header.Set("X-Device-ID", c.sess.DeviceID)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Error().Str("url", req.URL.String()).Err(err).Msg("request failed")
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		if len(respBody) == 0 {
			c.logger.Error().
				Str("url", req.URL.String()).
				Int("status", resp.StatusCode).
				Msg("request was not successful and response error body was empty")
			return nil, fmt.Errorf("direct API error %d: response error body was empty", resp.StatusCode)
		}
		var errResp struct {
			Error string `json:"error"`
		}
		json.Unmarshal(respBody, &errResp)
		if errResp.Error == "" {
			errResp.Error = string(respBody)
		}
		c.logger.Error().
			Str("url", req.URL.String()).
			Int("status", resp.StatusCode).
			Str("body", string(respBody)).
			Msg("request was not successful")
		return nil, fmt.Errorf("direct API error %d: %s", resp.StatusCode, errResp.Error)
	}

	return respBody, nil
}

// CreateThreadRequest is the request body for thread creation.
type CreateThreadRequest struct {
	UserIDs []int64 `json:"recipient_users"`
}

// CreateThread creates a direct thread with the given users.
func (c *Client) CreateThread(ctx context.Context, userIDs []int64) (*models.Thread, error) {
	start := time.Now()
	defer func() {
		metrics.TransportLatency.WithLabelValues("create_thread").Observe(time.Since(start).Seconds())
	}()

	body, _ := json.Marshal(CreateThreadRequest{UserIDs: userIDs})
	respBody, err := c.doRequest(ctx, "POST", "/direct/threads/create", body)
	if err != nil {
		return nil, err
	}

	var thread models.Thread
	if err := json.Unmarshal(respBody, &thread); err != nil {
		return nil, err
	}
	if thread.ID == "" {
		return nil, fmt.Errorf("create thread: response carried no thread id")
	}
	return &thread, nil
}

// BroadcastMediaShareRequest is the request body for a media share.
// Token is the caller-supplied idempotency token; ClientContext is a
// per-request ULID used by the server to correlate the broadcast.
type BroadcastMediaShareRequest struct {
	Token         string  `json:"token"`
	ClientContext string  `json:"client_context"`
	MediaID       string  `json:"media_id"`
	ThreadID      string  `json:"thread_id,omitempty"`
	UserIDs       []int64 `json:"recipient_users,omitempty"`
}

// BroadcastMediaShare shares a media item to the destination.
func (c *Client) BroadcastMediaShare(ctx context.Context, token string, dest Destination, mediaID string) error {
	start := time.Now()
	defer func() {
		metrics.TransportLatency.WithLabelValues("media_share").Observe(time.Since(start).Seconds())
	}()

	body, _ := json.Marshal(BroadcastMediaShareRequest{
		Token:         token,
		ClientContext: ulid.Make().String(),
		MediaID:       mediaID,
		ThreadID:      dest.ThreadID,
		UserIDs:       dest.UserIDs,
	})
	_, err := c.doRequest(ctx, "POST", "/direct/threads/broadcast/media_share", body)
	return err
}

// FetchInbox retrieves the accepted or pending inbox.
func (c *Client) FetchInbox(ctx context.Context, pending bool) (*InboxFeed, error) {
	start := time.Now()
	defer func() {
		metrics.TransportLatency.WithLabelValues("inbox").Observe(time.Since(start).Seconds())
	}()

	path := "/direct/inbox"
	if pending {
		path += "?pending=1"
	}
	respBody, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var feed InboxFeed
	if err := json.Unmarshal(respBody, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}
