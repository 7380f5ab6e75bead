package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/realsushi-official/barinsta/internal/api"
	"github.com/realsushi-official/barinsta/internal/direct"
	"github.com/realsushi-official/barinsta/internal/handlers"
	"github.com/realsushi-official/barinsta/internal/models"
	"github.com/realsushi-official/barinsta/internal/session"
	"github.com/realsushi-official/barinsta/internal/transport"
)

// fakeService fakes the transport for handler tests.
type fakeService struct {
	mu         sync.Mutex
	broadcasts int
	fetches    int
	feed       transport.InboxFeed
}

func (f *fakeService) CreateThread(ctx context.Context, userIDs []int64) (*models.Thread, error) {
	return &models.Thread{ID: "t-created"}, nil
}

func (f *fakeService) BroadcastMediaShare(ctx context.Context, token string, dest transport.Destination, mediaID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasts++
	return nil
}

func (f *fakeService) FetchInbox(ctx context.Context, pending bool) (*transport.InboxFeed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	feed := f.feed
	return &feed, nil
}

func (f *fakeService) broadcastCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.broadcasts
}

func newTestServer(t *testing.T) (*httptest.Server, *direct.Manager, *fakeService) {
	t.Helper()
	sess, err := session.New("ds_user_id=42; csrftoken=tok", "device-1")
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	fake := &fakeService{}
	manager := direct.NewManager(sess, fake, zerolog.Nop())
	h := handlers.NewHandler(manager, zerolog.Nop())
	srv := httptest.NewServer(api.NewRouter(zerolog.Nop(), h, []string{"http://localhost:5173"}))
	t.Cleanup(srv.Close)
	return srv, manager, fake
}

func TestGetInbox(t *testing.T) {
	srv, manager, _ := newTestServer(t)
	manager.Inbox.AddThread(&models.Thread{ID: "t1", Items: []models.DirectItem{{Timestamp: 100}}}, 0)
	manager.Inbox.SetPendingTotal(2)

	resp, err := http.Get(srv.URL + "/inbox")
	if err != nil {
		t.Fatalf("GET /inbox: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body handlers.InboxResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Threads) != 1 || body.Threads[0].ID != "t1" {
		t.Fatalf("unexpected threads: %+v", body.Threads)
	}
	if body.PendingTotal != 2 || !body.Loaded {
		t.Fatalf("unexpected totals: %+v", body)
	}
}

func TestAcceptThread(t *testing.T) {
	srv, manager, _ := newTestServer(t)
	manager.Inbox.SetPendingTotal(1)
	manager.PendingInbox.AddThread(&models.Thread{
		ID:      "p1",
		Pending: true,
		Items:   []models.DirectItem{{Timestamp: 100}},
	}, 0)

	resp, err := http.Post(srv.URL+"/inbox/p1/accept", "application/json", nil)
	if err != nil {
		t.Fatalf("POST accept: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if manager.Inbox.Find("p1") == nil {
		t.Fatal("expected thread moved into accepted inbox")
	}
}

func TestAcceptThreadNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/inbox/nope/accept", "application/json", nil)
	if err != nil {
		t.Fatalf("POST accept: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestShareValidation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing media id", `{"recipients":[{"thread_id":"t1"}]}`},
		{"no recipients", `{"media_id":"m1","recipients":[]}`},
		{"empty recipient", `{"media_id":"m1","recipients":[{}]}`},
		{"bad json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/share", "application/json", strings.NewReader(tc.body))
			if err != nil {
				t.Fatalf("POST /share: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestShareDispatches(t *testing.T) {
	srv, _, fake := newTestServer(t)

	body := `{"media_id":"media123","recipients":[{"thread_id":"t1"},{"user_id":7}]}`
	resp, err := http.Post(srv.URL+"/share", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /share: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.StatusCode)
	}

	var out handlers.ShareResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Recipients != 2 {
		t.Fatalf("expected 2 recipients, got %d", out.Recipients)
	}

	// Dispatch is asynchronous; wait for both broadcasts to land.
	deadline := time.Now().Add(2 * time.Second)
	for fake.broadcastCount() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("timed out, got %d broadcasts", fake.broadcastCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
