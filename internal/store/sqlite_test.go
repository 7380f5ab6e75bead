package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "session.db")
	s, err := NewSQLiteStore(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCookieRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	cookie, err := s.GetCookie(ctx)
	if err != nil {
		t.Fatalf("GetCookie: %v", err)
	}
	if cookie != "" {
		t.Fatalf("expected empty cookie before save, got %q", cookie)
	}

	want := "ds_user_id=1; csrftoken=tok"
	if err := s.SaveCookie(ctx, want); err != nil {
		t.Fatalf("SaveCookie: %v", err)
	}
	cookie, err = s.GetCookie(ctx)
	if err != nil {
		t.Fatalf("GetCookie after save: %v", err)
	}
	if cookie != want {
		t.Fatalf("expected %q, got %q", want, cookie)
	}
}

func TestDeviceIDStable(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, err := s.DeviceID(ctx)
	if err != nil {
		t.Fatalf("DeviceID: %v", err)
	}
	if first == "" {
		t.Fatal("expected generated device id")
	}

	second, err := s.DeviceID(ctx)
	if err != nil {
		t.Fatalf("DeviceID second call: %v", err)
	}
	if second != first {
		t.Fatalf("device id changed between calls: %q vs %q", first, second)
	}
}
