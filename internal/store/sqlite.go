package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists the login session in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
// If dbPath is empty, defaults to "./data/session.db"
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = "./data/session.db"
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}

	// Initialize schema
	if err := store.initSchema(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

// initSchema creates tables if they don't exist.
func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS credentials (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		cookie TEXT NOT NULL DEFAULT '',
		device_id TEXT NOT NULL DEFAULT '',
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	INSERT OR IGNORE INTO credentials (id) VALUES (1);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetCookie returns the stored login cookie, or "" if none was saved.
func (s *SQLiteStore) GetCookie(ctx context.Context) (string, error) {
	var cookie string
	err := s.db.QueryRowContext(ctx,
		`SELECT cookie FROM credentials WHERE id = 1`,
	).Scan(&cookie)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return cookie, nil
}

// SaveCookie stores the login cookie.
func (s *SQLiteStore) SaveCookie(ctx context.Context, cookie string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE credentials SET cookie = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1`,
		cookie,
	)
	return err
}

// DeviceID returns the stable device identifier, generating and
// persisting a new one on first use.
func (s *SQLiteStore) DeviceID(ctx context.Context) (string, error) {
	var deviceID string
	err := s.db.QueryRowContext(ctx,
		`SELECT device_id FROM credentials WHERE id = 1`,
	).Scan(&deviceID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	if deviceID != "" {
		return deviceID, nil
	}

	deviceID = uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		`UPDATE credentials SET device_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1`,
		deviceID,
	); err != nil {
		return "", err
	}
	return deviceID, nil
}
