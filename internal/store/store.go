package store

import "context"

// CredentialStore defines the interface for local persistence of the
// login session. SQLiteStore implements this interface.
type CredentialStore interface {
	// Connection management
	Close() error
	Ping(ctx context.Context) error

	// Credential operations
	GetCookie(ctx context.Context) (string, error)
	SaveCookie(ctx context.Context, cookie string) error

	// DeviceID returns the stable device identifier, generating and
	// persisting one on first use.
	DeviceID(ctx context.Context) (string, error)
}
