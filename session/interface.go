package session

import "context"

// Store defines the interface for durable session storage. All writes for
// one token are expected to be serialized by the caller (the orchestrator
// holds a per-session lock across a turn); the store itself only guarantees
// that individual operations are atomic.
type Store interface {
	// Load retrieves a session and its ordered message log (oldest first).
	// Returns nil if the session is not found (not an error).
	Load(ctx context.Context, token string) (*Session, error)

	// UpsertActive inserts the session if absent; otherwise it updates the
	// language and owning user and clears the end timestamp. Idempotent.
	UpsertActive(ctx context.Context, token, userRef, language string) error

	// End sets the session's end timestamp. The message log is kept.
	// Returns ErrNotFound if the session does not exist.
	End(ctx context.Context, token string) error

	// Reset deletes every message for the token and clears the end
	// timestamp, so the token can begin a fresh log.
	// Returns ErrNotFound if the session does not exist.
	Reset(ctx context.Context, token string) error

	// Append adds one message to the end of the session's log.
	// Returns ErrNotFound if the session does not exist.
	Append(ctx context.Context, token, role, content string) error

	// Close closes the store and releases any resources.
	Close() error
}
