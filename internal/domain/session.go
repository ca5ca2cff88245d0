package domain

import (
	"context"
	"time"
)

// SessionStore is the external key-value collaborator holding session state.
// A session binds an opaque token to exactly one user id; it is created once,
// read on every authenticated request, and deleted once (explicitly on logout
// or passively when the store's TTL elapses). The core keeps no copy of
// token-to-user mappings across requests.
type SessionStore interface {
	// Create mints a fresh token bound to userID with the given TTL.
	Create(ctx context.Context, userID string, ttl time.Duration) (token string, err error)

	// Get resolves a token to its user id.
	// Returns ErrSessionNotFound for unknown, deleted, and expired tokens alike.
	Get(ctx context.Context, token string) (userID string, err error)

	// Delete removes the token. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
}
