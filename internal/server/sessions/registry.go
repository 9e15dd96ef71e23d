// Package sessions keeps the process-wide map from issued session tokens to
// session state. Request-authenticating code resolves tokens here; the login
// flow is the only writer.
package sessions

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
)

// Registry is a concurrency-safe token → session store with per-entry expiry.
type Registry interface {
	// Put registers s under s.Token. Re-putting a token replaces the entry.
	Put(ctx context.Context, s *models.Session) error

	// Get returns the live session for token, or common.ErrSessionNotFound.
	Get(ctx context.Context, token string) (*models.Session, error)

	// Delete removes token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}

var errEmptyToken = errors.New("session token is empty")
