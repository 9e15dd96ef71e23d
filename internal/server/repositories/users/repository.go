package users

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
)

// Repository is the credential store seen by the login core.
type Repository interface {
	// FindActive returns the non-deleted user whose email and stored digest
	// both match, or common.ErrorNotFound.
	FindActive(ctx context.Context, email, digest string) (*models.User, error)
	CountActiveByEmail(ctx context.Context, email string) (int64, error)
}
