// Package baskets declares and implements the per-user basket store.
package baskets

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
)

// Repository provisions baskets.
type Repository interface {
	// FindOrCreate returns the basket owned by userID, creating it when none
	// exists. The boolean reports whether this call created it. Concurrent
	// calls for one user must converge on a single basket.
	FindOrCreate(ctx context.Context, userID string) (*models.Basket, bool, error)
}
