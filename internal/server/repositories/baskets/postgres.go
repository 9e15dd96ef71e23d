package baskets

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
)

// PostgresRepository relies on the UNIQUE (user_id) constraint of the
// baskets table; the upsert touches the existing row so RETURNING always
// yields the id.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindOrCreate(ctx context.Context, userID string) (*models.Basket, bool, error) {
	query :=
		`INSERT INTO baskets (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id, (xmax = 0) AS created
		 `

	basket := &models.Basket{UserID: userID}
	var created bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&basket.ID, &created); err != nil {
		return nil, false, fmt.Errorf("%w: db error: %w", common.ErrProvisioningFailed, err)
	}

	return basket, created, nil
}
