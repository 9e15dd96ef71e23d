package challenges

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Solve inserts the challenge as solved or flips an unsolved row. A row
// that is already solved is left untouched, so zero rows affected means
// someone got there first.
func (r *PostgresRepository) Solve(ctx context.Context, key string) (bool, error) {
	query :=
		`INSERT INTO challenges (key, solved, solved_at) VALUES ($1, TRUE, now())
		 ON CONFLICT (key) DO UPDATE SET solved = TRUE, solved_at = now()
		 WHERE challenges.solved = FALSE
		 `

	res, err := r.db.ExecContext(ctx, query, key)
	if err != nil {
		return false, fmt.Errorf("%w: db error: %w", common.ErrStoreUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: db error: %w", common.ErrStoreUnavailable, err)
	}

	return n > 0, nil
}

func (r *PostgresRepository) IsSolved(ctx context.Context, key string) (bool, error) {
	query :=
		`SELECT solved FROM challenges
		 WHERE key = $1
		 `

	var solved bool
	if err := r.db.QueryRowContext(ctx, query, key).Scan(&solved); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%w: db error: %w", common.ErrStoreUnavailable, err)
	}

	return solved, nil
}
