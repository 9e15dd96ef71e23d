package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindActive(ctx context.Context, email, digest string) (*models.User, error) {
	query :=
		`SELECT id, email, password, totp_secret, role, deleted_at FROM users
		 WHERE email = $1 AND password = $2 AND deleted_at IS NULL
		 LIMIT 1
		 `

	var (
		user      models.User
		totp      sql.NullString
		deletedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, email, digest).
		Scan(&user.ID, &user.Email, &user.PasswordDigest, &totp, &user.Role, &deletedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: db error: %w", common.ErrStoreUnavailable, err)
	}

	user.TOTPSecret = totp.String
	if deletedAt.Valid {
		user.DeletedAt = &deletedAt.Time
	}

	return &user, nil
}

func (r *PostgresRepository) CountActiveByEmail(ctx context.Context, email string) (int64, error) {
	query :=
		`SELECT COUNT(*) FROM users
		 WHERE email = $1 AND deleted_at IS NULL
		 `

	var n int64
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: db error: %w", common.ErrStoreUnavailable, err)
	}

	return n, nil
}
