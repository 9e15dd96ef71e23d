package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/baskets"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/challenges"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Baskets(db dbx.DBTX) baskets.Repository
	Challenges(db dbx.DBTX) challenges.Repository
}
