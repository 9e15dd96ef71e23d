// Package memory provides process-local repositories. They back the server
// when no database DSN is configured and serve as realistic fakes in tests.
package memory

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/baskets"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/challenges"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/users"
)

// RepositoryManager ignores the DBTX it is handed; every call returns the
// same shared store.
type RepositoryManager struct {
	users      *UserRepository
	baskets    *BasketRepository
	challenges *ChallengeRepository
}

func NewRepositoryManager() *RepositoryManager {
	return &RepositoryManager{
		users:      NewUserRepository(),
		baskets:    NewBasketRepository(),
		challenges: NewChallengeRepository(),
	}
}

func (m *RepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *RepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *RepositoryManager) Baskets(dbx.DBTX) baskets.Repository {
	return m.baskets
}

func (m *RepositoryManager) Challenges(dbx.DBTX) challenges.Repository {
	return m.challenges
}

// UserStore exposes the concrete user store for seeding.
func (m *RepositoryManager) UserStore() *UserRepository {
	return m.users
}

// BasketStore exposes the concrete basket store for inspection.
func (m *RepositoryManager) BasketStore() *BasketRepository {
	return m.baskets
}
