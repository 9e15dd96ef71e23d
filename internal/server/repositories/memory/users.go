package memory

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/google/uuid"
)

type UserRepository struct {
	mu   sync.RWMutex
	rows []models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Add stores a copy of u, assigning an id when it has none, and returns it.
func (r *UserRepository) Add(u models.User) models.User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.mu.Lock()
	r.rows = append(r.rows, u)
	r.mu.Unlock()
	return u
}

func (r *UserRepository) FindActive(_ context.Context, email, digest string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.rows {
		if u.Email == email && u.PasswordDigest == digest && u.Active() {
			found := u
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *UserRepository) CountActiveByEmail(_ context.Context, email string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, u := range r.rows {
		if u.Email == email && u.Active() {
			n++
		}
	}
	return n, nil
}
