package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
)

type BasketRepository struct {
	mu     sync.Mutex
	byUser map[string]models.Basket
	nextID int64
}

func NewBasketRepository() *BasketRepository {
	return &BasketRepository{byUser: make(map[string]models.Basket)}
}

func (r *BasketRepository) FindOrCreate(_ context.Context, userID string) (*models.Basket, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.byUser[userID]; ok {
		return &b, false, nil
	}

	r.nextID++
	b := models.Basket{ID: strconv.FormatInt(r.nextID, 10), UserID: userID}
	r.byUser[userID] = b
	return &b, true, nil
}

// Get returns the basket with the given id, if any.
func (r *BasketRepository) Get(id string) (models.Basket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.byUser {
		if b.ID == id {
			return b, true
		}
	}
	return models.Basket{}, false
}

func (r *BasketRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byUser)
}
