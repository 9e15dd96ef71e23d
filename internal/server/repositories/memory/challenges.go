package memory

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"
)

type ChallengeRepository struct {
	solved *xsync.MapOf[string, bool]
}

func NewChallengeRepository() *ChallengeRepository {
	return &ChallengeRepository{solved: xsync.NewMapOf[string, bool]()}
}

func (r *ChallengeRepository) Solve(_ context.Context, key string) (bool, error) {
	_, loaded := r.solved.LoadOrStore(key, true)
	return !loaded, nil
}

func (r *ChallengeRepository) IsSolved(_ context.Context, key string) (bool, error) {
	v, ok := r.solved.Load(key)
	return ok && v, nil
}
