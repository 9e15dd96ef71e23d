package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/puzpuzpuz/xsync/v3"
)

// DefaultSweepInterval is how often Run evicts expired sessions.
const DefaultSweepInterval = time.Minute

// MemoryRegistry keeps sessions in process memory. Expired entries are
// invisible to Get immediately and physically removed by Run.
type MemoryRegistry struct {
	entries *xsync.MapOf[string, models.Session]
	now     func() time.Time
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		entries: xsync.NewMapOf[string, models.Session](),
		now:     time.Now,
	}
}

func (r *MemoryRegistry) Put(_ context.Context, s *models.Session) error {
	if s.Token == "" {
		return errEmptyToken
	}
	r.entries.Store(s.Token, *s)
	return nil
}

func (r *MemoryRegistry) Get(_ context.Context, token string) (*models.Session, error) {
	s, ok := r.entries.Load(token)
	if !ok {
		return nil, common.ErrSessionNotFound
	}
	if s.Expired(r.now()) {
		r.entries.Delete(token)
		return nil, common.ErrSessionNotFound
	}
	return &s, nil
}

func (r *MemoryRegistry) Delete(_ context.Context, token string) error {
	r.entries.Delete(token)
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (r *MemoryRegistry) Len() int {
	return r.entries.Size()
}

// Sweep drops every expired entry and returns how many were removed.
func (r *MemoryRegistry) Sweep() int {
	now := r.now()
	removed := 0
	r.entries.Range(func(token string, s models.Session) bool {
		if s.Expired(now) {
			r.entries.Delete(token)
			removed++
		}
		return true
	})
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *MemoryRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
