package sessions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "sess"

// RedisRegistry stores sessions as JSON values whose TTL matches the
// session expiry. Keys hold a SHA-256 of the token, never the token itself.
type RedisRegistry struct {
	redis  redis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewRedisRegistry(client redis.UniversalClient, prefix string) *RedisRegistry {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisRegistry{redis: client, prefix: prefix, now: time.Now}
}

func (r *RedisRegistry) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return r.prefix + ":" + hex.EncodeToString(sum[:])
}

func (r *RedisRegistry) Put(ctx context.Context, s *models.Session) error {
	if s.Token == "" {
		return errEmptyToken
	}

	var ttl time.Duration
	if !s.ExpiresAt.IsZero() {
		ttl = s.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return fmt.Errorf("session %s already expired", s.ID)
		}
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	if err := r.redis.Set(ctx, r.key(s.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *RedisRegistry) Get(ctx context.Context, token string) (*models.Session, error) {
	data, err := r.redis.Get(ctx, r.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	s := &models.Session{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("corrupt session record: %w", err)
	}
	s.Token = token
	return s, nil
}

func (r *RedisRegistry) Delete(ctx context.Context, token string) error {
	if err := r.redis.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}
