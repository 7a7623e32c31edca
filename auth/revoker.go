// api/auth/revoker.go
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/fixhub-app/fixhub/api/db"
)

// RedisRevoker denylists token ids in Redis so revocation survives restarts
// and is shared across instances.
type RedisRevoker struct{}

func NewRedisRevoker() *RedisRevoker {
	return &RedisRevoker{}
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return db.RevokeToken(ctx, tokenID, ttl)
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return db.IsTokenRevoked(ctx, tokenID)
}

// MemoryRevoker is an in-process denylist for tests and local development.
type MemoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{revoked: make(map[string]time.Time)}
}

func (r *MemoryRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	r.revoked[tokenID] = time.Now().Add(ttl)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(r.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
