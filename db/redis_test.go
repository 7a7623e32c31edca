// api/db/redis_test.go
package db

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/model"
)

func TestMain(m *testing.M) {
	logger.InitLogger("../logging")
	defer logger.Sync()
	m.Run()
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := RedisClient
	RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		RedisClient.Close()
		RedisClient = prev
	})
	return mr
}

func TestProfileCacheRoundTrip(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	profile := &model.Profile{ID: "u1", Email: "owner@fixhub.app", Role: model.RoleAdmin}
	require.NoError(t, CacheProfile(ctx, profile))

	cached, err := GetCachedProfile(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, profile.Email, cached.Email)
	assert.Equal(t, profile.Role, cached.Role)

	require.NoError(t, DeleteCachedProfile(ctx, "u1"))
	cached, err = GetCachedProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestGetCachedProfileMissIsNotAnError(t *testing.T) {
	withMiniredis(t)

	cached, err := GetCachedProfile(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestTokenRevocation(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, "tok1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, RevokeToken(ctx, "tok1", time.Minute))

	revoked, err = IsTokenRevoked(ctx, "tok1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Denylist entries expire with the token itself.
	mr.FastForward(2 * time.Minute)
	revoked, err = IsTokenRevoked(ctx, "tok1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRateLimitBlocksPastLimit(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := RateLimit(ctx, "1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := RateLimit(ctx, "1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// A different client is unaffected.
	allowed, err = RateLimit(ctx, "5.6.7.8", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}
