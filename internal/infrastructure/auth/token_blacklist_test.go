package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stockmaster/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_JTI(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked token is blacklisted, others are not", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-revoked", time.Hour))

		revoked, err := blacklist.IsBlacklisted(ctx, "jti-revoked")
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = blacklist.IsBlacklisted(ctx, "jti-other")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("entries lapse with their ttl", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-short", time.Millisecond))

		time.Sleep(10 * time.Millisecond)

		revoked, err := blacklist.IsBlacklisted(ctx, "jti-short")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("tracks many tokens independently", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		for i := 0; i < 10; i++ {
			require.NoError(t, blacklist.AddToBlacklist(ctx, fmt.Sprintf("jti-%d", i), time.Hour))
		}

		for i := 0; i < 10; i++ {
			revoked, err := blacklist.IsBlacklisted(ctx, fmt.Sprintf("jti-%d", i))
			require.NoError(t, err)
			assert.True(t, revoked, "jti-%d should be blacklisted", i)
		}

		revoked, err := blacklist.IsBlacklisted(ctx, "jti-99")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestInMemoryTokenBlacklist_UserCutoff(t *testing.T) {
	ctx := context.Background()

	t.Run("cutoff rejects tokens issued before it", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		issuedEarlier := time.Now().Add(-time.Hour)

		invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedEarlier)
		require.NoError(t, err)
		assert.False(t, invalidated)

		require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

		invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedEarlier)
		require.NoError(t, err)
		assert.True(t, invalidated)
	})

	t.Run("tokens issued after the cutoff stay valid", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

		invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-1", time.Now().Add(time.Second))
		require.NoError(t, err)
		assert.False(t, invalidated)
	})

	t.Run("other users are unaffected", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

		invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-2", time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.False(t, invalidated)
	})
}
