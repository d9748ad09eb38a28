package token_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footprints-app/footprints-backend/internal/adapter/postgres/testhelper"
	"github.com/footprints-app/footprints-backend/internal/adapter/postgres/token"
	"github.com/footprints-app/footprints-backend/internal/adapter/postgres/user"
	"github.com/footprints-app/footprints-backend/internal/domain"
)

func seedUser(t *testing.T, repo *user.Repo) uuid.UUID {
	t.Helper()

	u, err := repo.Create(context.Background(), &domain.User{
		Email:        "token-" + uuid.New().String()[:8] + "@example.com",
		Username:     "token-tester",
		PasswordHash: "not-a-real-hash",
	})
	require.NoError(t, err)
	return u.ID
}

func TestRepo_CreateAndGetByHash(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := token.New(pool)
	ctx := context.Background()

	userID := seedUser(t, user.New(pool))
	hash := "hash-" + uuid.New().String()

	created, err := repo.Create(ctx, &domain.RefreshToken{
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Nil(t, created.RevokedAt)

	got, err := repo.GetByHash(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, userID, got.UserID)
}

func TestRepo_GetByHash_Unknown(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := token.New(pool)

	_, err := repo.GetByHash(context.Background(), "no-such-hash")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_Revoke_Idempotent(t *testing.T) {
	// Not parallel: DeleteExpired in the sibling test sweeps revoked rows.
	pool := testhelper.SetupTestDB(t)
	repo := token.New(pool)
	ctx := context.Background()

	userID := seedUser(t, user.New(pool))
	hash := "revoke-" + uuid.New().String()

	_, err := repo.Create(ctx, &domain.RefreshToken{
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, repo.Revoke(ctx, hash))

	got, err := repo.GetByHash(ctx, hash)
	require.NoError(t, err)
	require.NotNil(t, got.RevokedAt)
	first := *got.RevokedAt

	// Revoking again must not error and must not move the timestamp.
	require.NoError(t, repo.Revoke(ctx, hash))

	got, err = repo.GetByHash(ctx, hash)
	require.NoError(t, err)
	require.NotNil(t, got.RevokedAt)
	assert.True(t, got.RevokedAt.Equal(first))

	// Unknown hashes are fine too.
	require.NoError(t, repo.Revoke(ctx, "never-existed"))
}

func TestRepo_DeleteExpired(t *testing.T) {
	// Not parallel for the same reason as TestRepo_Revoke_Idempotent.
	pool := testhelper.SetupTestDB(t)
	repo := token.New(pool)
	ctx := context.Background()

	userID := seedUser(t, user.New(pool))

	expired := "expired-" + uuid.New().String()
	revoked := "revoked-" + uuid.New().String()
	live := "live-" + uuid.New().String()

	_, err := repo.Create(ctx, &domain.RefreshToken{
		UserID: userID, TokenHash: expired, ExpiresAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.RefreshToken{
		UserID: userID, TokenHash: revoked, ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Revoke(ctx, revoked))

	_, err = repo.Create(ctx, &domain.RefreshToken{
		UserID: userID, TokenHash: live, ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	n, err := repo.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 2)

	_, err = repo.GetByHash(ctx, expired)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetByHash(ctx, revoked)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByHash(ctx, live)
	assert.NoError(t, err, "live token must survive cleanup")
}
