// Package token implements the refresh token repository using PostgreSQL.
// Only SHA-256 hashes of tokens touch the database.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/footprints-app/footprints-backend/internal/adapter/postgres"
	"github.com/footprints-app/footprints-backend/internal/domain"
)

// Repo provides refresh token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const tokenColumns = `id, user_id, token_hash, expires_at, revoked_at, created_at`

const createSQL = `
INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
VALUES ($1, $2, $3)
RETURNING ` + tokenColumns

const getByHashSQL = `
SELECT ` + tokenColumns + `
FROM refresh_tokens
WHERE token_hash = $1`

const revokeSQL = `
UPDATE refresh_tokens
SET revoked_at = now()
WHERE token_hash = $1 AND revoked_at IS NULL`

const deleteExpiredSQL = `
DELETE FROM refresh_tokens
WHERE expires_at < $1 OR revoked_at IS NOT NULL`

// Create stores a new refresh token hash.
func (r *Repo) Create(ctx context.Context, token *domain.RefreshToken) (*domain.RefreshToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL, token.UserID, token.TokenHash, token.ExpiresAt)

	t, err := scanToken(row)
	if err != nil {
		return nil, postgres.MapError(err, "refresh token", token.UserID)
	}

	return t, nil
}

// GetByHash returns the token record for a hash.
// Returns domain.ErrNotFound for unknown hashes.
func (r *Repo) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByHashSQL, hash)

	t, err := scanToken(row)
	if err != nil {
		return nil, postgres.MapError(err, "refresh token", "")
	}

	return t, nil
}

// Revoke marks the token unusable. Revoking an unknown or already revoked
// token is not an error; logout must be idempotent.
func (r *Repo) Revoke(ctx context.Context, hash string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, revokeSQL, hash); err != nil {
		return postgres.MapError(err, "refresh token", "")
	}

	return nil
}

// DeleteExpired removes tokens that expired before now or were revoked, and
// returns how many rows were deleted. Run periodically by the cleanup command.
func (r *Repo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteExpiredSQL, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func scanToken(row pgx.Row) (*domain.RefreshToken, error) {
	var (
		t         domain.RefreshToken
		revokedAt pgtype.Timestamptz
	)

	err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &revokedAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}

	if revokedAt.Valid {
		at := revokedAt.Time.UTC()
		t.RevokedAt = &at
	}
	t.ExpiresAt = t.ExpiresAt.UTC()
	t.CreatedAt = t.CreatedAt.UTC()

	return &t, nil
}
