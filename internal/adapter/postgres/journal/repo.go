// Package journal implements the journal repository using PostgreSQL.
// Journals are the bookshelf entities: one row per book, owned by a user.
package journal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/footprints-app/footprints-backend/internal/adapter/postgres"
	"github.com/footprints-app/footprints-backend/internal/domain"
)

// Repo provides journal persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new journal repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const journalColumns = `id, user_id, title, description, color, is_public, shared_at, created_at`

const createSQL = `
INSERT INTO journals (user_id, title, description, color)
VALUES ($1, $2, $3, $4)
RETURNING ` + journalColumns

const getByIDSQL = `
SELECT ` + journalColumns + `
FROM journals
WHERE id = $1`

const listByUserSQL = `
SELECT ` + journalColumns + `
FROM journals
WHERE user_id = $1
ORDER BY created_at DESC`

const deleteByIDsSQL = `
DELETE FROM journals
WHERE user_id = $1 AND id = ANY($2::uuid[])`

const markPublicSQL = `
UPDATE journals
SET is_public = true,
    shared_at = COALESCE(shared_at, now())
WHERE id = $1
RETURNING ` + journalColumns

// Create inserts a new journal and returns the persisted row.
func (r *Repo) Create(ctx context.Context, journal *domain.Journal) (*domain.Journal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		journal.UserID, journal.Title, journal.Description, journal.Color)

	j, err := scanJournal(row)
	if err != nil {
		return nil, postgres.MapError(err, "journal", journal.UserID)
	}

	return j, nil
}

// GetByID returns a journal by primary key. No ownership filter is applied here;
// callers enforce access (public pages need journals owned by other users).
func (r *Repo) GetByID(ctx context.Context, journalID uuid.UUID) (*domain.Journal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, journalID)

	j, err := scanJournal(row)
	if err != nil {
		return nil, postgres.MapError(err, "journal", journalID)
	}

	return j, nil
}

// List returns all journals for a user, newest first.
// Returns an empty slice (not nil) when the user has no journals.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]*domain.Journal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	defer rows.Close()

	result := []*domain.Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("list journals: %w", err)
		}
		result = append(result, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}

	return result, nil
}

// DeleteByIDs removes the given journals owned by the user and returns how many
// rows were deleted. Page rows cascade. IDs belonging to other users are
// silently skipped so a stale shelf delete cannot touch foreign books.
func (r *Repo) DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByIDsSQL, userID, ids)
	if err != nil {
		return 0, postgres.MapError(err, "journal", userID)
	}

	return int(tag.RowsAffected()), nil
}

// MarkPublic flips is_public to true and stamps shared_at on the first call
// only. Repeated calls keep the original shared_at, so share links stay stable.
func (r *Repo) MarkPublic(ctx context.Context, journalID uuid.UUID) (*domain.Journal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, markPublicSQL, journalID)

	j, err := scanJournal(row)
	if err != nil {
		return nil, postgres.MapError(err, "journal", journalID)
	}

	return j, nil
}

// scanJournal scans one row (pgx.Row or pgx.Rows) into a domain.Journal.
func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var (
		j           domain.Journal
		description pgtype.Text
		sharedAt    pgtype.Timestamptz
	)

	err := row.Scan(&j.ID, &j.UserID, &j.Title, &description, &j.Color,
		&j.IsPublic, &sharedAt, &j.CreatedAt)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		j.Description = &description.String
	}
	if sharedAt.Valid {
		t := sharedAt.Time.UTC()
		j.SharedAt = &t
	}
	j.CreatedAt = j.CreatedAt.UTC()

	return &j, nil
}
