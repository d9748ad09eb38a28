// Package page implements the page repository using PostgreSQL.
// Pages are keyed by (journal_id, slot) and created lazily on first save;
// item collections and place snapshots live in JSONB columns.
package page

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/footprints-app/footprints-backend/internal/adapter/postgres"
	"github.com/footprints-app/footprints-backend/internal/domain"
)

// Repo provides page persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new page repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const pageColumns = `journal_id, slot, items, place, vibes, detailed_info, canvas_image, generated_images, last_modified`

const getSQL = `
SELECT ` + pageColumns + `
FROM pages
WHERE journal_id = $1 AND slot = $2`

const listByJournalSQL = `
SELECT ` + pageColumns + `
FROM pages
WHERE journal_id = $1
ORDER BY slot`

const upsertSQL = `
INSERT INTO pages (journal_id, slot, items, place, vibes, detailed_info, canvas_image, generated_images, last_modified)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
ON CONFLICT (journal_id, slot) DO UPDATE SET
    items            = EXCLUDED.items,
    place            = EXCLUDED.place,
    vibes            = EXCLUDED.vibes,
    detailed_info    = EXCLUDED.detailed_info,
    canvas_image     = EXCLUDED.canvas_image,
    generated_images = EXCLUDED.generated_images,
    last_modified    = now()
RETURNING ` + pageColumns

const purgeSQL = `
DELETE FROM pages
WHERE journal_id = $1 AND slot = $2`

// Get returns the page at (journalID, slot).
// Returns domain.ErrNotFound for slots never saved.
func (r *Repo) Get(ctx context.Context, journalID uuid.UUID, slot int) (*domain.Page, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getSQL, journalID, slot)

	p, err := scanPage(row)
	if err != nil {
		return nil, postgres.MapError(err, "page", journalID)
	}

	return p, nil
}

// ListByJournal returns every saved page of a journal ordered by slot.
// Unsaved slots have no row; callers fill the gaps when building an index.
func (r *Repo) ListByJournal(ctx context.Context, journalID uuid.UUID) ([]*domain.Page, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByJournalSQL, journalID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	result := []*domain.Page{}
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("list pages: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	return result, nil
}

// Upsert writes the full page state, creating the row on first save.
// last_modified is stamped server-side on every write.
func (r *Repo) Upsert(ctx context.Context, page *domain.Page) (*domain.Page, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	items, err := json.Marshal(page.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}

	var place []byte
	if page.Place != nil {
		place, err = json.Marshal(page.Place)
		if err != nil {
			return nil, fmt.Errorf("marshal place: %w", err)
		}
	}

	var generated []byte
	if page.GeneratedImages != nil {
		generated, err = json.Marshal(page.GeneratedImages)
		if err != nil {
			return nil, fmt.Errorf("marshal generated images: %w", err)
		}
	}

	row := querier.QueryRow(ctx, upsertSQL,
		page.JournalID, page.Slot, items, place,
		page.Vibes, page.DetailedInfo, page.CanvasImage, generated)

	saved, err := scanPage(row)
	if err != nil {
		return nil, postgres.MapError(err, "page", page.JournalID)
	}

	return saved, nil
}

// Purge deletes the page row entirely. Used when a new place is confirmed for
// an already filled slot; the slot reverts to its never-saved state.
// Purging an absent row is not an error.
func (r *Repo) Purge(ctx context.Context, journalID uuid.UUID, slot int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, purgeSQL, journalID, slot); err != nil {
		return postgres.MapError(err, "page", journalID)
	}

	return nil
}

// scanPage scans one row (pgx.Row or pgx.Rows) into a domain.Page.
func scanPage(row pgx.Row) (*domain.Page, error) {
	var (
		p            domain.Page
		items        []byte
		place        []byte
		vibes        pgtype.Text
		detailedInfo pgtype.Text
		canvasImage  pgtype.Text
		generated    []byte
	)

	err := row.Scan(&p.JournalID, &p.Slot, &items, &place,
		&vibes, &detailedInfo, &canvasImage, &generated, &p.LastModified)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &p.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if place != nil {
		p.Place = &domain.Place{}
		if err := json.Unmarshal(place, p.Place); err != nil {
			return nil, fmt.Errorf("unmarshal place: %w", err)
		}
	}
	if generated != nil {
		if err := json.Unmarshal(generated, &p.GeneratedImages); err != nil {
			return nil, fmt.Errorf("unmarshal generated images: %w", err)
		}
	}

	if vibes.Valid {
		p.Vibes = &vibes.String
	}
	if detailedInfo.Valid {
		p.DetailedInfo = &detailedInfo.String
	}
	if canvasImage.Valid {
		p.CanvasImage = &canvasImage.String
	}
	p.LastModified = p.LastModified.UTC()

	return &p, nil
}
