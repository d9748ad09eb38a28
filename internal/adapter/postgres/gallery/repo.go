// Package gallery implements the community gallery repository using
// PostgreSQL. Entries are immutable snapshot copies; the only write is an
// insert and the only read is a filtered, paginated list.
package gallery

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/footprints-app/footprints-backend/internal/adapter/postgres"
	"github.com/footprints-app/footprints-backend/internal/domain"
)

// Repo provides gallery persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// New creates a new gallery repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const insertSQL = `
INSERT INTO gallery_entries (image_url, journal_id, page_slot, place, page_items)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, image_url, journal_id, page_slot, place, page_items, created_at`

// Insert stores a new gallery entry and returns the persisted copy.
func (r *Repo) Insert(ctx context.Context, entry *domain.GalleryEntry) (*domain.GalleryEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var place []byte
	if entry.Place != nil {
		b, err := json.Marshal(entry.Place)
		if err != nil {
			return nil, fmt.Errorf("marshal place: %w", err)
		}
		place = b
	}

	items, err := json.Marshal(entry.PageItems)
	if err != nil {
		return nil, fmt.Errorf("marshal page items: %w", err)
	}

	row := querier.QueryRow(ctx, insertSQL,
		entry.ImageURL, entry.JournalID, entry.PageSlot, place, items)

	saved, err := scanEntry(row)
	if err != nil {
		return nil, postgres.MapError(err, "gallery entry", entry.JournalID)
	}

	return saved, nil
}

// List returns gallery entries newest first, honoring the filter.
// The query is built dynamically because the journal filter is optional.
func (r *Repo) List(ctx context.Context, filter domain.GalleryFilter) ([]*domain.GalleryEntry, error) {
	filter.Normalize()

	builder := r.sb.
		Select("id", "image_url", "journal_id", "page_slot", "place", "page_items", "created_at").
		From("gallery_entries").
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.JournalID != nil {
		builder = builder.Where(sq.Eq{"journal_id": *filter.JournalID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build gallery query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list gallery entries: %w", err)
	}
	defer rows.Close()

	result := []*domain.GalleryEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list gallery entries: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list gallery entries: %w", err)
	}

	return result, nil
}

// scanEntry scans one row (pgx.Row or pgx.Rows) into a domain.GalleryEntry.
func scanEntry(row pgx.Row) (*domain.GalleryEntry, error) {
	var (
		e     domain.GalleryEntry
		place []byte
		items []byte
	)

	err := row.Scan(&e.ID, &e.ImageURL, &e.JournalID, &e.PageSlot,
		&place, &items, &e.CreatedAt)
	if err != nil {
		return nil, err
	}

	if place != nil {
		e.Place = &domain.Place{}
		if err := json.Unmarshal(place, e.Place); err != nil {
			return nil, fmt.Errorf("unmarshal place: %w", err)
		}
	}
	if items != nil {
		if err := json.Unmarshal(items, &e.PageItems); err != nil {
			return nil, fmt.Errorf("unmarshal page items: %w", err)
		}
	}
	e.CreatedAt = e.CreatedAt.UTC()

	return &e, nil
}
