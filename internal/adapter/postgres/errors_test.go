package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/footprints-app/footprints-backend/internal/domain"
)

func TestMapError(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, domain.ErrAlreadyExists},
		{"fk violation", &pgconn.PgError{Code: "23503"}, domain.ErrNotFound},
		{"check violation", &pgconn.PgError{Code: "23514"}, domain.ErrValidation},
		{"deadline", context.DeadlineExceeded, context.DeadlineExceeded},
		{"canceled", context.Canceled, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.in, "journal", id)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("MapError(%v) = %v, want wrapped %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapErrorUnknownPassesThrough(t *testing.T) {
	base := errors.New("connection reset")
	got := MapError(base, "page", "page-3")
	if !errors.Is(got, base) {
		t.Errorf("unknown error must stay unwrappable to the original, got %v", got)
	}
	if errors.Is(got, domain.ErrNotFound) {
		t.Error("unknown error must not map to a domain sentinel")
	}
}
