// Package journal implements the bookshelf operations: listing, creating,
// and deleting a user's journals.
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/pkg/ctxutil"
)

// journalRepo defines the journal repository interface needed by this service.
type journalRepo interface {
	Create(ctx context.Context, journal *domain.Journal) (*domain.Journal, error)
	GetByID(ctx context.Context, journalID uuid.UUID) (*domain.Journal, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Journal, error)
	DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
}

// txManager defines the transaction manager interface needed by this service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements bookshelf operations.
type Service struct {
	log      *slog.Logger
	journals journalRepo
	tx       txManager
}

// NewService creates a new journal service instance.
func NewService(logger *slog.Logger, journals journalRepo, tx txManager) *Service {
	return &Service{
		log:      logger.With("service", "journal"),
		journals: journals,
		tx:       tx,
	}
}

// CreateInput holds parameters for journal creation.
type CreateInput struct {
	Title       string
	Description *string
	// Color is optional; an empty value draws a random color from the
	// book palette.
	Color string
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 100 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}
	if i.Description != nil && len(*i.Description) > 100 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}
	if i.Color != "" && (len(i.Color) != 7 || i.Color[0] != '#') {
		errs = append(errs, domain.FieldError{Field: "color", Message: "must be a #rrggbb color"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Create adds a journal to the authenticated user's shelf.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Journal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.Title = strings.TrimSpace(input.Title)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	color := input.Color
	if color == "" {
		color = domain.RandomColor()
	}

	journal, err := s.journals.Create(ctx, &domain.Journal{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Color:       color,
	})
	if err != nil {
		return nil, fmt.Errorf("journal.Create: %w", err)
	}

	s.log.InfoContext(ctx, "journal created",
		slog.String("journal_id", journal.ID.String()),
		slog.String("user_id", userID.String()))

	return journal, nil
}

// List returns the authenticated user's shelf, newest journal first.
func (s *Service) List(ctx context.Context) ([]*domain.Journal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	journals, err := s.journals.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("journal.List: %w", err)
	}

	return journals, nil
}

// Get returns one journal, enforcing ownership.
// Returns ErrForbidden when the journal belongs to another user.
func (s *Service) Get(ctx context.Context, journalID uuid.UUID) (*domain.Journal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	journal, err := s.journals.GetByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("journal.Get: %w", err)
	}
	if !journal.IsOwnedBy(userID) {
		return nil, domain.ErrForbidden
	}

	return journal, nil
}

// Delete removes a batch of journals from the shelf in one transaction and
// returns how many were deleted. IDs not owned by the caller are skipped,
// never an error; a stale client must not be able to fail the whole batch.
func (s *Service) Delete(ctx context.Context, ids []uuid.UUID) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.journals.DeleteByIDs(txCtx, userID, ids)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("journal.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "journals deleted",
		slog.Int("requested", len(ids)), slog.Int("deleted", deleted),
		slog.String("user_id", userID.String()))

	return deleted, nil
}
