package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/footprints-app/footprints-backend/internal/auth"
	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/pkg/ctxutil"
)

// Logout revokes the presented refresh token. Revoking an unknown or already
// revoked token succeeds silently; logout is idempotent.
// Returns ErrUnauthorized if no userID is found in context.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if refreshToken != "" {
		if err := s.tokens.Revoke(ctx, auth.HashToken(refreshToken)); err != nil {
			return fmt.Errorf("auth.Logout: %w", err)
		}
	}

	s.log.InfoContext(ctx, "user logged out", slog.String("user_id", userID.String()))
	return nil
}
