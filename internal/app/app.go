// Package app wires configuration, storage, providers, services, and the
// HTTP server into a running application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/footprints-app/footprints-backend/internal/adapter/postgres"
	galleryrepo "github.com/footprints-app/footprints-backend/internal/adapter/postgres/gallery"
	journalrepo "github.com/footprints-app/footprints-backend/internal/adapter/postgres/journal"
	pagerepo "github.com/footprints-app/footprints-backend/internal/adapter/postgres/page"
	tokenrepo "github.com/footprints-app/footprints-backend/internal/adapter/postgres/token"
	userrepo "github.com/footprints-app/footprints-backend/internal/adapter/postgres/user"
	"github.com/footprints-app/footprints-backend/internal/adapter/provider/contentgen"
	"github.com/footprints-app/footprints-backend/internal/adapter/provider/imagefetch"
	"github.com/footprints-app/footprints-backend/internal/adapter/provider/imagegen"
	"github.com/footprints-app/footprints-backend/internal/adapter/provider/places"
	"github.com/footprints-app/footprints-backend/internal/auth"
	"github.com/footprints-app/footprints-backend/internal/config"
	"github.com/footprints-app/footprints-backend/internal/raster"
	authsvc "github.com/footprints-app/footprints-backend/internal/service/auth"
	"github.com/footprints-app/footprints-backend/internal/service/editor"
	"github.com/footprints-app/footprints-backend/internal/service/journal"
	"github.com/footprints-app/footprints-backend/internal/service/page"
	"github.com/footprints-app/footprints-backend/internal/service/place"
	"github.com/footprints-app/footprints-backend/internal/service/share"
	"github.com/footprints-app/footprints-backend/internal/transport/middleware"
	"github.com/footprints-app/footprints-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, builds the service graph, and serves HTTP until ctx is
// canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	journals := journalrepo.New(pool)
	pages := pagerepo.New(pool)
	gallery := galleryrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	renderer := raster.New(cfg.Canvas.Width, cfg.Canvas.Height)
	fetcher := imagefetch.New(logger)

	search := places.NewProvider(cfg.Places, logger)
	content := contentgen.NewProvider(cfg.Content, logger)
	images := imagegen.NewProvider(cfg.Images, logger)

	authService := authsvc.NewService(logger, users, tokens, jwt, cfg.Auth)
	journalService := journal.NewService(logger, journals, tx)
	pageService := page.NewService(logger, journals, pages, cfg.Canvas)
	editorService := editor.NewService(logger, journals, pages, renderer, fetcher, cfg.Canvas)
	placeService := place.NewService(logger, journals, pages, search, content, images, renderer, cfg.Canvas)
	shareService := share.NewService(logger, journals, pages, gallery, cfg.Canvas)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.Handlers{
		Auth:    rest.NewAuthHandler(authService, logger),
		Journal: rest.NewJournalHandler(journalService, logger),
		Page:    rest.NewPageHandler(pageService, logger),
		Editor:  rest.NewEditorHandler(editorService, logger),
		Place:   rest.NewPlaceHandler(placeService, logger),
		Share:   rest.NewShareHandler(shareService, logger),
		Health:  rest.NewHealthHandler(pool, BuildVersion()),
	}, rest.RouterConfig{
		Logger:        logger,
		Validator:     authService,
		CORS:          cfg.CORS,
		RateLimiter:   limiter,
		RatePerMinute: cfg.Server.RatePerMinute,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
