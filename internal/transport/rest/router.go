package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/footprints-app/footprints-backend/internal/config"
	"github.com/footprints-app/footprints-backend/internal/transport/middleware"
)

// Handlers bundles the REST handlers wired into the router.
type Handlers struct {
	Auth    *AuthHandler
	Journal *JournalHandler
	Page    *PageHandler
	Editor  *EditorHandler
	Place   *PlaceHandler
	Share   *ShareHandler
	Health  *HealthHandler
}

// tokenValidator resolves an access token to a user id. Satisfied by the
// auth service.
type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// RouterConfig carries the cross-cutting pieces the router needs besides
// the handlers themselves.
type RouterConfig struct {
	Logger        *slog.Logger
	Validator     tokenValidator
	CORS          config.CORSConfig
	RateLimiter   *middleware.RateLimiter
	RatePerMinute int
}

// NewRouter builds the full HTTP routing table and wraps it in the
// middleware chain. Auth resolves the bearer token when present but lets
// anonymous requests through; the public viewer and gallery depend on
// that, and owner-only services reject anonymous callers themselves.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Probes.
	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/live", h.Health.Live).Methods(http.MethodGet)

	// Authentication.
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	auth.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)

	// Journals and pages.
	r.HandleFunc("/journals", h.Journal.List).Methods(http.MethodGet)
	r.HandleFunc("/journals", h.Journal.Create).Methods(http.MethodPost)
	r.HandleFunc("/journals/batch-delete", h.Journal.BatchDelete).Methods(http.MethodPost)

	pages := r.PathPrefix("/journals/{journalID}/pages").Subrouter()
	pages.HandleFunc("", h.Page.Index).Methods(http.MethodGet)
	pages.HandleFunc("/{slot}", h.Page.Get).Methods(http.MethodGet)
	pages.HandleFunc("/{slot}", h.Page.Delete).Methods(http.MethodDelete)
	pages.HandleFunc("/{slot}/place", h.Place.Confirm).Methods(http.MethodPost)
	pages.HandleFunc("/{slot}/items", h.Editor.AddItem).Methods(http.MethodPost)
	pages.HandleFunc("/{slot}/items/{itemID}", h.Editor.UpdateItem).Methods(http.MethodPatch)
	pages.HandleFunc("/{slot}/items/{itemID}", h.Editor.DeleteItem).Methods(http.MethodDelete)
	pages.HandleFunc("/{slot}/share", h.Share.SharePage).Methods(http.MethodPost)
	pages.HandleFunc("/{slot}/gallery", h.Share.ShareToGallery).Methods(http.MethodPost)

	// Editor sidebar and place search.
	r.HandleFunc("/assets", h.Editor.Assets).Methods(http.MethodGet)
	r.HandleFunc("/places/autocomplete", h.Place.Autocomplete).Methods(http.MethodGet)
	r.HandleFunc("/places/search", h.Place.Search).Methods(http.MethodGet)

	// Anonymous surfaces.
	r.HandleFunc("/shared/journal/{journalID}", h.Share.PublicJournal).Methods(http.MethodGet)
	r.HandleFunc("/shared/journal/{journalID}/page/{slot}", h.Share.PublicPage).Methods(http.MethodGet)
	r.HandleFunc("/gallery", h.Share.Gallery).Methods(http.MethodGet)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(cfg.Logger),
		middleware.CORS(cfg.CORS),
		middleware.Logger(cfg.Logger),
		cfg.RateLimiter.Limit(cfg.RatePerMinute),
		middleware.Auth(cfg.Validator),
	)

	return chain(r)
}
