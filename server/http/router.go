package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"parts-finder/internal/config"
	"parts-finder/internal/middleware"
	searchHnd "parts-finder/internal/search/handler"
	"parts-finder/internal/search/store"
	"parts-finder/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, st *store.Store, s *store.Searcher) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(bodyLimit(cfg)))

	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", searchHnd.Upload(cfg, logger, st))
		r.Post("/query", searchHnd.Query(cfg, logger, s))
		r.Get("/export", searchHnd.Export(cfg, logger, s))
	})

	return r
}

// multipart boundaries and part headers around the file
const multipartOverhead = 64 << 10

// bodyLimit caps the request body. The file itself is capped at MaxUploadMB
// by the upload handler, so a file of exactly that size still fits.
func bodyLimit(cfg config.Config) int64 {
	if cfg.MaxUploadMB <= 0 {
		return 0
	}
	return int64(cfg.MaxUploadMB)<<20 + multipartOverhead
}
