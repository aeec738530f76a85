package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parts-finder/internal/config"
	"parts-finder/internal/search/store"
	serverhttp "parts-finder/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uploads := store.New(cfg.UploadTTL, logger)
	go uploads.Run(ctx, cfg.SweepInterval)
	searcher := store.NewSearcher(uploads, store.NewResultCache(cfg.CacheMaxItems, cfg.CacheTTL))

	r := serverhttp.NewRouter(cfg, logger, uploads, searcher)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().
		Str("addr", cfg.Addr()).
		Str("match_mode", cfg.MatchMode).
		Dur("upload_ttl", cfg.UploadTTL).
		Int("cache_items", cfg.CacheMaxItems).
		Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	logger.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("bye")
}
