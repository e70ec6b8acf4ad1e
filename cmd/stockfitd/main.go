// Command stockfitd is the stockfit HTTP service.
// It serves evaluations, the demo fixtures and default weights, and the
// optional evaluation history.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/stockfit/stockfit/internal/api"
	"github.com/stockfit/stockfit/internal/logging"
	"github.com/stockfit/stockfit/internal/platform"
	"github.com/stockfit/stockfit/internal/reports"
	"github.com/stockfit/stockfit/pkg/config"
	"github.com/stockfit/stockfit/pkg/provider"
	"github.com/stockfit/stockfit/pkg/scoring"
)

func main() {
	_ = godotenv.Load()

	log := logging.New(logging.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: envBool("LOG_PRETTY"),
	})

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("stockfitd failed")
	}
}

func run(log zerolog.Logger) error {
	cfg, err := config.LoadFrom(os.Getenv("STOCKFIT_CONFIG"))
	if err != nil {
		return err
	}
	applyEnv(cfg)

	weights, err := cfg.EffectiveWeights()
	if err != nil {
		return err
	}

	prov := provider.Chain{}
	if cfg.Fixtures.File != "" {
		p, err := provider.LoadFile(cfg.Fixtures.File, cfg.Fixtures.FileOptions())
		if err != nil {
			return err
		}
		prov = append(prov, p)
	}
	prov = append(prov, provider.Fixtures())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := api.Options{
		Engine:   scoring.NewEngine(scoring.DefaultMetrics()...),
		Weights:  weights,
		Provider: prov,
		Cache:    api.NewReportCache(cfg.Server.CacheSize),
		Logger:   log,
	}

	if cfg.History.Enabled {
		h, err := openHistory(ctx, cfg.History, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := h.Close(); err != nil {
				log.Error().Err(err).Msg("close history")
			}
		}()
		if h.db != nil {
			opts.Health = h.db.PingContext
		}
		opts.Reports = h.svc
	}

	handler := api.NewHandler(opts)
	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.NewRouter(handler, api.RouterConfig{
			APIKey:         cfg.Server.APIKey,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Bool("history", cfg.History.Enabled).Msg("starting stockfitd")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	return nil
}

// history bundles the report service with the resources it holds open.
type history struct {
	svc     *reports.Service
	db      *sql.DB
	closers []io.Closer
}

// Close releases every held resource, most recently opened first.
func (h *history) Close() error {
	var errs []error
	for i := len(h.closers) - 1; i >= 0; i-- {
		if err := h.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	h.closers = nil
	return errors.Join(errs...)
}

// openHistory builds the report service for the configured backend. The
// db is nil when no database URL is set. On error everything opened so far
// is already closed.
func openHistory(ctx context.Context, hc config.HistoryConfig, log zerolog.Logger) (_ *history, err error) {
	h := &history{}
	defer func() {
		if err != nil {
			h.Close()
		}
	}()

	var store reports.BlobStore
	switch hc.Backend {
	case "s3":
		s, err := reports.NewS3Store(ctx, reports.S3Config{
			Bucket:    hc.Bucket,
			Prefix:    hc.Prefix,
			Region:    hc.Region,
			Endpoint:  hc.Endpoint,
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		})
		if err != nil {
			return nil, err
		}
		store = s
	case "gcs":
		s, err := reports.NewGCSStore(ctx, hc.Bucket, hc.Prefix)
		if err != nil {
			return nil, err
		}
		h.closers = append(h.closers, s)
		store = s
	default:
		store = reports.NewLocalStore(hc.LocalPath)
	}

	if hc.DatabaseURL == "" {
		log.Warn().Msg("history.database_url not set; report index is in-memory")
		h.svc = reports.NewService(store, reports.NewMemoryIndex(), log)
		return h, nil
	}

	db, err := platform.Open(hc.DatabaseURL)
	if err != nil {
		return nil, err
	}
	h.closers = append(h.closers, db)
	if err := platform.AutoMigrate(db); err != nil {
		return nil, err
	}
	log.Info().Msg("database migrations applied")

	h.db = db
	h.svc = reports.NewService(store, reports.NewPostgresIndex(db), log)
	return h, nil
}

// applyEnv overrides config values from the environment.
func applyEnv(cfg *config.Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.History.DatabaseURL = v
	}
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}
