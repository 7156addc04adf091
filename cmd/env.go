package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/civic-tools/district-cli/internal/enrich"
	"github.com/civic-tools/district-cli/internal/model"
	"github.com/civic-tools/district-cli/internal/resilience"
	"github.com/civic-tools/district-cli/internal/store"
	"github.com/civic-tools/district-cli/pkg/civic"
)

// initStore opens the configured store backend. Callers own Close and
// run Migrate themselves.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// newResolver wires the Civic client, the adaptive executor, and the
// lookup cache from config. noCache forces cold lookups regardless of
// the cache settings.
func newResolver(st store.Store, chambers model.ChamberSet, noCache bool) *enrich.Resolver {
	client := civic.NewClient(cfg.Civic.APIKey,
		civic.WithBaseURL(cfg.Civic.BaseURL),
		civic.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Civic.TimeoutSecs) * time.Second}),
		civic.WithRateLimit(cfg.Civic.RateLimitRPS),
	)

	limiter := resilience.NewAdaptiveLimiter(resilience.LimiterConfig{
		InitialDelay: time.Duration(cfg.Pacing.InitialDelayMS) * time.Millisecond,
		InitialAlpha: cfg.Pacing.InitialAlpha,
		MinDelay:     time.Duration(cfg.Pacing.MinDelayMS) * time.Millisecond,
		MaxDelay:     time.Duration(cfg.Pacing.MaxDelayMS) * time.Millisecond,
	})
	executor := resilience.NewExecutor(limiter, cfg.Pacing.MaxAttempts)

	var ttl time.Duration
	if cfg.Cache.Enabled && !noCache {
		ttl = time.Duration(cfg.Cache.TTLHours) * time.Hour
	}

	return enrich.NewResolver(client, executor, st, chambers, ttl)
}

// loadChambers reads the chamber override file when one is given.
func loadChambers(path string) (model.ChamberSet, error) {
	if path == "" {
		return model.DefaultChambers(), nil
	}
	return enrich.LoadChambers(path)
}
