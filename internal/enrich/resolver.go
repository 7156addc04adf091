package enrich

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/civic-tools/district-cli/internal/model"
	"github.com/civic-tools/district-cli/internal/resilience"
	"github.com/civic-tools/district-cli/internal/store"
	"github.com/civic-tools/district-cli/pkg/civic"
)

// Resolver turns one street address into per-jurisdiction seats. Raw API
// responses are cached so a repeated address costs nothing; extraction
// always runs fresh, so chamber config changes apply to cached data too.
type Resolver struct {
	client   civic.Client
	executor *resilience.Executor
	store    store.Store
	chambers model.ChamberSet
	cacheTTL time.Duration
}

// NewResolver creates a Resolver. A cacheTTL of 0 disables the cache;
// nil chambers falls back to the defaults.
func NewResolver(client civic.Client, ex *resilience.Executor, st store.Store, chambers model.ChamberSet, cacheTTL time.Duration) *Resolver {
	if chambers == nil {
		chambers = model.DefaultChambers()
	}
	return &Resolver{
		client:   client,
		executor: ex,
		store:    st,
		chambers: chambers,
		cacheTTL: cacheTTL,
	}
}

// Chambers returns the chamber set used for extraction.
func (r *Resolver) Chambers() model.ChamberSet {
	return r.chambers
}

// Limiter exposes the adaptive limiter pacing remote lookups.
func (r *Resolver) Limiter() *resilience.AdaptiveLimiter {
	return r.executor.Limiter()
}

// Resolve looks up the districts for an address. The bool reports
// whether the result came from cache; cached responses never touch the
// executor or its limiter.
func (r *Resolver) Resolve(ctx context.Context, address string) (model.Districts, bool, error) {
	key := cacheKey(address)

	if r.cacheTTL > 0 {
		data, err := r.store.GetCachedLookup(ctx, key)
		if err != nil {
			zap.L().Warn("enrich: cache read failed", zap.String("address", address), zap.Error(err))
		} else if data != nil {
			var resp civic.RepresentativesResponse
			if err := json.Unmarshal(data, &resp); err != nil {
				zap.L().Warn("enrich: corrupt cache entry, refetching", zap.String("address", address), zap.Error(err))
			} else {
				districts, err := Extract(&resp, r.chambers)
				if err != nil {
					return nil, false, err
				}
				return districts, true, nil
			}
		}
	}

	resp, err := resilience.Execute(ctx, r.executor, func(ctx context.Context) (*civic.RepresentativesResponse, error) {
		return r.client.Representatives(ctx, address)
	})
	if err != nil {
		return nil, false, err
	}

	districts, err := Extract(resp, r.chambers)
	if err != nil {
		return nil, false, err
	}

	if r.cacheTTL > 0 {
		if data, err := json.Marshal(resp); err == nil {
			if err := r.store.SetCachedLookup(ctx, key, data, r.cacheTTL); err != nil {
				zap.L().Warn("enrich: cache write failed", zap.String("address", address), zap.Error(err))
			}
		}
	}

	return districts, false, nil
}

// cacheKey canonicalizes an address for cache lookups: Unicode is
// NFC-normalized and runs of whitespace collapse to single spaces, so
// trivially reformatted addresses share an entry.
func cacheKey(address string) string {
	return norm.NFC.String(strings.Join(strings.Fields(address), " "))
}
