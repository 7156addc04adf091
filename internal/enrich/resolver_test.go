package enrich

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/civic-tools/district-cli/internal/model"
	"github.com/civic-tools/district-cli/pkg/civic/mocks"
)

func TestResolver_CorruptCacheEntryRefetches(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	address := "12 Elm St, Columbus, OH"

	require.NoError(t, st.SetCachedLookup(ctx, cacheKey(address), []byte("{not json"), time.Hour))

	client := mocks.NewMockClient(t)
	client.On("Representatives", mock.Anything, address).
		Return(fixtureFor(address), nil).Once()

	r := NewResolver(client, fastExecutor(), st, nil, time.Hour)

	districts, fromCache, err := r.Resolve(ctx, address)
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, "House Rep for "+address, districts[model.JurisdictionStateHouse].Official)

	// The refetch repaired the cache entry.
	districts, fromCache, err = r.Resolve(ctx, address)
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, "House Rep for "+address, districts[model.JurisdictionStateHouse].Official)
}

func TestResolver_CacheDisabledNeverStores(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	address := "12 Elm St, Columbus, OH"

	client := mocks.NewMockClient(t)
	client.On("Representatives", mock.Anything, address).
		Return(fixtureFor(address), nil).Twice()

	r := NewResolver(client, fastExecutor(), st, nil, 0)

	_, fromCache, err := r.Resolve(ctx, address)
	require.NoError(t, err)
	assert.False(t, fromCache)

	_, fromCache, err = r.Resolve(ctx, address)
	require.NoError(t, err)
	assert.False(t, fromCache)

	data, err := st.GetCachedLookup(ctx, cacheKey(address))
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestResolver_NilChambersUsesDefaults(t *testing.T) {
	r := NewResolver(mocks.NewMockClient(t), fastExecutor(), newTestStore(t), nil, 0)
	assert.Equal(t, model.DefaultChambers(), r.Chambers())
}
