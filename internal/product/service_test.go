package product

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache records cache traffic so the cache-aside flow can be observed.
type fakeCache struct {
	data   map[string][]byte
	hits   int
	misses int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	raw, ok := f.data[key]
	if !ok {
		f.misses++
		return errors.New("miss")
	}
	f.hits++
	return json.Unmarshal(raw, dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func TestGetByID_CacheAside(t *testing.T) {
	cache := newFakeCache()
	svc := NewService(NewInMemoryRepository(seedCatalog()), cache, nil)

	first, err := svc.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.misses)

	second, err := svc.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first, second)
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	cache := newFakeCache()
	repo := NewInMemoryRepository(seedCatalog())
	svc := NewService(repo, cache, nil)

	p, err := svc.GetByID(1)
	require.NoError(t, err)

	p.SellingPrice = 14
	_, err = svc.Update(1, p)
	require.NoError(t, err)

	// next read goes to the repository, not the stale entry
	fresh, err := svc.GetByID(1)
	require.NoError(t, err)
	assert.InDelta(t, 14, fresh.SellingPrice, 0.001)
}

func TestVariants(t *testing.T) {
	svc := NewService(NewInMemoryRepository(seedCatalog()), nil, nil)

	variants, err := svc.Variants(1)
	require.NoError(t, err)
	assert.Len(t, variants, 2)

	solo, err := svc.Variants(4)
	require.NoError(t, err)
	require.Len(t, solo, 1)
	assert.Equal(t, 4, solo[0].ID)

	_, err = svc.Variants(99)
	require.ErrorIs(t, err, ErrNotFound)
}
