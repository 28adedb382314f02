package service

import (
	"context"
	"errors"
	"testing"

	"roarrealty/internal/apperrors"
	"roarrealty/internal/cache"
	"roarrealty/internal/model"
	"roarrealty/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	repository.PropertyStore
	calls int
	err   error
}

func (s *countingStore) FilterOptions(ctx context.Context) (*model.FilterOptions, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.PropertyStore.FilterOptions(ctx)
}

func newRedisProvider(t *testing.T) (cache.Provider, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(context.Background(), cache.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return cache.NewRedisAdapter(client), mr
}

func TestFilterOptionsService_NoCache(t *testing.T) {
	store := &countingStore{PropertyStore: sampleStore()}
	svc := NewFilterOptionsService(store, nil, 300)

	opts, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Dubai Creek Harbour", "Dubai Harbour", "Sobha Hartland"}, opts.Areas)
	assert.Equal(t, []string{"Ready", "Under Construction"}, opts.Statuses)
	assert.Equal(t, []int{1, 2}, opts.BedroomOptions)
	assert.Equal(t, []string{}, opts.Developers)
}

func TestFilterOptionsService_CachesResult(t *testing.T) {
	provider, mr := newRedisProvider(t)
	store := &countingStore{PropertyStore: sampleStore()}
	svc := NewFilterOptionsService(store, provider, 300)

	first, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)
	second, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.calls)
	assert.True(t, mr.Exists(filterOptionsCacheKey))
}

func TestFilterOptionsService_CacheUnavailable(t *testing.T) {
	provider, mr := newRedisProvider(t)
	mr.Close()

	store := &countingStore{PropertyStore: sampleStore()}
	svc := NewFilterOptionsService(store, provider, 300)

	opts, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)
	assert.Len(t, opts.Areas, 3)
}

func TestFilterOptionsService_DatastoreError(t *testing.T) {
	store := &countingStore{PropertyStore: sampleStore(), err: errors.New("relation does not exist")}
	svc := NewFilterOptionsService(store, nil, 300)

	_, err := svc.FilterOptions(context.Background())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDatastore))
}
