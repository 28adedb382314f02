package service

import (
	"context"
	"encoding/json"
	"errors"

	"roarrealty/internal/apperrors"
	"roarrealty/internal/cache"
	"roarrealty/internal/model"
	"roarrealty/internal/repository"

	"github.com/rs/zerolog/log"
)

const filterOptionsCacheKey = "chat:filter_options:v1"

// FilterOptionsService lists the values the chat UI offers for each filter.
// Results are cached when a cache provider is configured; cache errors only
// cost a datastore read.
type FilterOptionsService struct {
	store repository.PropertyStore
	cache cache.Provider
	ttl   int
}

// NewFilterOptionsService creates the service. cacheProvider may be nil.
func NewFilterOptionsService(store repository.PropertyStore, cacheProvider cache.Provider, ttlSeconds int) *FilterOptionsService {
	return &FilterOptionsService{store: store, cache: cacheProvider, ttl: ttlSeconds}
}

// FilterOptions returns the sorted distinct values per filter field
func (s *FilterOptionsService) FilterOptions(ctx context.Context) (*model.FilterOptions, error) {
	logger := log.Ctx(ctx)

	if s.cache != nil {
		data, err := s.cache.Get(ctx, filterOptionsCacheKey)
		switch {
		case err == nil:
			var opts model.FilterOptions
			if err := json.Unmarshal(data, &opts); err == nil {
				return &opts, nil
			}
			logger.Warn().Msg("discarding undecodable cached filter options")
		case !errors.Is(err, cache.ErrCacheMiss):
			logger.Warn().Err(err).Msg("filter options cache read failed")
		}
	}

	opts, err := s.store.FilterOptions(ctx)
	if err != nil {
		return nil, apperrors.NewDatastoreError("could not fetch filter options", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(opts); err == nil {
			if err := s.cache.Set(ctx, filterOptionsCacheKey, data, s.ttl); err != nil {
				logger.Warn().Err(err).Msg("filter options cache write failed")
			}
		}
	}
	return opts, nil
}
