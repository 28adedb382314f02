package service

import (
	"context"
	"time"

	"roarrealty/internal/apperrors"
	"roarrealty/internal/model"
	"roarrealty/internal/query"
	"roarrealty/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const searchLogTimeout = 5 * time.Second

// Searcher runs a canonical filter against the property datastore
type Searcher interface {
	Search(ctx context.Context, f model.CanonicalFilter) ([]model.PropertySummary, error)
}

// SearchLogger records searches made through the assistant
type SearchLogger interface {
	LogSearch(ctx context.Context, entry model.ChatSearchLog)
}

// PropertySearchService handles search business logic
type PropertySearchService struct {
	store repository.PropertyStore
	limit int
}

// NewPropertySearchService creates a new search service returning at most limit records
func NewPropertySearchService(store repository.PropertyStore, limit int) *PropertySearchService {
	if limit <= 0 {
		limit = query.DefaultLimit
	}
	return &PropertySearchService{store: store, limit: limit}
}

// Search returns the top matches for f, sorted by status then min_price
func (s *PropertySearchService) Search(ctx context.Context, f model.CanonicalFilter) ([]model.PropertySummary, error) {
	expr := query.Build(f, s.limit)

	properties, err := s.store.SearchProperties(ctx, expr)
	if err != nil {
		return nil, apperrors.NewDatastoreError("property search failed", err)
	}
	return properties, nil
}

// LogSearch writes the entry in the background; failures are only logged
func (s *PropertySearchService) LogSearch(ctx context.Context, entry model.ChatSearchLog) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	logger := log.Ctx(ctx).With().Logger()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), searchLogTimeout)
		defer cancel()

		if err := s.store.LogChatSearch(ctx, &entry); err != nil {
			logger.Warn().Err(err).Str("search_id", entry.ID).Msg("failed to log chat search")
		}
	}()
}
