package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"roarrealty/internal/model"
	"roarrealty/internal/query"
)

// MemoryRepository is a PropertyStore over an in-process slice. It evaluates
// query expressions directly and is used for local runs and tests.
type MemoryRepository struct {
	mu         sync.RWMutex
	properties []model.PropertySummary
	searchLogs []model.ChatSearchLog
}

// NewMemoryRepository creates a store holding properties
func NewMemoryRepository(properties ...model.PropertySummary) *MemoryRepository {
	return &MemoryRepository{properties: append([]model.PropertySummary(nil), properties...)}
}

// LoadMemoryRepository creates a store from a JSON array of property records
func LoadMemoryRepository(path string) (*MemoryRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var properties []model.PropertySummary
	if err := json.Unmarshal(data, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}
	return NewMemoryRepository(properties...), nil
}

// Close implements PropertyStore
func (r *MemoryRepository) Close() error {
	return nil
}

// SearchProperties implements PropertyStore
func (r *MemoryRepository) SearchProperties(ctx context.Context, expr query.Expression) ([]model.PropertySummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	matched := make([]model.PropertySummary, 0)
	for i := range r.properties {
		if expr.Match(&r.properties[i]) {
			matched = append(matched, r.properties[i])
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return expr.Less(&matched[i], &matched[j])
	})

	if expr.Limit > 0 && len(matched) > expr.Limit {
		matched = matched[:expr.Limit]
	}
	return matched, nil
}

// FilterOptions implements PropertyStore
func (r *MemoryRepository) FilterOptions(ctx context.Context) (*model.FilterOptions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	areas := map[string]struct{}{}
	developers := map[string]struct{}{}
	types := map[string]struct{}{}
	statuses := map[string]struct{}{}
	bedrooms := map[int]struct{}{}

	add := func(set map[string]struct{}, v *string) {
		if v != nil && *v != "" {
			set[*v] = struct{}{}
		}
	}

	r.mu.RLock()
	for _, p := range r.properties {
		add(areas, p.Area)
		add(developers, p.Developer)
		add(types, p.PropertyType)
		add(statuses, p.Status)
		if p.Bedrooms != nil {
			bedrooms[*p.Bedrooms] = struct{}{}
		}
	}
	r.mu.RUnlock()

	opts := &model.FilterOptions{
		Areas:          sortedKeys(areas),
		Developers:     sortedKeys(developers),
		PropertyTypes:  sortedKeys(types),
		Statuses:       sortedKeys(statuses),
		BedroomOptions: make([]int, 0, len(bedrooms)),
	}
	for b := range bedrooms {
		opts.BedroomOptions = append(opts.BedroomOptions, b)
	}
	sort.Ints(opts.BedroomOptions)
	return opts, nil
}

// LogChatSearch implements PropertyStore
func (r *MemoryRepository) LogChatSearch(ctx context.Context, entry *model.ChatSearchLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searchLogs = append(r.searchLogs, *entry)
	return nil
}

// SearchLogs returns a copy of the recorded searches
func (r *MemoryRepository) SearchLogs() []model.ChatSearchLog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.ChatSearchLog(nil), r.searchLogs...)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
