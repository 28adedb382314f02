package repository

import (
	"context"

	"roarrealty/internal/model"
	"roarrealty/internal/query"
)

const (
	propertiesTable = "properties"
	searchLogsTable = "chat_search_logs"
)

// PropertyStore is the read path over property records plus the search log sink
type PropertyStore interface {
	// SearchProperties returns records matching expr, sorted and capped by it
	SearchProperties(ctx context.Context, expr query.Expression) ([]model.PropertySummary, error)
	// FilterOptions returns the distinct values available per filter field
	FilterOptions(ctx context.Context) (*model.FilterOptions, error)
	// LogChatSearch records one assistant-driven search
	LogChatSearch(ctx context.Context, entry *model.ChatSearchLog) error
	Close() error
}
