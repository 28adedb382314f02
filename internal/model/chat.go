package model

// ChatQuery binds the query string of GET /chat
type ChatQuery struct {
	Msg string `form:"msg"`
}

// ChatRequest is the input of one chat pipeline run
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the assembled assistant reply
type ChatResponse struct {
	Success       bool              `json:"success"`
	Intent        Intent            `json:"intent"`
	Message       string            `json:"message"`
	SearchSummary *SearchSummary    `json:"search_summary,omitempty"`
	Properties    []PropertySummary `json:"properties,omitempty"`
	CompanyInfo   *CompanyInfo      `json:"company_info,omitempty"`
	Suggestions   []string          `json:"suggestions,omitempty"`
}

// SearchSummary describes the search run for a property_search reply
type SearchSummary struct {
	Query          string          `json:"query"`
	FiltersApplied CanonicalFilter `json:"filters_applied"`
	TotalFound     int             `json:"total_found"`
}

// CompanyInfo is the public contact record of the agency
type CompanyInfo struct {
	Name   string `json:"name"`
	Office string `json:"office"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
}

// ChatInputError is the 400 body for a missing message
type ChatInputError struct {
	Error   string `json:"error"`
	Example string `json:"example"`
}

// ChatFailure is the 500 body for an unhandled pipeline failure
type ChatFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// FilterOptionsResponse wraps the available filter values
type FilterOptionsResponse struct {
	Success          bool           `json:"success"`
	AvailableFilters *FilterOptions `json:"available_filters,omitempty"`
	Message          string         `json:"message,omitempty"`
}

// ChatSearchLog records one property search made through the assistant
type ChatSearchLog struct {
	ID             string          `json:"id"`
	Query          string          `json:"query"`
	Intent         Intent          `json:"intent"`
	Filters        CanonicalFilter `json:"filters"`
	ResultCount    int             `json:"result_count"`
	ResponseTimeMs int64           `json:"response_time_ms"`
}
