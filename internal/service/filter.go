package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"roarrealty/internal/model"
	"roarrealty/internal/utils"
)

const filterSystemPrompt = `You extract property search filters for a Dubai real estate catalog.

Query: %q

Respond ONLY with a JSON object. Include a field only when the query mentions it:
{
  "area": "community or location, e.g. Downtown Dubai",
  "developer": "developer name, e.g. Emaar",
  "property_type": "Villa/Apartment/Townhouse/Penthouse",
  "bedrooms": number,
  "bathrooms": number,
  "min_price": number,
  "max_price": number,
  "status": "Ready/Under Construction",
  "amenities": ["pool", "gym"]
}

Prices are plain numbers in AED: "2.5M" = 2500000, "800K" = 800000.`

// Extractor turns a free-text query into a canonical filter
type Extractor interface {
	Extract(ctx context.Context, query string) model.CanonicalFilter
}

// FilterExtractor extracts filters with the completion service
type FilterExtractor struct {
	gateway CompletionGateway
	stage   Stage[string, model.RawFilterCandidate]
}

// NewFilterExtractor creates a new filter extractor
func NewFilterExtractor(gateway CompletionGateway) *FilterExtractor {
	e := &FilterExtractor{gateway: gateway}
	e.stage = Stage[string, model.RawFilterCandidate]{
		Name: "extract",
		Run:  e.extract,
		// An unfiltered search beats no search
		Fallback: func(string, error) model.RawFilterCandidate { return model.RawFilterCandidate{} },
	}
	return e
}

// Extract never fails; unusable model output yields an empty filter
func (e *FilterExtractor) Extract(ctx context.Context, query string) model.CanonicalFilter {
	return Normalize(e.stage.Exec(ctx, query))
}

func (e *FilterExtractor) extract(ctx context.Context, query string) (model.RawFilterCandidate, error) {
	raw, err := e.gateway.Complete(ctx, fmt.Sprintf(filterSystemPrompt, query), query)
	if err != nil {
		return nil, err
	}

	candidate := model.RawFilterCandidate{}
	if err := utils.ExtractJSON(raw, &candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// Normalize keeps only the candidate fields that would make a meaningful
// predicate: trimmed non-empty strings, finite positive numbers and amenity
// lists with at least one non-blank entry. Anything else is dropped.
func Normalize(raw model.RawFilterCandidate) model.CanonicalFilter {
	var f model.CanonicalFilter

	f.Area = cleanString(raw[model.FilterArea])
	f.Developer = cleanString(raw[model.FilterDeveloper])
	f.PropertyType = cleanString(raw[model.FilterPropertyType])
	f.Status = cleanString(raw[model.FilterStatus])

	f.Bedrooms = positiveNumber(raw[model.FilterBedrooms])
	f.Bathrooms = positiveNumber(raw[model.FilterBathrooms])
	f.MinPrice = positiveNumber(raw[model.FilterMinPrice])
	f.MaxPrice = positiveNumber(raw[model.FilterMaxPrice])

	f.Amenities = cleanList(raw[model.FilterAmenities])

	return f
}

func cleanString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func positiveNumber(v any) *float64 {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		n = f
	default:
		return nil
	}

	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return nil
	}
	return &n
}

// cleanList keeps string entries in their original order and spelling
func cleanList(v any) []string {
	var items []any
	switch x := v.(type) {
	case []any:
		items = x
	case []string:
		for _, s := range x {
			items = append(items, s)
		}
	default:
		return nil
	}

	var out []string
	for _, item := range items {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
