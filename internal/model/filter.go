package model

// RawFilterCandidate is the untrusted filter object decoded from model output
type RawFilterCandidate map[string]any

// Filter field names shared by the candidate, the canonical filter and the query layer
const (
	FilterArea         = "area"
	FilterDeveloper    = "developer"
	FilterPropertyType = "property_type"
	FilterBedrooms     = "bedrooms"
	FilterBathrooms    = "bathrooms"
	FilterMinPrice     = "min_price"
	FilterMaxPrice     = "max_price"
	FilterStatus       = "status"
	FilterAmenities    = "amenities"
)

// CanonicalFilter is a validated filter. A nil field is unconstrained; a
// present field is trimmed and non-empty (strings), strictly positive
// (numbers) or has at least one element (amenities).
type CanonicalFilter struct {
	Area         *string  `json:"area,omitempty"`
	Developer    *string  `json:"developer,omitempty"`
	PropertyType *string  `json:"property_type,omitempty"`
	Bedrooms     *float64 `json:"bedrooms,omitempty"`
	Bathrooms    *float64 `json:"bathrooms,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	Status       *string  `json:"status,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
}

// IsEmpty reports whether no field is constrained
func (f CanonicalFilter) IsEmpty() bool {
	return f.Area == nil && f.Developer == nil && f.PropertyType == nil &&
		f.Bedrooms == nil && f.Bathrooms == nil && f.MinPrice == nil &&
		f.MaxPrice == nil && f.Status == nil && len(f.Amenities) == 0
}

// Candidate converts the filter back to its untyped form
func (f CanonicalFilter) Candidate() RawFilterCandidate {
	raw := RawFilterCandidate{}
	putString := func(key string, v *string) {
		if v != nil {
			raw[key] = *v
		}
	}
	putNumber := func(key string, v *float64) {
		if v != nil {
			raw[key] = *v
		}
	}

	putString(FilterArea, f.Area)
	putString(FilterDeveloper, f.Developer)
	putString(FilterPropertyType, f.PropertyType)
	putNumber(FilterBedrooms, f.Bedrooms)
	putNumber(FilterBathrooms, f.Bathrooms)
	putNumber(FilterMinPrice, f.MinPrice)
	putNumber(FilterMaxPrice, f.MaxPrice)
	putString(FilterStatus, f.Status)
	if len(f.Amenities) > 0 {
		amenities := make([]any, len(f.Amenities))
		for i, a := range f.Amenities {
			amenities[i] = a
		}
		raw[FilterAmenities] = amenities
	}
	return raw
}
