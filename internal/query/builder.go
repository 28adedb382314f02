package query

import "roarrealty/internal/model"

// DefaultLimit caps a chat search to the top matches
const DefaultLimit = 20

// DefaultSort lists available stock first, then the cheapest
var DefaultSort = []Order{
	{Field: FieldStatus},
	{Field: FieldMinPrice},
}

// Build translates a canonical filter into an Expression. Absent fields add
// no predicate; a non-positive limit falls back to DefaultLimit.
func Build(f model.CanonicalFilter, limit int) Expression {
	if limit <= 0 {
		limit = DefaultLimit
	}

	expr := Expression{
		Sort:  append([]Order(nil), DefaultSort...),
		Limit: limit,
	}

	addPattern := func(field Field, v *string) {
		if v != nil {
			expr.Predicates = append(expr.Predicates, Pattern{Field: field, Value: *v})
		}
	}
	addEquals := func(field Field, v *float64) {
		if v != nil {
			expr.Predicates = append(expr.Predicates, Equals{Field: field, Value: *v})
		}
	}

	addPattern(FieldArea, f.Area)
	addPattern(FieldDeveloper, f.Developer)
	addPattern(FieldPropertyType, f.PropertyType)
	addEquals(FieldBedrooms, f.Bedrooms)
	addEquals(FieldBathrooms, f.Bathrooms)
	addPattern(FieldStatus, f.Status)

	if f.MinPrice != nil || f.MaxPrice != nil {
		expr.Predicates = append(expr.Predicates, PriceOverlap{Min: f.MinPrice, Max: f.MaxPrice})
	}

	if len(f.Amenities) > 0 {
		expr.Predicates = append(expr.Predicates, ContainsAll{
			Field:  FieldAmenities,
			Values: append([]string(nil), f.Amenities...),
		})
	}

	return expr
}
