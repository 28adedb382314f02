package query

import (
	"strings"

	"roarrealty/internal/model"
)

// Field is a property column a predicate or sort key applies to
type Field string

const (
	FieldArea         Field = "area"
	FieldDeveloper    Field = "developer"
	FieldPropertyType Field = "property_type"
	FieldBedrooms     Field = "bedrooms"
	FieldBathrooms    Field = "bathrooms"
	FieldMinPrice     Field = "min_price"
	FieldMaxPrice     Field = "max_price"
	FieldStatus       Field = "status"
	FieldAmenities    Field = "amenities"
)

// Predicate is one condition of an Expression. Datastores translate the
// concrete types; Match evaluates the same condition in memory.
type Predicate interface {
	Match(p *model.PropertySummary) bool
}

// Pattern is a case-insensitive literal substring match on a text field
type Pattern struct {
	Field Field
	Value string
}

// Equals is an exact match on a numeric field
type Equals struct {
	Field Field
	Value float64
}

// PriceOverlap matches properties whose [min_price, max_price] range
// intersects the requested range. A nil bound leaves that side open.
type PriceOverlap struct {
	Min *float64
	Max *float64
}

// ContainsAll requires a case-insensitive substring match in the list field
// for every value
type ContainsAll struct {
	Field  Field
	Values []string
}

// Order is one sort key; NULLs always sort last
type Order struct {
	Field      Field
	Descending bool
}

// Expression is an AND of predicates with a sort and a result cap
type Expression struct {
	Predicates []Predicate
	Sort       []Order
	Limit      int
}

// Match reports whether p satisfies every predicate
func (e Expression) Match(p *model.PropertySummary) bool {
	for _, pred := range e.Predicates {
		if !pred.Match(p) {
			return false
		}
	}
	return true
}

// Less orders a before b by the expression's sort keys
func (e Expression) Less(a, b *model.PropertySummary) bool {
	for _, o := range e.Sort {
		c := compareField(o.Field, a, b)
		if c == 0 {
			continue
		}
		// NULLs stay last regardless of direction
		if c == nullLast || c == nullFirst {
			return c == nullFirst
		}
		if o.Descending {
			return c > 0
		}
		return c < 0
	}
	return false
}

// Match implements Predicate
func (p Pattern) Match(prop *model.PropertySummary) bool {
	v := textField(prop, p.Field)
	if v == nil {
		return false
	}
	return containsFold(*v, p.Value)
}

// Match implements Predicate
func (e Equals) Match(prop *model.PropertySummary) bool {
	v := numberField(prop, e.Field)
	return v != nil && *v == e.Value
}

// Match implements Predicate
func (o PriceOverlap) Match(prop *model.PropertySummary) bool {
	if o.Max != nil && (prop.MinPrice == nil || *prop.MinPrice > *o.Max) {
		return false
	}
	if o.Min != nil && (prop.MaxPrice == nil || *prop.MaxPrice < *o.Min) {
		return false
	}
	return true
}

// Match implements Predicate
func (c ContainsAll) Match(prop *model.PropertySummary) bool {
	list := listField(prop, c.Field)
	for _, want := range c.Values {
		found := false
		for _, have := range list {
			if containsFold(have, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func textField(p *model.PropertySummary, f Field) *string {
	switch f {
	case FieldArea:
		return p.Area
	case FieldDeveloper:
		return p.Developer
	case FieldPropertyType:
		return p.PropertyType
	case FieldStatus:
		return p.Status
	}
	return nil
}

func numberField(p *model.PropertySummary, f Field) *float64 {
	intPtr := func(v *int) *float64 {
		if v == nil {
			return nil
		}
		f := float64(*v)
		return &f
	}
	switch f {
	case FieldBedrooms:
		return intPtr(p.Bedrooms)
	case FieldBathrooms:
		return intPtr(p.Bathrooms)
	case FieldMinPrice:
		return p.MinPrice
	case FieldMaxPrice:
		return p.MaxPrice
	}
	return nil
}

func listField(p *model.PropertySummary, f Field) []string {
	if f == FieldAmenities {
		return p.Amenities
	}
	return nil
}

const (
	nullFirst = -2 // only b is NULL
	nullLast  = 2  // only a is NULL
)

func compareField(f Field, a, b *model.PropertySummary) int {
	if sa, sb := textField(a, f), textField(b, f); sa != nil || sb != nil {
		switch {
		case sa == nil:
			return nullLast
		case sb == nil:
			return nullFirst
		}
		return strings.Compare(*sa, *sb)
	}

	na, nb := numberField(a, f), numberField(b, f)
	switch {
	case na == nil && nb == nil:
		return 0
	case na == nil:
		return nullLast
	case nb == nil:
		return nullFirst
	case *na < *nb:
		return -1
	case *na > *nb:
		return 1
	}
	return 0
}
