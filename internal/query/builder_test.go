package query

import (
	"sort"
	"testing"

	"roarrealty/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string    { return &v }
func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestBuild_EmptyFilterHasNoPredicates(t *testing.T) {
	expr := Build(model.CanonicalFilter{}, 0)

	assert.Empty(t, expr.Predicates)
	assert.Equal(t, DefaultLimit, expr.Limit)
	assert.Equal(t, DefaultSort, expr.Sort)
	assert.True(t, expr.Match(&model.PropertySummary{}))
}

func TestBuild_FieldMapping(t *testing.T) {
	f := model.CanonicalFilter{
		Area:         strPtr("Downtown"),
		Developer:    strPtr("Emaar"),
		PropertyType: strPtr("Villa"),
		Bedrooms:     floatPtr(3),
		Bathrooms:    floatPtr(2),
		Status:       strPtr("Ready"),
		MinPrice:     floatPtr(1_000_000),
		MaxPrice:     floatPtr(2_000_000),
		Amenities:    []string{"pool", "gym"},
	}

	expr := Build(f, 5)

	require.Len(t, expr.Predicates, 8)
	assert.Equal(t, 5, expr.Limit)
	assert.Contains(t, expr.Predicates, Pattern{Field: FieldArea, Value: "Downtown"})
	assert.Contains(t, expr.Predicates, Pattern{Field: FieldDeveloper, Value: "Emaar"})
	assert.Contains(t, expr.Predicates, Pattern{Field: FieldPropertyType, Value: "Villa"})
	assert.Contains(t, expr.Predicates, Pattern{Field: FieldStatus, Value: "Ready"})
	assert.Contains(t, expr.Predicates, Equals{Field: FieldBedrooms, Value: 3})
	assert.Contains(t, expr.Predicates, Equals{Field: FieldBathrooms, Value: 2})
	assert.Contains(t, expr.Predicates, PriceOverlap{Min: f.MinPrice, Max: f.MaxPrice})
	assert.Contains(t, expr.Predicates, ContainsAll{Field: FieldAmenities, Values: []string{"pool", "gym"}})
}

func TestPriceOverlap(t *testing.T) {
	prop := &model.PropertySummary{MinPrice: floatPtr(100), MaxPrice: floatPtr(200)}

	tests := []struct {
		name   string
		filter model.CanonicalFilter
		want   bool
	}{
		{"Overlapping ranges", model.CanonicalFilter{MinPrice: floatPtr(150), MaxPrice: floatPtr(300)}, true},
		{"Disjoint ranges", model.CanonicalFilter{MinPrice: floatPtr(300), MaxPrice: floatPtr(400)}, false},
		{"Request inside property range", model.CanonicalFilter{MinPrice: floatPtr(120), MaxPrice: floatPtr(130)}, true},
		{"Touching upper edge", model.CanonicalFilter{MinPrice: floatPtr(200), MaxPrice: floatPtr(250)}, true},
		{"Below property range", model.CanonicalFilter{MinPrice: floatPtr(10), MaxPrice: floatPtr(99)}, false},
		{"Min only, reachable", model.CanonicalFilter{MinPrice: floatPtr(180)}, true},
		{"Min only, too high", model.CanonicalFilter{MinPrice: floatPtr(201)}, false},
		{"Max only, reachable", model.CanonicalFilter{MaxPrice: floatPtr(100)}, true},
		{"Max only, too low", model.CanonicalFilter{MaxPrice: floatPtr(99)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.filter, 0).Match(prop))
		})
	}
}

func TestPriceOverlap_MissingPropertyPrices(t *testing.T) {
	expr := Build(model.CanonicalFilter{MinPrice: floatPtr(1), MaxPrice: floatPtr(10)}, 0)
	assert.False(t, expr.Match(&model.PropertySummary{}))
}

func TestPattern_CaseInsensitiveLiteral(t *testing.T) {
	prop := &model.PropertySummary{Area: strPtr("Downtown Dubai"), PropertyType: strPtr("Villa (Townhouse)")}

	assert.True(t, Pattern{Field: FieldArea, Value: "downtown"}.Match(prop))
	assert.True(t, Pattern{Field: FieldPropertyType, Value: "(townhouse)"}.Match(prop))
	assert.False(t, Pattern{Field: FieldArea, Value: "Marina"}.Match(prop))
	assert.False(t, Pattern{Field: FieldDeveloper, Value: "Emaar"}.Match(prop))
}

func TestEquals_Bedrooms(t *testing.T) {
	prop := &model.PropertySummary{Bedrooms: intPtr(3)}

	assert.True(t, Equals{Field: FieldBedrooms, Value: 3}.Match(prop))
	assert.False(t, Equals{Field: FieldBedrooms, Value: 2}.Match(prop))
	assert.False(t, Equals{Field: FieldBathrooms, Value: 3}.Match(prop))
}

func TestContainsAll_RequiresEveryAmenity(t *testing.T) {
	prop := &model.PropertySummary{Amenities: model.JSONArray{"Swimming Pool", "Gymnasium", "Covered parking"}}

	assert.True(t, ContainsAll{Field: FieldAmenities, Values: []string{"pool", "GYM"}}.Match(prop))
	assert.False(t, ContainsAll{Field: FieldAmenities, Values: []string{"pool", "sauna"}}.Match(prop))
	assert.False(t, ContainsAll{Field: FieldAmenities, Values: []string{"pool"}}.Match(&model.PropertySummary{}))
}

func TestExpression_LessSortsStatusThenPriceNullsLast(t *testing.T) {
	props := []model.PropertySummary{
		{Name: strPtr("c"), Status: strPtr("Under Construction"), MinPrice: floatPtr(100)},
		{Name: strPtr("d"), MinPrice: floatPtr(1)},
		{Name: strPtr("b"), Status: strPtr("Ready"), MinPrice: floatPtr(500)},
		{Name: strPtr("a"), Status: strPtr("Ready"), MinPrice: floatPtr(200)},
		{Name: strPtr("e"), Status: strPtr("Ready")},
	}

	expr := Build(model.CanonicalFilter{}, 0)
	sort.SliceStable(props, func(i, j int) bool { return expr.Less(&props[i], &props[j]) })

	var names []string
	for _, p := range props {
		names = append(names, *p.Name)
	}
	assert.Equal(t, []string{"a", "b", "e", "c", "d"}, names)
}
