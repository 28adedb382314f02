package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PropertySummary is the read-only projection of a property record returned to the chat UI
type PropertySummary struct {
	Name         *string   `json:"name,omitempty" db:"name"`
	Area         *string   `json:"area,omitempty" db:"area"`
	Developer    *string   `json:"developer,omitempty" db:"developer"`
	PropertyType *string   `json:"property_type,omitempty" db:"property_type"`
	Bedrooms     *int      `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms    *int      `json:"bathrooms,omitempty" db:"bathrooms"`
	MinPrice     *float64  `json:"min_price,omitempty" db:"min_price"`
	MaxPrice     *float64  `json:"max_price,omitempty" db:"max_price"`
	AreaSqft     *float64  `json:"area_sqft,omitempty" db:"area_sqft"`
	Status       *string   `json:"status,omitempty" db:"status"`
	SaleStatus   *string   `json:"sale_status,omitempty" db:"sale_status"`
	Amenities    JSONArray `json:"amenities,omitempty" db:"amenities"`
	Floor        *string   `json:"floor,omitempty" db:"floor"`
	Furnished    *bool     `json:"furnished,omitempty" db:"furnished"`
	PaymentPlan  *string   `json:"payment_plan,omitempty" db:"payment_plan"`
	Description  *string   `json:"description,omitempty" db:"description"`
}

// SummaryColumns lists the columns projected into PropertySummary, in order
var SummaryColumns = []string{
	"name", "area", "developer", "property_type", "bedrooms", "bathrooms",
	"min_price", "max_price", "area_sqft", "status", "sale_status",
	"amenities", "floor", "furnished", "payment_plan", "description",
}

// FilterOptions holds the distinct values available for filter selection
type FilterOptions struct {
	Areas          []string `json:"areas"`
	Developers     []string `json:"developers"`
	PropertyTypes  []string `json:"property_types"`
	Statuses       []string `json:"statuses"`
	BedroomOptions []int    `json:"bedroom_options"`
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("cannot scan %T into JSONArray", value)
	}
}
