package model

// Intent is the coarse category of a chat message
type Intent string

const (
	IntentPropertySearch Intent = "property_search"
	IntentGeneralChat    Intent = "general_chat"
	IntentCompanyInfo    Intent = "company_info"
)

// IsKnown reports whether the intent is one the assistant can branch on
func (i Intent) IsKnown() bool {
	switch i {
	case IntentPropertySearch, IntentGeneralChat, IntentCompanyInfo:
		return true
	}
	return false
}

// IntentResult represents the classified intent of a chat message
type IntentResult struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}
