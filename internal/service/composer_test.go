package service

import (
	"context"
	"testing"

	"roarrealty/internal/apperrors"
	"roarrealty/internal/config"
	"roarrealty/internal/model"

	"github.com/stretchr/testify/assert"
)

func testCompany() config.CompanyConfig {
	return config.CompanyConfig{
		AssistantName: "Shora",
		Name:          "roarrealty.ae",
		Office:        "1507, Al Manara Tower, Business Bay, Dubai, United Arab Emirates",
		Phone:         "+971 585005438",
		Email:         "anurag@roarrealty.ae",
	}
}

func TestResponseComposer_ReturnsCompletion(t *testing.T) {
	gw := &stubGateway{replies: []string{"  Welcome to roarrealty.ae!  "}}

	got := NewResponseComposer(gw, testCompany()).Compose(context.Background(), model.IntentGeneralChat, "hi", ComposeContext{})

	assert.Equal(t, "Welcome to roarrealty.ae!", got)
	assert.Equal(t, "hi", gw.calls[0].user)
}

func TestResponseComposer_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		gw   *stubGateway
		want string
	}{
		{
			name: "Empty completion",
			gw:   &stubGateway{replies: []string{" \n"}},
			want: "Hi! I'm Shora from roarrealty.ae. How can I help you find your perfect property?",
		},
		{
			name: "Gateway error",
			gw:   &stubGateway{err: apperrors.NewUpstreamError("completion request failed", nil)},
			want: "Hi! I'm Shora from roarrealty.ae. I'm here to help you find the perfect property!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewResponseComposer(tt.gw, testCompany()).Compose(context.Background(), model.IntentPropertySearch, "villa", ComposeContext{})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResponseComposer_PromptPerIntent(t *testing.T) {
	properties := []model.PropertySummary{
		{Name: strPtr("Damac Hills Villa"), PropertyType: strPtr("Villa"), Area: strPtr("Damac Hills"), Bedrooms: intPtr(3), MinPrice: floatPtr(2800000), MaxPrice: floatPtr(3400000), Status: strPtr("Ready")},
		{Name: strPtr("Second")},
		{Name: strPtr("Third")},
		{Name: strPtr("Fourth")},
	}
	filters := model.CanonicalFilter{Bedrooms: floatPtr(3)}

	gw := &stubGateway{replies: []string{"ok", "ok", "ok"}}
	c := NewResponseComposer(gw, testCompany())

	c.Compose(context.Background(), model.IntentPropertySearch, "3 bed villa", ComposeContext{Properties: properties, Filters: &filters})
	search := gw.lastSystemPrompt()
	assert.Contains(t, search, "Found: 4 properties")
	assert.Contains(t, search, `{"bedrooms":3}`)
	assert.Contains(t, search, "Damac Hills Villa, Villa, in Damac Hills, 3 BR, AED 2800000 - 3400000, (Ready)")
	assert.Contains(t, search, "3. Third")
	assert.NotContains(t, search, "Fourth")
	assert.Contains(t, search, "only in English")

	c.Compose(context.Background(), model.IntentCompanyInfo, "contact details", ComposeContext{})
	info := gw.lastSystemPrompt()
	assert.Contains(t, info, "anurag@roarrealty.ae")
	assert.Contains(t, info, "Al Manara Tower")

	c.Compose(context.Background(), model.Intent("weather"), "is it hot?", ComposeContext{})
	assert.Contains(t, gw.lastSystemPrompt(), "encourage them to search for a property")
}
