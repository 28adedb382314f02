package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"roarrealty/internal/apperrors"
	"roarrealty/internal/config"
	"roarrealty/internal/model"
)

// topMatches is how many properties the search prompt describes
const topMatches = 3

// ComposeContext is the optional material a reply is conditioned on
type ComposeContext struct {
	Properties []model.PropertySummary
	Filters    *model.CanonicalFilter
}

// Composer writes the user-facing reply for a classified message
type Composer interface {
	Compose(ctx context.Context, intent model.Intent, query string, cc ComposeContext) string
}

type composeInput struct {
	intent model.Intent
	query  string
	cc     ComposeContext
}

// ResponseComposer composes replies with the completion service
type ResponseComposer struct {
	gateway CompletionGateway
	company config.CompanyConfig
	stage   Stage[composeInput, string]
}

// NewResponseComposer creates a composer speaking for the configured company
func NewResponseComposer(gateway CompletionGateway, company config.CompanyConfig) *ResponseComposer {
	c := &ResponseComposer{gateway: gateway, company: company}
	c.stage = Stage[composeInput, string]{
		Name: "compose",
		Run:  c.compose,
		Fallback: func(_ composeInput, err error) string {
			if apperrors.IsType(err, apperrors.ErrorTypeParse) {
				return c.EmptyReplyGreeting()
			}
			return c.ErrorGreeting()
		},
	}
	return c
}

// Compose always returns non-empty text
func (c *ResponseComposer) Compose(ctx context.Context, intent model.Intent, query string, cc ComposeContext) string {
	return c.stage.Exec(ctx, composeInput{intent: intent, query: query, cc: cc})
}

// EmptyReplyGreeting is used when the service answers with nothing
func (c *ResponseComposer) EmptyReplyGreeting() string {
	return fmt.Sprintf("Hi! I'm %s from %s. How can I help you find your perfect property?", c.company.AssistantName, c.company.Name)
}

// ErrorGreeting is used when the service cannot be reached
func (c *ResponseComposer) ErrorGreeting() string {
	return fmt.Sprintf("Hi! I'm %s from %s. I'm here to help you find the perfect property!", c.company.AssistantName, c.company.Name)
}

func (c *ResponseComposer) compose(ctx context.Context, in composeInput) (string, error) {
	reply, err := c.gateway.Complete(ctx, c.systemPrompt(in), in.query)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", apperrors.NewParseError("empty completion", nil)
	}
	return reply, nil
}

func (c *ResponseComposer) systemPrompt(in composeInput) string {
	persona := fmt.Sprintf("You are %s, the property assistant of %s, a Dubai real estate agency.", c.company.AssistantName, c.company.Name)

	switch in.intent {
	case model.IntentPropertySearch:
		var b strings.Builder
		b.WriteString(persona)
		fmt.Fprintf(&b, "\nUser asked: %q\nFound: %d properties.", in.query, len(in.cc.Properties))
		if in.cc.Filters != nil && !in.cc.Filters.IsEmpty() {
			filters, _ := json.Marshal(in.cc.Filters)
			fmt.Fprintf(&b, "\nFilters applied: %s", filters)
		}
		for i, p := range in.cc.Properties {
			if i == topMatches {
				break
			}
			fmt.Fprintf(&b, "\n%d. %s", i+1, describeProperty(p))
		}
		b.WriteString("\nWrite a friendly reply highlighting the top properties. If nothing was found, suggest widening the search. Reply only in English.")
		return b.String()

	case model.IntentCompanyInfo:
		company, _ := json.Marshal(model.CompanyInfo{
			Name:   c.company.Name,
			Office: c.company.Office,
			Phone:  c.company.Phone,
			Email:  c.company.Email,
		})
		return fmt.Sprintf("%s\nUser asked: %q\nShare the company details below in a friendly way.\nCompany: %s", persona, in.query, company)

	default:
		return persona + "\nGreet the user warmly, introduce yourself and encourage them to search for a property."
	}
}

func describeProperty(p model.PropertySummary) string {
	parts := []string{deref(p.Name, "Unnamed property")}
	if p.PropertyType != nil {
		parts = append(parts, *p.PropertyType)
	}
	if p.Area != nil {
		parts = append(parts, "in "+*p.Area)
	}
	if p.Bedrooms != nil {
		parts = append(parts, fmt.Sprintf("%d BR", *p.Bedrooms))
	}
	switch {
	case p.MinPrice != nil && p.MaxPrice != nil:
		parts = append(parts, fmt.Sprintf("AED %.0f - %.0f", *p.MinPrice, *p.MaxPrice))
	case p.MinPrice != nil:
		parts = append(parts, fmt.Sprintf("from AED %.0f", *p.MinPrice))
	}
	if p.Status != nil {
		parts = append(parts, "("+*p.Status+")")
	}
	return strings.Join(parts, ", ")
}

func deref(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
