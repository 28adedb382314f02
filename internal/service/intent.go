package service

import (
	"context"
	"fmt"
	"strings"

	"roarrealty/internal/apperrors"
	"roarrealty/internal/model"
	"roarrealty/internal/utils"
)

const intentSystemPrompt = `You classify messages sent to a Dubai real estate assistant.

Message: %q

Pick exactly one intent:
- property_search: the user wants to find, buy or rent a property, or asks about listings, prices, areas or developers
- company_info: the user asks about the agency itself (contact details, office, phone, email, who you are)
- general_chat: greetings, small talk and anything else

Respond ONLY with a JSON object:
{"intent": "property_search|general_chat|company_info", "confidence": 0.1-1.0, "reason": "short explanation"}

Examples:
"hi" -> general_chat
"3 bedroom villa" -> property_search
"contact details" -> company_info`

// Classifier decides which branch of the chat pipeline a message takes
type Classifier interface {
	Classify(ctx context.Context, message string) model.IntentResult
}

// IntentClassifier classifies messages with the completion service
type IntentClassifier struct {
	gateway CompletionGateway
	stage   Stage[string, model.IntentResult]
}

// NewIntentClassifier creates a new intent classifier
func NewIntentClassifier(gateway CompletionGateway) *IntentClassifier {
	c := &IntentClassifier{gateway: gateway}
	c.stage = Stage[string, model.IntentResult]{
		Name:     "classify",
		Run:      c.classify,
		Fallback: intentFallback,
	}
	return c
}

// Classify always returns a usable intent; failures degrade to general_chat
func (c *IntentClassifier) Classify(ctx context.Context, message string) model.IntentResult {
	return c.stage.Exec(ctx, message)
}

// intentFallback distinguishes an unreachable service from unusable output
func intentFallback(_ string, err error) model.IntentResult {
	if apperrors.IsType(err, apperrors.ErrorTypeParse) {
		return model.IntentResult{Intent: model.IntentGeneralChat, Confidence: 0.5, Reason: "default"}
	}
	return model.IntentResult{Intent: model.IntentGeneralChat, Confidence: 0.3, Reason: "error"}
}

func (c *IntentClassifier) classify(ctx context.Context, message string) (model.IntentResult, error) {
	raw, err := c.gateway.Complete(ctx, fmt.Sprintf(intentSystemPrompt, message), message)
	if err != nil {
		return model.IntentResult{}, err
	}

	var parsed struct {
		Intent     string   `json:"intent"`
		Confidence *float64 `json:"confidence"`
		Reason     string   `json:"reason"`
	}
	if err := utils.ExtractJSON(raw, &parsed); err != nil {
		return model.IntentResult{}, err
	}

	intent := strings.ToLower(strings.TrimSpace(parsed.Intent))
	if intent == "" {
		return model.IntentResult{}, apperrors.NewParseError("classification has no intent", nil)
	}

	confidence := 0.5
	if parsed.Confidence != nil {
		confidence = clamp(*parsed.Confidence, 0, 1)
	}

	return model.IntentResult{
		Intent:     model.Intent(intent),
		Confidence: confidence,
		Reason:     parsed.Reason,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
