package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"roarrealty/internal/apperrors"
	"roarrealty/internal/config"
	"roarrealty/internal/model"

	"github.com/rs/zerolog/log"
)

// DefaultSuggestions are offered with general_chat replies
var DefaultSuggestions = []string{
	"3 bedroom villa in Downtown Dubai",
	"Affordable apartments under 1 crore",
	"Luxury penthouses with sea view",
	"Ready to move properties in Damac Hills",
}

// ChatService runs the chat pipeline: classify, then search, company info
// or greeting, then compose. Only a blank message or a panic fails a request.
type ChatService struct {
	classifier Classifier
	extractor  Extractor
	composer   Composer
	searchLog  SearchLogger
	company    config.CompanyConfig
	search     Stage[model.CanonicalFilter, []model.PropertySummary]
}

// ChatOption configures optional collaborators of ChatService
type ChatOption func(*ChatService)

// WithSearchLogger records every property search made through the assistant
func WithSearchLogger(l SearchLogger) ChatOption {
	return func(s *ChatService) {
		s.searchLog = l
	}
}

// NewChatService creates a new chat service
func NewChatService(
	classifier Classifier,
	extractor Extractor,
	searcher Searcher,
	composer Composer,
	company config.CompanyConfig,
	opts ...ChatOption,
) *ChatService {
	s := &ChatService{
		classifier: classifier,
		extractor:  extractor,
		composer:   composer,
		company:    company,
		search: Stage[model.CanonicalFilter, []model.PropertySummary]{
			Name: "search",
			Run:  searcher.Search,
			// A failed read is reported as no matches
			Fallback: func(model.CanonicalFilter, error) []model.PropertySummary { return nil },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chat answers one message. Errors are VALIDATION for a blank message and
// INTERNAL for anything the stage fallbacks did not absorb.
func (s *ChatService) Chat(ctx context.Context, req model.ChatRequest) (resp *model.ChatResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = apperrors.NewInternalError("chat pipeline panicked", fmt.Errorf("%v", r))
		}
	}()

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperrors.NewValidationError("message is required")
	}

	intent := s.classifier.Classify(ctx, message)
	log.Ctx(ctx).Info().
		Str("intent", string(intent.Intent)).
		Float64("confidence", intent.Confidence).
		Str("reason", intent.Reason).
		Msg("message classified")

	// Later stages see the message as sent
	switch intent.Intent {
	case model.IntentPropertySearch:
		return s.handlePropertySearch(ctx, req.Message), nil
	case model.IntentCompanyInfo:
		return s.handleCompanyInfo(ctx, req.Message), nil
	default:
		return s.handleGeneralChat(ctx, req.Message), nil
	}
}

func (s *ChatService) handlePropertySearch(ctx context.Context, msg string) *model.ChatResponse {
	start := time.Now()

	filters := s.extractor.Extract(ctx, msg)
	properties := s.search.Exec(ctx, filters)
	reply := s.composer.Compose(ctx, model.IntentPropertySearch, msg, ComposeContext{
		Properties: properties,
		Filters:    &filters,
	})

	if s.searchLog != nil {
		s.searchLog.LogSearch(ctx, model.ChatSearchLog{
			Query:          msg,
			Intent:         model.IntentPropertySearch,
			Filters:        filters,
			ResultCount:    len(properties),
			ResponseTimeMs: time.Since(start).Milliseconds(),
		})
	}

	return &model.ChatResponse{
		Success: true,
		Intent:  model.IntentPropertySearch,
		Message: reply,
		SearchSummary: &model.SearchSummary{
			Query:          msg,
			FiltersApplied: filters,
			TotalFound:     len(properties),
		},
		Properties: properties,
	}
}

func (s *ChatService) handleCompanyInfo(ctx context.Context, msg string) *model.ChatResponse {
	return &model.ChatResponse{
		Success:     true,
		Intent:      model.IntentCompanyInfo,
		Message:     s.composer.Compose(ctx, model.IntentCompanyInfo, msg, ComposeContext{}),
		CompanyInfo: s.companyInfo(),
	}
}

func (s *ChatService) handleGeneralChat(ctx context.Context, msg string) *model.ChatResponse {
	return &model.ChatResponse{
		Success:     true,
		Intent:      model.IntentGeneralChat,
		Message:     s.composer.Compose(ctx, model.IntentGeneralChat, msg, ComposeContext{}),
		Suggestions: append([]string(nil), DefaultSuggestions...),
	}
}

func (s *ChatService) companyInfo() *model.CompanyInfo {
	return &model.CompanyInfo{
		Name:   s.company.Name,
		Office: s.company.Office,
		Phone:  s.company.Phone,
		Email:  s.company.Email,
	}
}

// FailureResponse is the branded body for an unhandled failure. The error
// detail is only exposed when exposeDetail is set.
func (s *ChatService) FailureResponse(err error, exposeDetail bool) model.ChatFailure {
	detail := "Internal server error"
	if exposeDetail && err != nil {
		detail = err.Error()
	}
	return model.ChatFailure{
		Success: false,
		Message: fmt.Sprintf("Hi! I'm %s from %s. I'm experiencing technical difficulties, but I'm here to help!", s.company.AssistantName, s.company.Name),
		Error:   detail,
	}
}
