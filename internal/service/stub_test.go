package service

import (
	"context"
	"strings"
	"sync"

	"roarrealty/internal/model"
)

// stubGateway answers each call from a queue of replies, or with err
type stubGateway struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   []stubCall
}

type stubCall struct {
	system string
	user   string
}

func (g *stubGateway) Complete(_ context.Context, systemPrompt, userMessage string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, stubCall{system: systemPrompt, user: userMessage})
	if g.err != nil {
		return "", g.err
	}
	if len(g.replies) == 0 {
		return "", nil
	}
	reply := g.replies[0]
	g.replies = g.replies[1:]
	return reply, nil
}

func (g *stubGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *stubGateway) lastSystemPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.calls) == 0 {
		return ""
	}
	return g.calls[len(g.calls)-1].system
}

// routedGateway picks a reply by matching a marker in the system prompt
type routedGateway struct {
	routes map[string]string
	errs   map[string]error
}

func (g *routedGateway) Complete(_ context.Context, systemPrompt, _ string) (string, error) {
	for marker, err := range g.errs {
		if strings.Contains(systemPrompt, marker) {
			return "", err
		}
	}
	for marker, reply := range g.routes {
		if strings.Contains(systemPrompt, marker) {
			return reply, nil
		}
	}
	return "", nil
}

type stubSearcher struct {
	results []model.PropertySummary
	err     error
	got     *model.CanonicalFilter
}

func (s *stubSearcher) Search(_ context.Context, f model.CanonicalFilter) ([]model.PropertySummary, error) {
	s.got = &f
	return s.results, s.err
}

func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
