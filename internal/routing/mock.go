package routing

import (
	"context"
	"fmt"
	"strings"

	"github.com/kfenner/roadtrip-planner/internal/domain"
)

// MockLeg is one canned leg duration for the mock provider.
type MockLeg struct {
	From, To domain.Coordinates
	Hours    float64
}

// MockProvider serves canned leg durations and place results.
// It backs local development (no API key configured) and tests.
type MockProvider struct {
	legs   map[string]float64
	places []Place
}

// NewMockProvider builds a MockProvider from canned legs and places.
func NewMockProvider(legs []MockLeg, places []Place) *MockProvider {
	m := make(map[string]float64, len(legs))
	for _, l := range legs {
		m[legKey(l.From, l.To)] = l.Hours
	}
	return &MockProvider{legs: m, places: places}
}

// LegDuration returns the canned duration for the leg, or an error when the
// pair was not registered, mirroring a real provider failing to route.
func (p *MockProvider) LegDuration(_ context.Context, from, to domain.Coordinates) (float64, error) {
	h, ok := p.legs[legKey(from, to)]
	if !ok {
		return 0, fmt.Errorf("routing: no mock leg %s", legKey(from, to))
	}
	return h, nil
}

// Search returns canned places whose name contains the query, case-insensitively.
func (p *MockProvider) Search(_ context.Context, query string, limit int) ([]Place, error) {
	if limit < 1 {
		limit = 5
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Place
	for _, pl := range p.places {
		if strings.Contains(strings.ToLower(pl.Name), q) {
			out = append(out, pl)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}
