// Package routing talks to the external routing/geocoding service.
// It owns leg-duration lookups and place search; everything else in the
// planner treats these as opaque collaborators behind the two interfaces
// defined here.
package routing

import (
	"context"
	"fmt"

	"github.com/kfenner/roadtrip-planner/internal/domain"
)

// Provider resolves the driving duration of a single leg.
// Implementations must be safe for concurrent use.
type Provider interface {
	// LegDuration returns the estimated drive time in hours between two
	// coordinates. An error means the leg could not be resolved; callers
	// should leave the previous value in place rather than writing zero.
	LegDuration(ctx context.Context, from, to domain.Coordinates) (float64, error)
}

// Place is one result from a place search.
type Place struct {
	Name    string
	City    string
	State   string
	Country string
	Lat     float64
	Lng     float64
}

// PlaceSearcher finds places by free-text query.
type PlaceSearcher interface {
	// Search returns up to limit places matching the query, best match first.
	Search(ctx context.Context, query string, limit int) ([]Place, error)
}

// legKey renders a leg as a stable string for in-memory memoization.
// Four decimal places ≈ 11 m, plenty to identify a routing waypoint.
func legKey(from, to domain.Coordinates) string {
	return fmt.Sprintf("%.4f,%.4f|%.4f,%.4f", from.Lat, from.Lng, to.Lat, to.Lng)
}
