// Package domain contains the core data types for the road trip planner.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, schedule).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single planned road trip.
// A trip is the top-level aggregate; stops belong to a trip.
// StartTime is the moment the itinerary begins — the departure of the first
// stop is anchored to it unless that stop carries a manual override.
// All times are naive local timestamps; the planner does no timezone math.
type Trip struct {
	ID        uuid.UUID
	Name      string
	StartTime time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
