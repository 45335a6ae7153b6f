package domain

import (
	"time"

	"github.com/google/uuid"
)

// TravelType describes how the traveller reaches a stop from the previous one.
type TravelType string

const (
	TravelDrive TravelType = "drive"
	TravelFly   TravelType = "fly"
)

// Valid reports whether t is one of the known travel types.
func (t TravelType) Valid() bool {
	return t == TravelDrive || t == TravelFly
}

// Stop represents a single waypoint in a trip.
//
// Position is the 0-based sequence index within the trip; the itinerary is
// always computed over stops ordered by Position.
//
// DriveTimeFromPrevious is nil while the leg duration has not been resolved
// (no lookup yet, or the lookup failed). The schedule computation treats nil
// as zero hours. The field is meaningless for the first stop of a trip.
//
// ManualDeparture, when non-nil, overrides the computed departure time for
// this stop and feeds forward into every following stop's arrival.
type Stop struct {
	ID                    uuid.UUID
	TripID                uuid.UUID
	Name                  string
	City                  string
	State                 string
	Address               string
	Lat                   float64
	Lng                   float64
	Position              int
	TimeAtDestination     float64 // hours spent at the stop before departing
	DriveTimeFromPrevious *float64
	TravelType            TravelType
	Notes                 string
	ManualDeparture       *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Coordinates is a latitude/longitude pair in floating point degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Coordinates returns the stop's location as a Coordinates value.
func (s Stop) Coordinates() Coordinates {
	return Coordinates{Lat: s.Lat, Lng: s.Lng}
}
