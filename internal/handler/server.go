// Package handler implements the HTTP handlers for the road trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, stop.go, etc.) but all share the same Server
// struct so they can access its dependencies.
//
// Servicer interfaces are defined here, in the consumer package, following
// the Go convention: "accept interfaces, return concrete types". Handler
// tests inject mocks without touching the database or service layer.
package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/kfenner/roadtrip-planner/internal/domain"
	"github.com/kfenner/roadtrip-planner/internal/routing"
	"github.com/kfenner/roadtrip-planner/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StopServicer defines the business operations the stop handlers depend on.
type StopServicer interface {
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	Update(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	Delete(ctx context.Context, tripID, stopID uuid.UUID) error
	Reorder(ctx context.Context, tripID uuid.UUID, ids []uuid.UUID) ([]domain.Stop, error)
}

// ItineraryServicer computes the scheduled view of a trip.
type ItineraryServicer interface {
	Get(ctx context.Context, tripID uuid.UUID) (domain.Itinerary, error)
}

// DriveTimeServicer refreshes drive times for a trip's legs.
type DriveTimeServicer interface {
	Refresh(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
}

// ExportServicer produces the flat all-trips export.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// ImportServicer converts trips to and from their portable document form.
type ImportServicer interface {
	Import(ctx context.Context, doc service.TripDocument) (domain.Trip, error)
}

// ShareServicer encodes trips as share tokens and redeems them.
type ShareServicer interface {
	Encode(ctx context.Context, tripID uuid.UUID) (string, error)
	Redeem(ctx context.Context, token string) (domain.Trip, error)
}

// Server holds the dependencies shared by all API endpoints.
type Server struct {
	trips       TripServicer
	stops       StopServicer
	itineraries ItineraryServicer
	driveTimes  DriveTimeServicer
	exports     ExportServicer
	importer    ImportServicer
	shares      ShareServicer
	places      routing.PlaceSearcher
}

// Deps bundles the Server's dependencies for construction.
type Deps struct {
	Trips       TripServicer
	Stops       StopServicer
	Itineraries ItineraryServicer
	DriveTimes  DriveTimeServicer
	Exports     ExportServicer
	Importer    ImportServicer
	Shares      ShareServicer
	Places      routing.PlaceSearcher
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	return &Server{
		trips:       d.Trips,
		stops:       d.Stops,
		itineraries: d.Itineraries,
		driveTimes:  d.DriveTimes,
		exports:     d.Exports,
		importer:    d.Importer,
		shares:      d.Shares,
		places:      d.Places,
	}
}
