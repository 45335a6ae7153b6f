package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kfenner/roadtrip-planner/internal/domain"
	"github.com/kfenner/roadtrip-planner/internal/repo"
	"github.com/kfenner/roadtrip-planner/internal/schedule"
)

// ItineraryService assembles the computed view of a trip.
// It holds no schedule state of its own: every Get loads the stored stops
// and runs the schedule computation fresh, so edits made through any other
// service are reflected on the next read.
type ItineraryService struct {
	trips repo.TripRepo
	stops repo.StopRepo
}

// NewItineraryService constructs an ItineraryService backed by the provided repos.
func NewItineraryService(trips repo.TripRepo, stops repo.StopRepo) *ItineraryService {
	return &ItineraryService{trips: trips, stops: stops}
}

// Get returns the trip with arrival/departure times computed for every stop.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ItineraryService) Get(ctx context.Context, tripID uuid.UUID) (domain.Itinerary, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}

	stops, err := s.stops.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}

	return domain.Itinerary{
		Trip:  trip,
		Stops: schedule.Compute(stops, trip.StartTime),
	}, nil
}
