package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kfenner/roadtrip-planner/internal/domain"
	"github.com/kfenner/roadtrip-planner/internal/repo"
)

// StopService implements business logic for Stop operations.
// It holds both trip and stop repos because creating a stop requires
// verifying the parent trip exists.
type StopService struct {
	trips repo.TripRepo
	stops repo.StopRepo
}

// NewStopService constructs a StopService backed by the provided repos.
func NewStopService(trips repo.TripRepo, stops repo.StopRepo) *StopService {
	return &StopService{trips: trips, stops: stops}
}

// Create validates the stop, verifies the parent trip exists, then persists.
// An empty travel type defaults to drive.
// Returns domain.ErrValidation if input violates business rules.
// Returns domain.ErrNotFound if the parent trip does not exist.
func (s *StopService) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	if _, err := s.trips.GetByID(ctx, stop.TripID); err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}
	if stop.TravelType == "" {
		stop.TravelType = domain.TravelDrive
	}
	if err := validateStop(stop); err != nil {
		return domain.Stop{}, err
	}
	result, err := s.stops.Create(ctx, stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single stop by ID, scoped to the given tripID.
// Returns domain.ErrNotFound if no stop with that ID exists under that trip.
func (s *StopService) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	result, err := s.stops.GetByID(ctx, tripID, stopID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all stops for a trip in itinerary order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *StopService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	stops, err := s.stops.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.StopService.ListByTripID: %w", err)
	}
	if stops == nil {
		return []domain.Stop{}, nil
	}
	return stops, nil
}

// Update validates and persists changes to an existing stop.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// stop does not exist under the given trip.
func (s *StopService) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	if stop.TravelType == "" {
		stop.TravelType = domain.TravelDrive
	}
	if err := validateStop(stop); err != nil {
		return domain.Stop{}, err
	}
	result, err := s.stops.Update(ctx, stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a stop by ID, scoped to the given tripID. Later stops keep
// their relative order.
// Returns domain.ErrNotFound if the stop does not exist under the given trip.
func (s *StopService) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	if err := s.stops.Delete(ctx, tripID, stopID); err != nil {
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}
	return nil
}

// Reorder resequences a trip's stops to match ids, which must be a full
// permutation of the trip's current stop IDs.
// Returns the stops in their new order.
func (s *StopService) Reorder(ctx context.Context, tripID uuid.UUID, ids []uuid.UUID) ([]domain.Stop, error) {
	current, err := s.stops.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.StopService.Reorder: %w", err)
	}

	if len(ids) != len(current) {
		return nil, fmt.Errorf("%w: reorder must name all %d stops, got %d",
			domain.ErrValidation, len(current), len(ids))
	}
	known := make(map[uuid.UUID]struct{}, len(current))
	for _, st := range current {
		known[st.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: stop %s does not belong to the trip", domain.ErrValidation, id)
		}
		delete(known, id) // catches duplicate ids in the request
	}

	if err := s.stops.Reorder(ctx, tripID, ids); err != nil {
		return nil, fmt.Errorf("service.StopService.Reorder: %w", err)
	}

	return s.ListByTripID(ctx, tripID)
}

// validateStop enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Time at destination must not be negative.
//   - Travel type must be a known value.
//   - Coordinates, when set, must be within range.
func validateStop(stop domain.Stop) error {
	if strings.TrimSpace(stop.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if stop.TimeAtDestination < 0 {
		return fmt.Errorf("%w: time_at_destination must not be negative", domain.ErrValidation)
	}
	if !stop.TravelType.Valid() {
		return fmt.Errorf("%w: travel_type must be %q or %q", domain.ErrValidation,
			domain.TravelDrive, domain.TravelFly)
	}
	if stop.Lat < -90 || stop.Lat > 90 {
		return fmt.Errorf("%w: lat must be between -90 and 90", domain.ErrValidation)
	}
	if stop.Lng < -180 || stop.Lng > 180 {
		return fmt.Errorf("%w: lng must be between -180 and 180", domain.ErrValidation)
	}
	return nil
}
