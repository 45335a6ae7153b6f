package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kfenner/roadtrip-planner/internal/domain"
	"github.com/kfenner/roadtrip-planner/internal/metrics"
	"github.com/kfenner/roadtrip-planner/internal/repo"
	"github.com/kfenner/roadtrip-planner/internal/routing"
)

// DriveTimeService resolves drive_time_from_previous for a trip's legs.
//
// Resolution is best-effort: a leg that cannot be resolved (provider down,
// missing coordinates) is simply left unresolved — the schedule computation
// treats it as zero hours, so a failed lookup never blocks the itinerary.
type DriveTimeService struct {
	trips     repo.TripRepo
	stops     repo.StopRepo
	legCache  repo.LegCacheRepo
	provider  routing.Provider
	collector *metrics.Collector
}

// NewDriveTimeService constructs a DriveTimeService.
func NewDriveTimeService(
	trips repo.TripRepo,
	stops repo.StopRepo,
	legCache repo.LegCacheRepo,
	provider routing.Provider,
	collector *metrics.Collector,
) *DriveTimeService {
	return &DriveTimeService{
		trips:     trips,
		stops:     stops,
		legCache:  legCache,
		provider:  provider,
		collector: collector,
	}
}

// Refresh resolves the drive time for every drivable leg of the trip and
// writes the results back to the stops. It returns the stops with updated
// values, in itinerary order.
//
// Legs are skipped (left untouched) when:
//   - the stop is first in the trip (no previous leg)
//   - the travel type is fly
//   - either end is missing coordinates
//   - the lookup fails
//
// Returns domain.ErrNotFound if the trip does not exist.
func (s *DriveTimeService) Refresh(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.DriveTimeService.Refresh: %w", err)
	}

	stops, err := s.stops.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DriveTimeService.Refresh: %w", err)
	}

	for i := 1; i < len(stops); i++ {
		prev, cur := stops[i-1], stops[i]
		if cur.TravelType == domain.TravelFly {
			continue
		}
		if !hasCoordinates(prev) || !hasCoordinates(cur) {
			continue
		}

		hours, err := s.resolveLeg(ctx, prev.Coordinates(), cur.Coordinates())
		if err != nil {
			slog.WarnContext(ctx, "drive time lookup failed",
				"trip_id", tripID, "stop_id", cur.ID, "error", err)
			continue
		}

		if err := s.stops.UpdateDriveTime(ctx, tripID, cur.ID, &hours); err != nil {
			return nil, fmt.Errorf("service.DriveTimeService.Refresh: %w", err)
		}
	}

	updated, err := s.stops.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DriveTimeService.Refresh: %w", err)
	}
	if updated == nil {
		updated = []domain.Stop{}
	}
	return updated, nil
}

// resolveLeg answers from the persistent leg cache when possible, otherwise
// asks the routing provider and stores the answer for next time.
func (s *DriveTimeService) resolveLeg(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	hours, err := s.legCache.Get(ctx, from, to)
	if err == nil {
		s.collector.LegCacheHits.Inc()
		return hours, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}

	s.collector.DriveTimeLookups.Inc()
	hours, err = s.provider.LegDuration(ctx, from, to)
	if err != nil {
		s.collector.DriveTimeLookupErr.Inc()
		return 0, err
	}

	// Cache write failures are not fatal; the lookup already succeeded.
	if err := s.legCache.Put(ctx, from, to, hours); err != nil {
		slog.WarnContext(ctx, "leg cache write failed", "error", err)
	}
	return hours, nil
}

// hasCoordinates reports whether the stop carries a usable location.
// (0, 0) is open ocean off West Africa; the planner treats it as unset.
func hasCoordinates(s domain.Stop) bool {
	return s.Lat != 0 || s.Lng != 0
}
