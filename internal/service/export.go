package service

import (
	"context"
	"fmt"

	"github.com/kfenner/roadtrip-planner/internal/domain"
	"github.com/kfenner/roadtrip-planner/internal/repo"
	"github.com/kfenner/roadtrip-planner/internal/schedule"
)

// ExportService assembles a full flat export of all trips and their stops.
type ExportService struct {
	trips repo.TripRepo
	stops repo.StopRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, stops repo.StopRepo) *ExportService {
	return &ExportService{trips: trips, stops: stops}
}

// Export returns one ExportRow per stop across all trips, with arrival and
// departure times computed the same way the itinerary view computes them.
// Trips with no stops contribute one row with empty stop fields.
// Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, trip := range trips {
		stops, err := s.stops.ListByTripID(ctx, trip.ID)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: %w", err)
		}

		if len(stops) == 0 {
			rows = append(rows, tripRow(trip))
			continue
		}

		for _, sched := range schedule.Compute(stops, trip.StartTime) {
			row := tripRow(trip)
			row.StopName = sched.Name
			row.City = sched.City
			row.State = sched.State
			row.Address = sched.Address
			row.Lat = sched.Lat
			row.Lng = sched.Lng
			row.TravelType = string(sched.TravelType)
			row.TimeAtDestination = sched.TimeAtDestination
			row.DriveTime = sched.DriveTimeFromPrevious
			row.ArrivalTime = sched.ArrivalTime
			dep := sched.DepartureTime
			row.DepartureTime = &dep
			row.StopNotes = sched.Notes
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// tripRow builds an ExportRow carrying only the trip fields.
func tripRow(trip domain.Trip) domain.ExportRow {
	return domain.ExportRow{
		TripID:    trip.ID.String(),
		TripName:  trip.Name,
		TripStart: trip.StartTime,
		TripNotes: trip.Notes,
	}
}
