package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kfenner/roadtrip-planner/internal/domain"
	"github.com/kfenner/roadtrip-planner/internal/repo"
)

// TripDocument is the portable representation of a single trip: the format
// written by file export and share links, and read back by import. Computed
// arrival/departure times are deliberately absent — they are derived state
// and are recomputed after import.
type TripDocument struct {
	Name      string         `json:"name"`
	StartTime time.Time      `json:"start_time"`
	Notes     string         `json:"notes,omitempty"`
	Stops     []StopDocument `json:"stops"`
}

// StopDocument is one stop inside a TripDocument, in itinerary order.
type StopDocument struct {
	Name                  string     `json:"name"`
	City                  string     `json:"city,omitempty"`
	State                 string     `json:"state,omitempty"`
	Address               string     `json:"address,omitempty"`
	Lat                   float64    `json:"lat"`
	Lng                   float64    `json:"lng"`
	TimeAtDestination     float64    `json:"time_at_destination"`
	DriveTimeFromPrevious *float64   `json:"drive_time_from_previous,omitempty"`
	TravelType            string     `json:"travel_type"`
	Notes                 string     `json:"notes,omitempty"`
	ManualDeparture       *time.Time `json:"manual_departure,omitempty"`
}

// ImportService converts trips to and from their portable document form.
type ImportService struct {
	trips repo.TripRepo
	stops repo.StopRepo
}

// NewImportService constructs an ImportService backed by the provided repos.
func NewImportService(trips repo.TripRepo, stops repo.StopRepo) *ImportService {
	return &ImportService{trips: trips, stops: stops}
}

// Document renders an existing trip as a TripDocument.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ImportService) Document(ctx context.Context, tripID uuid.UUID) (TripDocument, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return TripDocument{}, fmt.Errorf("service.ImportService.Document: %w", err)
	}

	stops, err := s.stops.ListByTripID(ctx, tripID)
	if err != nil {
		return TripDocument{}, fmt.Errorf("service.ImportService.Document: %w", err)
	}

	doc := TripDocument{
		Name:      trip.Name,
		StartTime: trip.StartTime,
		Notes:     trip.Notes,
		Stops:     make([]StopDocument, 0, len(stops)),
	}
	for _, st := range stops {
		doc.Stops = append(doc.Stops, StopDocument{
			Name:                  st.Name,
			City:                  st.City,
			State:                 st.State,
			Address:               st.Address,
			Lat:                   st.Lat,
			Lng:                   st.Lng,
			TimeAtDestination:     st.TimeAtDestination,
			DriveTimeFromPrevious: st.DriveTimeFromPrevious,
			TravelType:            string(st.TravelType),
			Notes:                 st.Notes,
			ManualDeparture:       st.ManualDeparture,
		})
	}
	return doc, nil
}

// Import creates a new trip (with all its stops) from a TripDocument.
// The document's stop order becomes the itinerary order. The new trip is
// returned with DB-assigned IDs.
// Returns domain.ErrValidation if the document violates business rules;
// nothing is created in that case.
func (s *ImportService) Import(ctx context.Context, doc TripDocument) (domain.Trip, error) {
	trip := domain.Trip{
		Name:      doc.Name,
		StartTime: doc.StartTime,
		Notes:     doc.Notes,
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	// Validate every stop before creating anything, so a bad document does
	// not leave a half-imported trip behind.
	stops := make([]domain.Stop, 0, len(doc.Stops))
	for i, sd := range doc.Stops {
		st := domain.Stop{
			Name:                  sd.Name,
			City:                  sd.City,
			State:                 sd.State,
			Address:               sd.Address,
			Lat:                   sd.Lat,
			Lng:                   sd.Lng,
			TimeAtDestination:     sd.TimeAtDestination,
			DriveTimeFromPrevious: sd.DriveTimeFromPrevious,
			TravelType:            domain.TravelType(sd.TravelType),
			Notes:                 sd.Notes,
			ManualDeparture:       sd.ManualDeparture,
		}
		if st.TravelType == "" {
			st.TravelType = domain.TravelDrive
		}
		if err := validateStop(st); err != nil {
			return domain.Trip{}, fmt.Errorf("stop %d: %w", i, err)
		}
		stops = append(stops, st)
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ImportService.Import: %w", err)
	}

	for i, st := range stops {
		st.TripID = created.ID
		if _, err := s.stops.Create(ctx, st); err != nil {
			return domain.Trip{}, fmt.Errorf("service.ImportService.Import: stop %d: %w", i, err)
		}
	}

	return created, nil
}
