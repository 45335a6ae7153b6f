package domain

import "time"

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per stop, with trip fields
// repeated for every stop on that trip. Trips with no stops yield one row
// with zero values for all stop fields.
//
// Arrival/departure times are the computed schedule at export time, so the
// exported file reflects the same itinerary the user sees in the planner.
type ExportRow struct {
	// Trip fields — repeated for every stop on the trip.
	TripID    string
	TripName  string
	TripStart time.Time
	TripNotes string

	// Stop fields — zero values when the trip has no stops.
	StopName          string
	City              string
	State             string
	Address           string
	Lat               float64
	Lng               float64
	TravelType        string
	TimeAtDestination float64 // hours
	DriveTime         *float64
	ArrivalTime       *time.Time
	DepartureTime     *time.Time
	StopNotes         string
}
