package domain

import "time"

// ScheduledStop is a Stop augmented with the computed schedule.
//
// ArrivalTime is nil for exactly one stop in a non-empty itinerary: the
// first. DepartureTime is always set. When a manual departure override is
// present on the stop, DepartureTime carries that value verbatim — it is
// never clamped against ArrivalTime.
type ScheduledStop struct {
	Stop
	ArrivalTime   *time.Time
	DepartureTime time.Time
}

// Itinerary is the fully computed view of a trip: the trip itself plus its
// stops with arrival and departure times filled in. It is derived state,
// recomputed from the stored stops on every read.
type Itinerary struct {
	Trip  Trip
	Stops []ScheduledStop
}
