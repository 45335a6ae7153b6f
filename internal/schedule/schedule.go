// Package schedule computes itinerary timing for a trip's stops.
//
// Everything in this package is a pure function over domain values: no
// database, no clock, no retained state. The store layer calls Compute on
// every itinerary read, so two calls with the same inputs always produce
// the same outputs.
package schedule

import (
	"time"

	"github.com/kfenner/roadtrip-planner/internal/domain"
)

// Compute derives arrival and departure times for an ordered stop list.
//
// It makes a single left-to-right pass, threading a running cursor:
//
//   - The first stop has no arrival. Its departure is the trip start time,
//     or its manual override when one is set.
//   - Every later stop arrives at cursor + drive time (an unresolved drive
//     time counts as zero hours) and departs after its time at destination,
//     unless a manual override replaces the departure.
//   - The cursor always advances to the stop's actual departure, so a manual
//     override on stop k shifts every stop after k while stops before k are
//     untouched.
//
// Manual overrides are absolute: an override earlier than the computed
// arrival is reported verbatim, never clamped.
//
// Compute is total. Negative or otherwise malformed hour values are not
// rejected; they flow through the arithmetic as-is. The returned slice has
// the same length and order as the input and is never nil.
func Compute(stops []domain.Stop, start time.Time) []domain.ScheduledStop {
	out := make([]domain.ScheduledStop, 0, len(stops))
	cursor := start

	for i, stop := range stops {
		var arrival *time.Time
		if i > 0 {
			drive := 0.0
			if stop.DriveTimeFromPrevious != nil {
				drive = *stop.DriveTimeFromPrevious
			}
			t := addHours(cursor, drive)
			arrival = &t
		}

		var departure time.Time
		switch {
		case stop.ManualDeparture != nil:
			departure = *stop.ManualDeparture
		case arrival == nil:
			departure = cursor
		default:
			departure = addHours(*arrival, stop.TimeAtDestination)
		}

		cursor = departure
		out = append(out, domain.ScheduledStop{
			Stop:          stop,
			ArrivalTime:   arrival,
			DepartureTime: departure,
		})
	}

	return out
}

// addHours adds a fractional number of hours to t as a time.Duration.
// Duration addition keeps the arithmetic wall-clock-correct across calendar
// day and DST boundaries, unlike manual minute math.
func addHours(t time.Time, hours float64) time.Time {
	return t.Add(time.Duration(hours * float64(time.Hour)))
}
