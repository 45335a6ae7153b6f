package handler

import (
	"net/http"
	"time"

	"github.com/kfenner/roadtrip-planner/internal/domain"
	"github.com/kfenner/roadtrip-planner/internal/schedule"
)

// scheduledStopResponse is one stop in the computed itinerary.
// Alongside the raw numbers it carries pre-formatted display strings so
// clients render durations exactly the way the planner does.
type scheduledStopResponse struct {
	stopResponse
	ArrivalTime              *time.Time `json:"arrival_time"`
	DepartureTime            time.Time  `json:"departure_time"`
	TimeAtDestinationDisplay string     `json:"time_at_destination_display"`
	DriveTimeDisplay         string     `json:"drive_time_display,omitempty"`
}

type itineraryResponse struct {
	Trip  tripResponse            `json:"trip"`
	Stops []scheduledStopResponse `json:"stops"`
}

// getItinerary handles GET /trips/{tripID}/itinerary.
// Arrival and departure times are computed fresh on every request.
func (s *Server) getItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	it, err := s.itineraries.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	stops := make([]scheduledStopResponse, len(it.Stops))
	for i, ss := range it.Stops {
		stops[i] = scheduledStopToResponse(ss)
	}
	writeJSON(w, r, http.StatusOK, itineraryResponse{
		Trip:  tripToResponse(it.Trip),
		Stops: stops,
	})
}

func scheduledStopToResponse(ss domain.ScheduledStop) scheduledStopResponse {
	resp := scheduledStopResponse{
		stopResponse:             stopToResponse(ss.Stop),
		ArrivalTime:              ss.ArrivalTime,
		DepartureTime:            ss.DepartureTime,
		TimeAtDestinationDisplay: schedule.FormatHours(ss.TimeAtDestination, true),
	}
	if ss.DriveTimeFromPrevious != nil {
		resp.DriveTimeDisplay = schedule.FormatHours(*ss.DriveTimeFromPrevious, false)
	}
	return resp
}
