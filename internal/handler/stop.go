package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kfenner/roadtrip-planner/internal/domain"
	"github.com/kfenner/roadtrip-planner/internal/schedule"
)

// hoursField is a duration-in-hours request field that accepts either a JSON
// number ("time_at_destination": 2.5) or a human-readable string
// ("time_at_destination": "2h 30m").
type hoursField float64

func (h *hoursField) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := schedule.ParseHours(s)
		if err != nil {
			return err
		}
		*h = hoursField(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*h = hoursField(v)
	return nil
}

// stopRequest is the JSON body for stop create and update.
type stopRequest struct {
	Name                  string      `json:"name"`
	City                  string      `json:"city"`
	State                 string      `json:"state"`
	Address               string      `json:"address"`
	Lat                   float64     `json:"lat"`
	Lng                   float64     `json:"lng"`
	TimeAtDestination     hoursField  `json:"time_at_destination"`
	DriveTimeFromPrevious *hoursField `json:"drive_time_from_previous"`
	TravelType            string      `json:"travel_type"`
	Notes                 string      `json:"notes"`
	ManualDeparture       *time.Time  `json:"manual_departure"`
}

// stopResponse is the JSON representation of a stored stop.
type stopResponse struct {
	ID                    uuid.UUID  `json:"id"`
	TripID                uuid.UUID  `json:"trip_id"`
	Name                  string     `json:"name"`
	City                  string     `json:"city,omitempty"`
	State                 string     `json:"state,omitempty"`
	Address               string     `json:"address,omitempty"`
	Lat                   float64    `json:"lat"`
	Lng                   float64    `json:"lng"`
	Position              int        `json:"position"`
	TimeAtDestination     float64    `json:"time_at_destination"`
	DriveTimeFromPrevious *float64   `json:"drive_time_from_previous"`
	TravelType            string     `json:"travel_type"`
	Notes                 string     `json:"notes,omitempty"`
	ManualDeparture       *time.Time `json:"manual_departure,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type stopListResponse struct {
	Data []stopResponse `json:"data"`
}

// reorderRequest is the JSON body for POST /trips/{tripID}/stops/reorder.
// stop_ids must be a full permutation of the trip's current stop IDs.
type reorderRequest struct {
	StopIDs []uuid.UUID `json:"stop_ids"`
}

// createStop handles POST /trips/{tripID}/stops.
// The new stop is appended to the end of the itinerary.
func (s *Server) createStop(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	var req stopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, r, "invalid request body")
		return
	}

	created, err := s.stops.Create(r.Context(), requestToStop(id, uuid.Nil, req))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, stopToResponse(created))
}

// listStops handles GET /trips/{tripID}/stops.
func (s *Server) listStops(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	stops, err := s.stops.ListByTripID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, stopListResponse{Data: stopsToResponses(stops)})
}

// getStop handles GET /trips/{tripID}/stops/{stopID}.
func (s *Server) getStop(w http.ResponseWriter, r *http.Request) {
	tID, sID, ok := stopPath(w, r)
	if !ok {
		return
	}

	stop, err := s.stops.GetByID(r.Context(), tID, sID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, stopToResponse(stop))
}

// updateStop handles PUT /trips/{tripID}/stops/{stopID}.
func (s *Server) updateStop(w http.ResponseWriter, r *http.Request) {
	tID, sID, ok := stopPath(w, r)
	if !ok {
		return
	}

	var req stopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, r, "invalid request body")
		return
	}

	updated, err := s.stops.Update(r.Context(), requestToStop(tID, sID, req))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, stopToResponse(updated))
}

// deleteStop handles DELETE /trips/{tripID}/stops/{stopID}.
// Remaining stops keep their relative order.
func (s *Server) deleteStop(w http.ResponseWriter, r *http.Request) {
	tID, sID, ok := stopPath(w, r)
	if !ok {
		return
	}

	if err := s.stops.Delete(r.Context(), tID, sID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// reorderStops handles POST /trips/{tripID}/stops/reorder.
func (s *Server) reorderStops(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, r, "invalid request body")
		return
	}

	stops, err := s.stops.Reorder(r.Context(), id, req.StopIDs)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, stopListResponse{Data: stopsToResponses(stops)})
}

// --- helpers ----------------------------------------------------------------

// stopPath parses both the {tripID} and {stopID} path parameters.
func stopPath(w http.ResponseWriter, r *http.Request) (tripID, stopID uuid.UUID, ok bool) {
	tID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeNotFound(w, r, "trip not found")
		return uuid.Nil, uuid.Nil, false
	}
	sID, err := uuid.Parse(chi.URLParam(r, "stopID"))
	if err != nil {
		writeNotFound(w, r, "stop not found")
		return uuid.Nil, uuid.Nil, false
	}
	return tID, sID, true
}

func requestToStop(tripID, stopID uuid.UUID, req stopRequest) domain.Stop {
	stop := domain.Stop{
		ID:                stopID,
		TripID:            tripID,
		Name:              req.Name,
		City:              req.City,
		State:             req.State,
		Address:           req.Address,
		Lat:               req.Lat,
		Lng:               req.Lng,
		TimeAtDestination: float64(req.TimeAtDestination),
		TravelType:        domain.TravelType(req.TravelType),
		Notes:             req.Notes,
		ManualDeparture:   req.ManualDeparture,
	}
	if req.DriveTimeFromPrevious != nil {
		v := float64(*req.DriveTimeFromPrevious)
		stop.DriveTimeFromPrevious = &v
	}
	return stop
}

func stopToResponse(st domain.Stop) stopResponse {
	return stopResponse{
		ID:                    st.ID,
		TripID:                st.TripID,
		Name:                  st.Name,
		City:                  st.City,
		State:                 st.State,
		Address:               st.Address,
		Lat:                   st.Lat,
		Lng:                   st.Lng,
		Position:              st.Position,
		TimeAtDestination:     st.TimeAtDestination,
		DriveTimeFromPrevious: st.DriveTimeFromPrevious,
		TravelType:            string(st.TravelType),
		Notes:                 st.Notes,
		ManualDeparture:       st.ManualDeparture,
		CreatedAt:             st.CreatedAt,
		UpdatedAt:             st.UpdatedAt,
	}
}

func stopsToResponses(stops []domain.Stop) []stopResponse {
	out := make([]stopResponse, len(stops))
	for i, st := range stops {
		out[i] = stopToResponse(st)
	}
	return out
}
