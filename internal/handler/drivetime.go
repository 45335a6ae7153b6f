package handler

import "net/http"

// refreshDriveTimes handles POST /trips/{tripID}/drive-times/refresh.
// It resolves drive times for every drivable leg and returns the trip's
// stops with their updated values. Legs that cannot be resolved are left
// untouched rather than failing the whole request.
func (s *Server) refreshDriveTimes(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	stops, err := s.driveTimes.Refresh(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, stopListResponse{Data: stopsToResponses(stops)})
}
