package handler

import "net/http"

// shareTokenResponse carries a share token for an existing trip.
type shareTokenResponse struct {
	Token string `json:"token"`
}

// shareTrip handles GET /trips/{tripID}/share.
// The returned token is URL-safe and self-contained; redeem it with
// POST /import/share on any instance.
func (s *Server) shareTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	token, err := s.shares.Encode(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, shareTokenResponse{Token: token})
}
