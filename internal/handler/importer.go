package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kfenner/roadtrip-planner/internal/service"
)

// importTrip handles POST /import.
// The body is a trip document as produced by GET /trips/{tripID}/share or a
// JSON file export. A valid document becomes a brand-new trip; an invalid
// one creates nothing.
func (s *Server) importTrip(w http.ResponseWriter, r *http.Request) {
	var doc service.TripDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeValidation(w, r, "invalid request body")
		return
	}

	trip, err := s.importer.Import(r.Context(), doc)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, tripToResponse(trip))
}

// shareTokenRequest is the JSON body for POST /import/share.
type shareTokenRequest struct {
	Token string `json:"token"`
}

// redeemShare handles POST /import/share.
// It decodes a share token and imports the trip it carries.
func (s *Server) redeemShare(w http.ResponseWriter, r *http.Request) {
	var req shareTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, r, "invalid request body")
		return
	}
	if req.Token == "" {
		writeValidation(w, r, "token is required")
		return
	}

	trip, err := s.shares.Redeem(r.Context(), req.Token)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, tripToResponse(trip))
}
