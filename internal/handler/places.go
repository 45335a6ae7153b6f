package handler

import (
	"net/http"
	"strings"

	"github.com/kfenner/roadtrip-planner/internal/routing"
)

const defaultPlaceSearchLimit = 5

// placeResponse is one candidate location from place search.
type placeResponse struct {
	Name    string  `json:"name"`
	City    string  `json:"city,omitempty"`
	State   string  `json:"state,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type placeListResponse struct {
	Data []placeResponse `json:"data"`
}

// searchPlaces handles GET /places/search?q=.
// An optional ?limit= caps the number of candidates (default 5).
func (s *Server) searchPlaces(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeValidation(w, r, "q is required")
		return
	}

	limit := defaultPlaceSearchLimit
	if n := queryInt(r, "limit"); n != nil && *n > 0 {
		limit = *n
	}

	places, err := s.places.Search(r.Context(), query, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	data := make([]placeResponse, len(places))
	for i, p := range places {
		data[i] = placeToResponse(p)
	}
	writeJSON(w, r, http.StatusOK, placeListResponse{Data: data})
}

func placeToResponse(p routing.Place) placeResponse {
	return placeResponse{
		Name:    p.Name,
		City:    p.City,
		State:   p.State,
		Country: p.Country,
		Lat:     p.Lat,
		Lng:     p.Lng,
	}
}
