package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfenner/roadtrip-planner/internal/handler"
	"github.com/kfenner/roadtrip-planner/internal/routing"
)

func TestSearchPlaces_200(t *testing.T) {
	var gotQuery string
	var gotLimit int
	deps := handler.Deps{Places: &mockPlaceSearcher{
		search: func(_ context.Context, query string, limit int) ([]routing.Place, error) {
			gotQuery, gotLimit = query, limit
			return []routing.Place{
				{Name: "Moab", State: "UT", Country: "USA", Lat: 38.5733, Lng: -109.5498},
			}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/places/search?q=moab&limit=3", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(deps).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "moab", gotQuery)
	assert.Equal(t, 3, gotLimit)

	var resp struct {
		Data []struct {
			Name string  `json:"name"`
			Lat  float64 `json:"lat"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Moab", resp.Data[0].Name)
}

func TestSearchPlaces_DefaultLimit(t *testing.T) {
	var gotLimit int
	deps := handler.Deps{Places: &mockPlaceSearcher{
		search: func(_ context.Context, _ string, limit int) ([]routing.Place, error) {
			gotLimit = limit
			return nil, nil
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/places/search?q=moab", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(deps).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, gotLimit)
}

func TestSearchPlaces_422_MissingQuery(t *testing.T) {
	deps := handler.Deps{Places: &mockPlaceSearcher{}}

	req := httptest.NewRequest(http.MethodGet, "/places/search", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(deps).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "q is required")
}
