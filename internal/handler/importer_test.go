package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kfenner/roadtrip-planner/internal/domain"
	"github.com/kfenner/roadtrip-planner/internal/handler"
	"github.com/kfenner/roadtrip-planner/internal/service"
)

// ---- POST /import ----------------------------------------------------------

func TestImportTrip_201(t *testing.T) {
	fixture := tripFixture()
	var gotDoc service.TripDocument
	deps := handler.Deps{Importer: &mockImportServicer{
		importDoc: func(_ context.Context, doc service.TripDocument) (domain.Trip, error) {
			gotDoc = doc
			return fixture, nil
		},
	}}

	body := jsonBody(t, map[string]any{
		"name":       "Summer Tour",
		"start_time": "2025-06-01T08:00:00Z",
		"stops": []map[string]any{
			{"name": "Zion National Park", "time_at_destination": 4, "travel_type": "drive"},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(deps).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Summer Tour", gotDoc.Name)
	assert.Len(t, gotDoc.Stops, 1)
}

func TestImportTrip_422_InvalidDocument(t *testing.T) {
	deps := handler.Deps{Importer: &mockImportServicer{
		importDoc: func(_ context.Context, _ service.TripDocument) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("stop 0: %w: name is required", domain.ErrValidation)
		},
	}}

	body := jsonBody(t, map[string]any{"name": "X", "start_time": "2025-06-01T08:00:00Z"})

	req := httptest.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(deps).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- POST /import/share ----------------------------------------------------

func TestRedeemShare_201(t *testing.T) {
	fixture := tripFixture()
	var gotToken string
	deps := handler.Deps{Shares: &mockShareServicer{
		redeem: func(_ context.Context, token string) (domain.Trip, error) {
			gotToken = token
			return fixture, nil
		},
	}}

	body := jsonBody(t, map[string]any{"token": "H4sIAAAAAAAA"})

	req := httptest.NewRequest(http.MethodPost, "/import/share", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(deps).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "H4sIAAAAAAAA", gotToken)
}

func TestRedeemShare_422_MissingToken(t *testing.T) {
	deps := handler.Deps{Shares: &mockShareServicer{}}

	body := jsonBody(t, map[string]any{})

	req := httptest.NewRequest(http.MethodPost, "/import/share", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(deps).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "token is required")
}

func TestRedeemShare_422_BadToken(t *testing.T) {
	deps := handler.Deps{Shares: &mockShareServicer{
		redeem: func(_ context.Context, _ string) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: decode token: illegal base64 data", domain.ErrValidation)
		},
	}}

	body := jsonBody(t, map[string]any{"token": "!!!"})

	req := httptest.NewRequest(http.MethodPost, "/import/share", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(deps).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- GET /trips/{tripID}/share ---------------------------------------------

func TestShareTrip_200(t *testing.T) {
	fixture := tripFixture()
	deps := handler.Deps{Shares: &mockShareServicer{
		encode: func(_ context.Context, id uuid.UUID) (string, error) {
			assert.Equal(t, fixture.ID, id)
			return "H4sIAAAAAAAA", nil
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+fixture.ID.String()+"/share", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(deps).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"H4sIAAAAAAAA"}`, rec.Body.String())
}

func TestShareTrip_404(t *testing.T) {
	deps := handler.Deps{Shares: &mockShareServicer{
		encode: func(_ context.Context, _ uuid.UUID) (string, error) {
			return "", domain.ErrNotFound
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.New().String()+"/share", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(deps).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
