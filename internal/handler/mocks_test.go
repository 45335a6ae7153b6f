package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kfenner/roadtrip-planner/internal/domain"
	"github.com/kfenner/roadtrip-planner/internal/handler"
	"github.com/kfenner/roadtrip-planner/internal/routing"
	"github.com/kfenner/roadtrip-planner/internal/service"
)

// Test doubles for the servicer interfaces.
// Set only the method fields your test needs.

type mockTripServicer struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockStopServicer struct {
	create       func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	getByID      func(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	update       func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	delete       func(ctx context.Context, tripID, stopID uuid.UUID) error
	reorder      func(ctx context.Context, tripID uuid.UUID, ids []uuid.UUID) ([]domain.Stop, error)
}

func (m *mockStopServicer) Create(ctx context.Context, s domain.Stop) (domain.Stop, error) {
	return m.create(ctx, s)
}
func (m *mockStopServicer) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	return m.getByID(ctx, tripID, stopID)
}
func (m *mockStopServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockStopServicer) Update(ctx context.Context, s domain.Stop) (domain.Stop, error) {
	return m.update(ctx, s)
}
func (m *mockStopServicer) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	return m.delete(ctx, tripID, stopID)
}
func (m *mockStopServicer) Reorder(ctx context.Context, tripID uuid.UUID, ids []uuid.UUID) ([]domain.Stop, error) {
	return m.reorder(ctx, tripID, ids)
}

var _ handler.StopServicer = (*mockStopServicer)(nil)

type mockItineraryServicer struct {
	get func(ctx context.Context, tripID uuid.UUID) (domain.Itinerary, error)
}

func (m *mockItineraryServicer) Get(ctx context.Context, tripID uuid.UUID) (domain.Itinerary, error) {
	return m.get(ctx, tripID)
}

var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

type mockDriveTimeServicer struct {
	refresh func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
}

func (m *mockDriveTimeServicer) Refresh(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.refresh(ctx, tripID)
}

var _ handler.DriveTimeServicer = (*mockDriveTimeServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

type mockImportServicer struct {
	importDoc func(ctx context.Context, doc service.TripDocument) (domain.Trip, error)
}

func (m *mockImportServicer) Import(ctx context.Context, doc service.TripDocument) (domain.Trip, error) {
	return m.importDoc(ctx, doc)
}

var _ handler.ImportServicer = (*mockImportServicer)(nil)

type mockShareServicer struct {
	encode func(ctx context.Context, tripID uuid.UUID) (string, error)
	redeem func(ctx context.Context, token string) (domain.Trip, error)
}

func (m *mockShareServicer) Encode(ctx context.Context, tripID uuid.UUID) (string, error) {
	return m.encode(ctx, tripID)
}
func (m *mockShareServicer) Redeem(ctx context.Context, token string) (domain.Trip, error) {
	return m.redeem(ctx, token)
}

var _ handler.ShareServicer = (*mockShareServicer)(nil)

type mockPlaceSearcher struct {
	search func(ctx context.Context, query string, limit int) ([]routing.Place, error)
}

func (m *mockPlaceSearcher) Search(ctx context.Context, query string, limit int) ([]routing.Place, error) {
	return m.search(ctx, query, limit)
}

var _ routing.PlaceSearcher = (*mockPlaceSearcher)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into the chi router,
// mirroring exactly how main.go wires it in production.
func newHTTPHandler(d handler.Deps) http.Handler {
	return handler.NewRouter(handler.NewServer(d))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}
