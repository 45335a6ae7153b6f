package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/kfenner/roadtrip-planner/internal/domain"
	"github.com/kfenner/roadtrip-planner/internal/repo"
	"github.com/kfenner/roadtrip-planner/internal/routing"
)

// Hand-written test doubles for the repo interfaces.
// Set only the method fields your test needs; unset methods return zero values.

type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list      func(ctx context.Context) ([]domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if m.create != nil {
		return m.create(ctx, trip)
	}
	return domain.Trip{}, nil
}

func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return domain.Trip{}, nil
}

func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return nil, nil
}

func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	if m.listPaged != nil {
		return m.listPaged(ctx, p)
	}
	return nil, 0, nil
}

func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if m.update != nil {
		return m.update(ctx, trip)
	}
	return domain.Trip{}, nil
}

func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return nil
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockStopRepo struct {
	create          func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	getByID         func(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error)
	listByTripID    func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	update          func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	updateDriveTime func(ctx context.Context, tripID, stopID uuid.UUID, hours *float64) error
	delete          func(ctx context.Context, tripID, stopID uuid.UUID) error
	reorder         func(ctx context.Context, tripID uuid.UUID, ids []uuid.UUID) error
}

func (m *mockStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	if m.create != nil {
		return m.create(ctx, stop)
	}
	return domain.Stop{}, nil
}

func (m *mockStopRepo) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	if m.getByID != nil {
		return m.getByID(ctx, tripID, stopID)
	}
	return domain.Stop{}, nil
}

func (m *mockStopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	if m.listByTripID != nil {
		return m.listByTripID(ctx, tripID)
	}
	return nil, nil
}

func (m *mockStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	if m.update != nil {
		return m.update(ctx, stop)
	}
	return domain.Stop{}, nil
}

func (m *mockStopRepo) UpdateDriveTime(ctx context.Context, tripID, stopID uuid.UUID, hours *float64) error {
	if m.updateDriveTime != nil {
		return m.updateDriveTime(ctx, tripID, stopID, hours)
	}
	return nil
}

func (m *mockStopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, tripID, stopID)
	}
	return nil
}

func (m *mockStopRepo) Reorder(ctx context.Context, tripID uuid.UUID, ids []uuid.UUID) error {
	if m.reorder != nil {
		return m.reorder(ctx, tripID, ids)
	}
	return nil
}

var _ repo.StopRepo = (*mockStopRepo)(nil)

type mockLegCacheRepo struct {
	get func(ctx context.Context, from, to domain.Coordinates) (float64, error)
	put func(ctx context.Context, from, to domain.Coordinates, hours float64) error
}

func (m *mockLegCacheRepo) Get(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	if m.get != nil {
		return m.get(ctx, from, to)
	}
	return 0, domain.ErrNotFound
}

func (m *mockLegCacheRepo) Put(ctx context.Context, from, to domain.Coordinates, hours float64) error {
	if m.put != nil {
		return m.put(ctx, from, to, hours)
	}
	return nil
}

var _ repo.LegCacheRepo = (*mockLegCacheRepo)(nil)

type mockRoutingProvider struct {
	legDuration func(ctx context.Context, from, to domain.Coordinates) (float64, error)
}

func (m *mockRoutingProvider) LegDuration(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	return m.legDuration(ctx, from, to)
}

var _ routing.Provider = (*mockRoutingProvider)(nil)

// fakeTripStore is an in-memory TripRepo + StopRepo pair for tests that need
// real create/list behavior (import, share) without a database.
type fakeTripStore struct {
	trips map[uuid.UUID]domain.Trip
	stops map[uuid.UUID][]domain.Stop // keyed by trip ID, in position order
}

func newFakeTripStore() *fakeTripStore {
	return &fakeTripStore{
		trips: map[uuid.UUID]domain.Trip{},
		stops: map[uuid.UUID][]domain.Stop{},
	}
}

func (f *fakeTripStore) tripRepo() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			trip.ID = uuid.New()
			f.trips[trip.ID] = trip
			return trip, nil
		},
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			trip, ok := f.trips[id]
			if !ok {
				return domain.Trip{}, domain.ErrNotFound
			}
			return trip, nil
		},
	}
}

func (f *fakeTripStore) stopRepo() *mockStopRepo {
	return &mockStopRepo{
		create: func(_ context.Context, stop domain.Stop) (domain.Stop, error) {
			stop.ID = uuid.New()
			stop.Position = len(f.stops[stop.TripID])
			f.stops[stop.TripID] = append(f.stops[stop.TripID], stop)
			return stop, nil
		},
		listByTripID: func(_ context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
			return f.stops[tripID], nil
		},
	}
}
