package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfenner/roadtrip-planner/internal/domain"
	"github.com/kfenner/roadtrip-planner/internal/repo"
)

// newStopFixtures creates a trip plus n stops in order and returns them.
func newStopFixtures(t *testing.T, trips repo.TripRepo, stops repo.StopRepo, n int) (domain.Trip, []domain.Stop) {
	t.Helper()
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	created := make([]domain.Stop, 0, n)
	for i := 0; i < n; i++ {
		s, err := stops.Create(ctx, domain.Stop{
			TripID:            trip.ID,
			Name:              "Stop " + string(rune('A'+i)),
			City:              "Moab",
			State:             "UT",
			Lat:               38.5 + float64(i),
			Lng:               -109.5,
			TimeAtDestination: 1.5,
			TravelType:        domain.TravelDrive,
		})
		require.NoError(t, err)
		created = append(created, s)
	}
	return trip, created
}

func TestStopRepo_Create_AssignsSequentialPositions(t *testing.T) {
	tx := newTestTx(t)
	trips, stops := repo.NewTripRepo(tx), repo.NewStopRepo(tx)

	_, created := newStopFixtures(t, trips, stops, 3)

	for i, s := range created {
		assert.Equal(t, i, s.Position, "stop %d position", i)
	}
}

func TestStopRepo_Create_NullableFieldsRoundTrip(t *testing.T) {
	tx := newTestTx(t)
	trips, stops := repo.NewTripRepo(tx), repo.NewStopRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	drive := 2.5
	manual := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	got, err := stops.Create(ctx, domain.Stop{
		TripID:                trip.ID,
		Name:                  "Overlook",
		DriveTimeFromPrevious: &drive,
		ManualDeparture:       &manual,
		TravelType:            domain.TravelFly,
	})

	require.NoError(t, err)
	require.NotNil(t, got.DriveTimeFromPrevious)
	assert.Equal(t, drive, *got.DriveTimeFromPrevious)
	require.NotNil(t, got.ManualDeparture)
	assert.True(t, got.ManualDeparture.Equal(manual))
	assert.Equal(t, domain.TravelFly, got.TravelType)
}

func TestStopRepo_GetByID_ScopedToTrip(t *testing.T) {
	tx := newTestTx(t)
	trips, stops := repo.NewTripRepo(tx), repo.NewStopRepo(tx)
	ctx := context.Background()

	_, created := newStopFixtures(t, trips, stops, 1)
	otherTrip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	// Right stop, wrong trip.
	_, err = stops.GetByID(ctx, otherTrip.ID, created[0].ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStopRepo_ListByTripID_OrderedByPosition(t *testing.T) {
	tx := newTestTx(t)
	trips, stops := repo.NewTripRepo(tx), repo.NewStopRepo(tx)

	trip, created := newStopFixtures(t, trips, stops, 3)

	got, err := stops.ListByTripID(context.Background(), trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range got {
		assert.Equal(t, created[i].ID, got[i].ID)
	}
}

func TestStopRepo_Update(t *testing.T) {
	tx := newTestTx(t)
	trips, stops := repo.NewTripRepo(tx), repo.NewStopRepo(tx)
	ctx := context.Background()

	_, created := newStopFixtures(t, trips, stops, 1)
	s := created[0]
	s.Name = "Renamed"
	s.TimeAtDestination = 4
	drive := 1.25
	s.DriveTimeFromPrevious = &drive

	got, err := stops.Update(ctx, s)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, 4.0, got.TimeAtDestination)
	require.NotNil(t, got.DriveTimeFromPrevious)
	assert.Equal(t, drive, *got.DriveTimeFromPrevious)
}

func TestStopRepo_UpdateDriveTime(t *testing.T) {
	tx := newTestTx(t)
	trips, stops := repo.NewTripRepo(tx), repo.NewStopRepo(tx)
	ctx := context.Background()

	trip, created := newStopFixtures(t, trips, stops, 1)

	hours := 3.75
	require.NoError(t, stops.UpdateDriveTime(ctx, trip.ID, created[0].ID, &hours))

	got, err := stops.GetByID(ctx, trip.ID, created[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got.DriveTimeFromPrevious)
	assert.Equal(t, hours, *got.DriveTimeFromPrevious)

	// Clearing back to unresolved.
	require.NoError(t, stops.UpdateDriveTime(ctx, trip.ID, created[0].ID, nil))
	got, err = stops.GetByID(ctx, trip.ID, created[0].ID)
	require.NoError(t, err)
	assert.Nil(t, got.DriveTimeFromPrevious)
}

func TestStopRepo_Delete_CompactsPositions(t *testing.T) {
	tx := newTestTx(t)
	trips, stops := repo.NewTripRepo(tx), repo.NewStopRepo(tx)
	ctx := context.Background()

	trip, created := newStopFixtures(t, trips, stops, 3)

	// Remove the middle stop; the last stop should slide into position 1.
	require.NoError(t, stops.Delete(ctx, trip.ID, created[1].ID))

	got, err := stops.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, created[0].ID, got[0].ID)
	assert.Equal(t, 0, got[0].Position)
	assert.Equal(t, created[2].ID, got[1].ID)
	assert.Equal(t, 1, got[1].Position)
}

func TestStopRepo_Delete_NotFound(t *testing.T) {
	tx := newTestTx(t)
	trips, stops := repo.NewTripRepo(tx), repo.NewStopRepo(tx)

	trip, _ := newStopFixtures(t, trips, stops, 1)

	err := stops.Delete(context.Background(), trip.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStopRepo_Reorder(t *testing.T) {
	tx := newTestTx(t)
	trips, stops := repo.NewTripRepo(tx), repo.NewStopRepo(tx)
	ctx := context.Background()

	trip, created := newStopFixtures(t, trips, stops, 3)

	// Reverse the order.
	err := stops.Reorder(ctx, trip.ID, []uuid.UUID{created[2].ID, created[1].ID, created[0].ID})
	require.NoError(t, err)

	got, err := stops.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, created[2].ID, got[0].ID)
	assert.Equal(t, created[1].ID, got[1].ID)
	assert.Equal(t, created[0].ID, got[2].ID)
}

func TestStopRepo_Reorder_UnknownIDFails(t *testing.T) {
	tx := newTestTx(t)
	trips, stops := repo.NewTripRepo(tx), repo.NewStopRepo(tx)

	trip, created := newStopFixtures(t, trips, stops, 2)

	err := stops.Reorder(context.Background(), trip.ID, []uuid.UUID{created[0].ID, uuid.New()})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStopRepo_CascadeDeleteWithTrip(t *testing.T) {
	tx := newTestTx(t)
	trips, stops := repo.NewTripRepo(tx), repo.NewStopRepo(tx)
	ctx := context.Background()

	trip, _ := newStopFixtures(t, trips, stops, 2)

	require.NoError(t, trips.Delete(ctx, trip.ID))

	got, err := stops.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
