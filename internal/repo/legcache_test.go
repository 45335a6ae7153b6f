package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfenner/roadtrip-planner/internal/domain"
	"github.com/kfenner/roadtrip-planner/internal/repo"
)

var (
	denver = domain.Coordinates{Lat: 39.7392, Lng: -104.9903}
	moab   = domain.Coordinates{Lat: 38.5733, Lng: -109.5498}
)

func TestLegCacheRepo_Get_Miss(t *testing.T) {
	r := repo.NewLegCacheRepo(newTestTx(t))

	_, err := r.Get(context.Background(), denver, moab)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLegCacheRepo_PutThenGet(t *testing.T) {
	r := repo.NewLegCacheRepo(newTestTx(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, denver, moab, 5.75))

	got, err := r.Get(ctx, denver, moab)
	require.NoError(t, err)
	assert.Equal(t, 5.75, got)

	// Reverse direction is a distinct leg.
	_, err = r.Get(ctx, moab, denver)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLegCacheRepo_Put_Overwrites(t *testing.T) {
	r := repo.NewLegCacheRepo(newTestTx(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, denver, moab, 5.75))
	require.NoError(t, r.Put(ctx, denver, moab, 6.25))

	got, err := r.Get(ctx, denver, moab)
	require.NoError(t, err)
	assert.Equal(t, 6.25, got)
}

func TestLegKey_RoundsToFourDecimals(t *testing.T) {
	a := repo.LegKey(domain.Coordinates{Lat: 38.57331, Lng: -109.54979})
	b := repo.LegKey(domain.Coordinates{Lat: 38.57329, Lng: -109.54981})

	assert.Equal(t, a, b, "nearby coordinates should share a cache key")
}
