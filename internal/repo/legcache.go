package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kfenner/roadtrip-planner/internal/domain"
)

// LegCacheRepo defines the persistence operations for the drive-time cache.
// The cache is keyed by rounded origin/destination coordinates so that the
// routing provider is consulted at most once per distinct leg, surviving
// server restarts. Entries are never invalidated — road networks change
// slowly relative to the lifetime of a trip plan.
type LegCacheRepo interface {
	// Get returns the cached drive time in hours for a leg.
	// Returns domain.ErrNotFound on a cache miss.
	Get(ctx context.Context, from, to domain.Coordinates) (float64, error)

	// Put stores the drive time for a leg, overwriting any existing entry.
	Put(ctx context.Context, from, to domain.Coordinates, hours float64) error
}

// pgLegCacheRepo is the Postgres implementation of LegCacheRepo.
type pgLegCacheRepo struct {
	db db
}

// NewLegCacheRepo constructs a LegCacheRepo backed by the provided db connection.
func NewLegCacheRepo(db db) LegCacheRepo {
	return &pgLegCacheRepo{db: db}
}

func (r *pgLegCacheRepo) Get(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	const q = `
		SELECT hours
		FROM drive_time_cache
		WHERE origin = @origin AND destination = @destination`

	args := pgx.NamedArgs{"origin": LegKey(from), "destination": LegKey(to)}

	var hours float64
	if err := r.db.QueryRow(ctx, q, args).Scan(&hours); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("repo.LegCacheRepo.Get: %w", domain.ErrNotFound)
		}
		return 0, fmt.Errorf("repo.LegCacheRepo.Get: %w", err)
	}
	return hours, nil
}

func (r *pgLegCacheRepo) Put(ctx context.Context, from, to domain.Coordinates, hours float64) error {
	const q = `
		INSERT INTO drive_time_cache (origin, destination, hours)
		VALUES (@origin, @destination, @hours)
		ON CONFLICT (origin, destination)
		DO UPDATE SET hours = EXCLUDED.hours, updated_at = now()`

	args := pgx.NamedArgs{
		"origin":      LegKey(from),
		"destination": LegKey(to),
		"hours":       hours,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.LegCacheRepo.Put: %w", err)
	}
	return nil
}

// LegKey renders coordinates as a stable cache key.
// Four decimal places is roughly 11 m of precision — more than enough to
// identify a stop for routing purposes while letting nearby re-geocodes of
// the same place share a cache entry.
func LegKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lng)
}
