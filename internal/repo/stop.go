package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kfenner/roadtrip-planner/internal/domain"
)

// StopRepo defines the persistence operations for Stops.
// All write and single-read operations are scoped by tripID to enforce ownership.
type StopRepo interface {
	// Create inserts a new stop at the end of the trip's sequence and returns
	// the persisted record with its assigned position.
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// GetByID retrieves a single stop by its UUID, scoped to the given tripID.
	// Returns domain.ErrNotFound if no stop with that ID exists under that trip.
	GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error)

	// ListByTripID returns all stops for a trip ordered by position ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)

	// Update overwrites the mutable fields of a stop, scoped to the given
	// tripID. Position is not changed here — use Reorder.
	// Returns domain.ErrNotFound if no stop with that ID exists under that trip.
	Update(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// UpdateDriveTime sets only drive_time_from_previous on a stop.
	// Used by the drive-time refresh so concurrent edits to other fields
	// are not clobbered by a slow lookup writing back stale data.
	UpdateDriveTime(ctx context.Context, tripID, stopID uuid.UUID, hours *float64) error

	// Delete removes a stop and compacts the positions of the stops after it.
	// Returns domain.ErrNotFound if no stop with that ID exists under that trip.
	Delete(ctx context.Context, tripID, stopID uuid.UUID) error

	// Reorder assigns positions 0..len-1 to the trip's stops in the order
	// given by ids. The caller is responsible for passing a full permutation
	// of the trip's stop IDs; rows not named in ids are left untouched.
	// Returns domain.ErrNotFound if fewer rows were updated than ids given.
	Reorder(ctx context.Context, tripID uuid.UUID, ids []uuid.UUID) error
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

const stopColumns = `id, trip_id, name, city, state, address, lat, lng, position,
	time_at_destination, drive_time_from_previous, travel_type, notes,
	manual_departure, created_at, updated_at`

func (r *pgStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	// The subselect appends the stop after the trip's current last position.
	const q = `
		INSERT INTO stops (trip_id, name, city, state, address, lat, lng, position,
			time_at_destination, drive_time_from_previous, travel_type, notes,
			manual_departure)
		VALUES (@trip_id, @name, @city, @state, @address, @lat, @lng,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM stops WHERE trip_id = @trip_id),
			@time_at_destination, @drive_time_from_previous, @travel_type, @notes,
			@manual_departure)
		RETURNING ` + stopColumns

	row := r.db.QueryRow(ctx, q, stopArgs(stop))
	result, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	const q = `
		SELECT ` + stopColumns + `
		FROM stops
		WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": stopID, "trip_id": tripID})
	result, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	const q = `
		SELECT ` + stopColumns + `
		FROM stops
		WHERE trip_id = @trip_id
		ORDER BY position ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var stops []domain.Stop
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StopRepo.ListByTripID: scan: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTripID: rows: %w", err)
	}

	return stops, nil
}

func (r *pgStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		UPDATE stops
		SET name                     = @name,
		    city                     = @city,
		    state                    = @state,
		    address                  = @address,
		    lat                      = @lat,
		    lng                      = @lng,
		    time_at_destination      = @time_at_destination,
		    drive_time_from_previous = @drive_time_from_previous,
		    travel_type              = @travel_type,
		    notes                    = @notes,
		    manual_departure         = @manual_departure,
		    updated_at               = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + stopColumns

	args := stopArgs(stop)
	args["id"] = stop.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) UpdateDriveTime(ctx context.Context, tripID, stopID uuid.UUID, hours *float64) error {
	const q = `
		UPDATE stops
		SET drive_time_from_previous = @hours,
		    updated_at               = now()
		WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": stopID, "trip_id": tripID, "hours": hours})
	if err != nil {
		return fmt.Errorf("repo.StopRepo.UpdateDriveTime: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StopRepo.UpdateDriveTime: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgStopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	const q = `
		DELETE FROM stops
		WHERE id = @id AND trip_id = @trip_id
		RETURNING position`

	var pos int
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": stopID, "trip_id": tripID}).Scan(&pos)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("repo.StopRepo.Delete: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("repo.StopRepo.Delete: %w", err)
	}

	// Close the gap so positions stay contiguous.
	const shift = `
		UPDATE stops
		SET position = position - 1
		WHERE trip_id = @trip_id AND position > @position`

	if _, err := r.db.Exec(ctx, shift, pgx.NamedArgs{"trip_id": tripID, "position": pos}); err != nil {
		return fmt.Errorf("repo.StopRepo.Delete: compact positions: %w", err)
	}
	return nil
}

func (r *pgStopRepo) Reorder(ctx context.Context, tripID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	// unnest WITH ORDINALITY turns the id array into (id, 1-based index) rows.
	const q = `
		UPDATE stops
		SET position   = u.ord - 1,
		    updated_at = now()
		FROM unnest(@ids::uuid[]) WITH ORDINALITY AS u(id, ord)
		WHERE stops.id = u.id AND stops.trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"ids": ids, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.StopRepo.Reorder: %w", err)
	}
	if tag.RowsAffected() != int64(len(ids)) {
		return fmt.Errorf("repo.StopRepo.Reorder: %w", domain.ErrNotFound)
	}
	return nil
}

// stopArgs builds the named args shared by Create and Update.
func stopArgs(stop domain.Stop) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_id":                  stop.TripID,
		"name":                     stop.Name,
		"city":                     stop.City,
		"state":                    stop.State,
		"address":                  stop.Address,
		"lat":                      stop.Lat,
		"lng":                      stop.Lng,
		"time_at_destination":      stop.TimeAtDestination,
		"drive_time_from_previous": stop.DriveTimeFromPrevious, // nil becomes NULL
		"travel_type":              string(stop.TravelType),
		"notes":                    stop.Notes,
		"manual_departure":         stop.ManualDeparture,
	}
}

// scanStop maps a single database row into a domain.Stop.
// It handles the UUID conversions and the two nullable columns.
func scanStop(s scanner) (domain.Stop, error) {
	var (
		stop       domain.Stop
		id, tripID pgtype.UUID
		driveTime  pgtype.Float8
		manualDep  pgtype.Timestamptz
		travelType string
	)

	err := s.Scan(
		&id, &tripID, &stop.Name, &stop.City, &stop.State, &stop.Address,
		&stop.Lat, &stop.Lng, &stop.Position, &stop.TimeAtDestination,
		&driveTime, &travelType, &stop.Notes, &manualDep,
		&stop.CreatedAt, &stop.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stop{}, domain.ErrNotFound
		}
		return domain.Stop{}, err
	}

	stop.ID = uuid.UUID(id.Bytes)
	stop.TripID = uuid.UUID(tripID.Bytes)
	stop.TravelType = domain.TravelType(travelType)
	if driveTime.Valid {
		dt := driveTime.Float64
		stop.DriveTimeFromPrevious = &dt
	}
	if manualDep.Valid {
		md := manualDep.Time
		stop.ManualDeparture = &md
	}

	return stop, nil
}
