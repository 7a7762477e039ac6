package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
)

// tripsChannel is the Postgres NOTIFY channel fired by the trips table
// trigger (see migrations). Watch LISTENs on it.
const tripsChannel = "trips_changed"

// PostgresStore is the Postgres implementation of TripStore.
// Notes and planner sequences are stored as jsonb columns and always written
// whole. Change notifications ride on LISTEN/NOTIFY via a statement-level
// trigger, so watchers re-read the full collection after every write — even
// writes made by other processes sharing the database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a TripStore backed by the provided pool.
// The pool is also used to acquire dedicated LISTEN connections for Watch.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var _ TripStore = (*PostgresStore)(nil)

// Insert persists a new trip row and returns the full stored record.
func (s *PostgresStore) Insert(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (id, country, start_date, end_date, notes, planner)
		VALUES (@id, @country, @start_date, @end_date, @notes, @planner)
		RETURNING id, country, start_date, end_date, notes, planner, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":         trip.ID,
		"country":    trip.Country,
		"start_date": trip.StartDate,
		"end_date":   trip.EndDate,
		"notes":      nonNilNotes(trip.Notes),
		"planner":    nonNilPlanner(trip.Planner),
	}

	row := s.pool.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("store.PostgresStore.Insert: %w", err)
	}
	return result, nil
}

// Get retrieves a trip by primary key.
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, country, start_date, end_date, notes, planner, created_at, updated_at
		FROM trips
		WHERE id = @id`

	row := s.pool.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("store.PostgresStore.Get: %w", err)
	}
	return result, nil
}

// List returns all trips ordered by start date descending (most recent first).
func (s *PostgresStore) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `
		SELECT id, country, start_date, end_date, notes, planner, created_at, updated_at
		FROM trips
		ORDER BY start_date DESC, created_at DESC`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("store.PostgresStore.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("store.PostgresStore.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store.PostgresStore.List: rows: %w", err)
	}

	return trips, nil
}

// Update reads the current document, merges u at the top-level field
// granularity, and writes every field back whole. There is no optimistic
// concurrency check — last write wins, per the collection contract.
func (s *PostgresStore) Update(ctx context.Context, id uuid.UUID, u domain.TripUpdate) (domain.Trip, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("store.PostgresStore.Update: %w", err)
	}
	merged := domain.ApplyUpdate(current, u)

	const q = `
		UPDATE trips
		SET country    = @country,
		    start_date = @start_date,
		    end_date   = @end_date,
		    notes      = @notes,
		    planner    = @planner,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, country, start_date, end_date, notes, planner, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":         id,
		"country":    merged.Country,
		"start_date": merged.StartDate,
		"end_date":   merged.EndDate,
		"notes":      nonNilNotes(merged.Notes),
		"planner":    nonNilPlanner(merged.Planner),
	}

	row := s.pool.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("store.PostgresStore.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := s.pool.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("store.PostgresStore.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("store.PostgresStore.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// Watch holds a dedicated connection on LISTEN and re-reads the collection
// after every notification. The first snapshot is delivered before Watch
// returns; the channel closes when ctx is cancelled or the connection drops.
func (s *PostgresStore) Watch(ctx context.Context) (<-chan []domain.Trip, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.PostgresStore.Watch: acquire: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+tripsChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("store.PostgresStore.Watch: listen: %w", err)
	}

	snapshot, err := s.List(ctx)
	if err != nil {
		conn.Release()
		return nil, fmt.Errorf("store.PostgresStore.Watch: %w", err)
	}

	ch := make(chan []domain.Trip, 1)
	ch <- snapshot

	go func() {
		defer close(ch)
		defer conn.Release()
		for {
			if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
				return
			}
			trips, err := s.List(ctx)
			if err != nil {
				// Skip this snapshot; the next notification re-reads.
				continue
			}
			trySend(ch, trips)
		}
	}()

	return ch, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// The jsonb notes and planner columns unmarshal directly into their Go types.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t     domain.Trip
		id    pgtype.UUID
		start pgtype.Date
		end   pgtype.Date
	)

	err := s.Scan(&id, &t.Country, &start, &end, &t.Notes, &t.Planner, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time
	if t.Notes == nil {
		t.Notes = []string{}
	}
	if t.Planner == nil {
		t.Planner = []domain.PlannerItem{}
	}

	return t, nil
}

// nonNilNotes keeps a nil slice from serializing as jsonb null.
func nonNilNotes(notes []string) []string {
	if notes == nil {
		return []string{}
	}
	return notes
}

// nonNilPlanner keeps a nil slice from serializing as jsonb null.
func nonNilPlanner(items []domain.PlannerItem) []domain.PlannerItem {
	if items == nil {
		return []domain.PlannerItem{}
	}
	return items
}
