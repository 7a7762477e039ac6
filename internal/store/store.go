// Package store implements the trips collection accessor.
// A TripStore is an opaque document store: insert, top-level field merge on
// update, delete by id, and a subscription that delivers the full current
// result set on every change. Three backends exist — Postgres, Redis, and an
// in-memory store — selected by configuration; services depend only on the
// interface.
package store

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
)

// TripStore defines the persistence operations for the trips collection.
// The service layer depends on this interface, not a concrete backend,
// which allows services to be unit-tested with the in-memory store or a mock.
type TripStore interface {
	// Insert persists a new trip document and returns the stored record
	// (with CreatedAt and UpdatedAt populated).
	Insert(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Get retrieves a single trip by id.
	// Returns domain.ErrNotFound if no trip with that id exists.
	Get(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns all trips ordered by start date descending.
	List(ctx context.Context) ([]domain.Trip, error)

	// Update merges u into the trip at the top-level field granularity:
	// non-nil fields replace the stored field whole, nil fields are left
	// untouched. Returns the updated record, or domain.ErrNotFound.
	//
	// The merge is read-modify-write with no concurrency check; concurrent
	// writers can lose updates. This mirrors the document store contract
	// and is an accepted limitation.
	Update(ctx context.Context, id uuid.UUID, u domain.TripUpdate) (domain.Trip, error)

	// Delete removes a trip by id. Returns domain.ErrNotFound if it does
	// not exist. Deletion is hard — no tombstones.
	Delete(ctx context.Context, id uuid.UUID) error

	// Watch returns a channel that receives the full, ordered trip list:
	// one snapshot immediately on subscribe, then one after every change
	// to the collection. Snapshots are whole result sets, never diffs.
	// Intermediate snapshots may be dropped under load; the latest state
	// is always delivered. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan []domain.Trip, error)
}

// sortTrips orders trips by start date descending (most recent first),
// breaking ties by creation time descending so the order is stable across
// backends that do not sort server-side.
func sortTrips(trips []domain.Trip) {
	sort.SliceStable(trips, func(i, j int) bool {
		if !trips[i].StartDate.Equal(trips[j].StartDate) {
			return trips[i].StartDate.After(trips[j].StartDate)
		}
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})
}

// trySend delivers snapshot on ch without blocking. If the subscriber has not
// consumed the previous snapshot, it is replaced by the newer one — watchers
// only ever care about the latest full state.
func trySend(ch chan []domain.Trip, snapshot []domain.Trip) {
	select {
	case ch <- snapshot:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snapshot:
	default:
	}
}
