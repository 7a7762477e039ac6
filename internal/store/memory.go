package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
)

// MemoryStore is an in-process TripStore. It is the default backend for
// local development and the backend used by service and handler tests.
// All operations are safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	trips   map[uuid.UUID]domain.Trip
	subs    map[int]chan []domain.Trip
	nextSub int
}

// NewMemoryStore returns an empty in-memory trips collection.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trips: make(map[uuid.UUID]domain.Trip),
		subs:  make(map[int]chan []domain.Trip),
	}
}

var _ TripStore = (*MemoryStore)(nil)

// Insert persists a new trip and notifies watchers.
func (s *MemoryStore) Insert(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trips[trip.ID]; ok {
		return domain.Trip{}, fmt.Errorf("store.MemoryStore.Insert: trip %s already exists", trip.ID)
	}
	now := time.Now().UTC()
	trip.CreatedAt = now
	trip.UpdatedAt = now
	s.trips[trip.ID] = trip
	s.notifyLocked()
	return trip, nil
}

// Get retrieves a trip by id.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trip, ok := s.trips[id]
	if !ok {
		return domain.Trip{}, fmt.Errorf("store.MemoryStore.Get: %w", domain.ErrNotFound)
	}
	return trip, nil
}

// List returns all trips ordered by start date descending.
func (s *MemoryStore) List(_ context.Context) ([]domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(), nil
}

// Update merges u into the stored trip and notifies watchers.
func (s *MemoryStore) Update(_ context.Context, id uuid.UUID, u domain.TripUpdate) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, ok := s.trips[id]
	if !ok {
		return domain.Trip{}, fmt.Errorf("store.MemoryStore.Update: %w", domain.ErrNotFound)
	}
	trip = domain.ApplyUpdate(trip, u)
	trip.UpdatedAt = time.Now().UTC()
	s.trips[id] = trip
	s.notifyLocked()
	return trip, nil
}

// Delete removes a trip by id and notifies watchers.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trips[id]; !ok {
		return fmt.Errorf("store.MemoryStore.Delete: %w", domain.ErrNotFound)
	}
	delete(s.trips, id)
	s.notifyLocked()
	return nil
}

// Watch subscribes to collection changes. The returned channel receives the
// current snapshot immediately and a fresh snapshot after every change.
func (s *MemoryStore) Watch(ctx context.Context) (<-chan []domain.Trip, error) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan []domain.Trip, 1)
	s.subs[id] = ch
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

// snapshotLocked copies the current trip set, sorted. Callers must hold mu.
func (s *MemoryStore) snapshotLocked() []domain.Trip {
	trips := make([]domain.Trip, 0, len(s.trips))
	for _, t := range s.trips {
		trips = append(trips, t)
	}
	sortTrips(trips)
	return trips
}

// notifyLocked pushes a fresh snapshot to every subscriber. Callers must hold mu.
func (s *MemoryStore) notifyLocked() {
	if len(s.subs) == 0 {
		return
	}
	snapshot := s.snapshotLocked()
	for _, ch := range s.subs {
		trySend(ch, snapshot)
	}
}
