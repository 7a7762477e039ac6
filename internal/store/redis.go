package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
)

const (
	// tripKeyPrefix namespaces trip documents; the full key is "trip:<uuid>".
	tripKeyPrefix = "trip:"
	// tripSetKey is the set of all trip ids, used to enumerate the collection.
	tripSetKey = "trips"
	// tripPubSubChannel carries change notifications for Watch.
	tripPubSubChannel = "trips:changed"
)

// RedisStore is the Redis implementation of TripStore. Each trip is a JSON
// document under its own key, with a set of ids for enumeration; every write
// publishes on a pub/sub channel so watchers re-read the collection.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a TripStore backed by the provided Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ TripStore = (*RedisStore)(nil)

// Insert persists a new trip document and notifies watchers.
func (s *RedisStore) Insert(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	now := time.Now().UTC()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	if err := s.save(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("store.RedisStore.Insert: %w", err)
	}
	return trip, nil
}

// Get retrieves a trip document by id.
func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	data, err := s.client.Get(ctx, tripKeyPrefix+id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Trip{}, fmt.Errorf("store.RedisStore.Get: %w", domain.ErrNotFound)
		}
		return domain.Trip{}, fmt.Errorf("store.RedisStore.Get: %w", err)
	}

	var trip domain.Trip
	if err := json.Unmarshal([]byte(data), &trip); err != nil {
		return domain.Trip{}, fmt.Errorf("store.RedisStore.Get: unmarshal: %w", err)
	}
	return trip, nil
}

// List returns all trips ordered by start date descending. Documents are
// fetched in one pipeline; ids whose document vanished mid-read are skipped.
func (s *RedisStore) List(ctx context.Context) ([]domain.Trip, error) {
	ids, err := s.client.SMembers(ctx, tripSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("store.RedisStore.List: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, tripKeyPrefix+id)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("store.RedisStore.List: pipeline: %w", err)
	}

	trips := make([]domain.Trip, 0, len(ids))
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("store.RedisStore.List: %w", err)
		}
		var trip domain.Trip
		if err := json.Unmarshal([]byte(data), &trip); err != nil {
			return nil, fmt.Errorf("store.RedisStore.List: unmarshal: %w", err)
		}
		trips = append(trips, trip)
	}

	sortTrips(trips)
	return trips, nil
}

// Update merges u into the stored document and writes it back whole.
func (s *RedisStore) Update(ctx context.Context, id uuid.UUID, u domain.TripUpdate) (domain.Trip, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("store.RedisStore.Update: %w", err)
	}

	merged := domain.ApplyUpdate(current, u)
	merged.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, merged); err != nil {
		return domain.Trip{}, fmt.Errorf("store.RedisStore.Update: %w", err)
	}
	return merged, nil
}

// Delete removes a trip document and its id set entry, then notifies watchers.
func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	// Existence check first so a missing trip maps to ErrNotFound rather
	// than a silent zero-key DEL.
	if _, err := s.Get(ctx, id); err != nil {
		return fmt.Errorf("store.RedisStore.Delete: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, tripKeyPrefix+id.String())
	pipe.SRem(ctx, tripSetKey, id.String())
	pipe.Publish(ctx, tripPubSubChannel, id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store.RedisStore.Delete: %w", err)
	}
	return nil
}

// Watch subscribes to the change channel and re-reads the collection after
// every published write. The first snapshot is delivered before Watch
// returns; the channel closes when ctx is cancelled.
func (s *RedisStore) Watch(ctx context.Context) (<-chan []domain.Trip, error) {
	sub := s.client.Subscribe(ctx, tripPubSubChannel)
	// Receive forces the SUBSCRIBE round-trip so no change published after
	// the initial snapshot is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("store.RedisStore.Watch: subscribe: %w", err)
	}

	snapshot, err := s.List(ctx)
	if err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("store.RedisStore.Watch: %w", err)
	}

	ch := make(chan []domain.Trip, 1)
	ch <- snapshot

	go func() {
		defer close(ch)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				trips, err := s.List(ctx)
				if err != nil {
					continue
				}
				trySend(ch, trips)
			}
		}
	}()

	return ch, nil
}

// save marshals the document, writes it and its id set entry in one
// pipeline, and publishes the change notification.
func (s *RedisStore) save(ctx context.Context, trip domain.Trip) error {
	data, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, tripKeyPrefix+trip.ID.String(), data, 0)
	pipe.SAdd(ctx, tripSetKey, trip.ID.String())
	pipe.Publish(ctx, tripPubSubChannel, trip.ID.String())
	_, err = pipe.Exec(ctx)
	return err
}
