// Package service contains the business logic for the travel planner API.
// Services validate inputs, enforce business rules, and orchestrate store
// calls. No persistence details live here — services depend on the
// store.TripStore interface, not an implementation.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
	"github.com/Euphoric-Coder/Travel-Insights/internal/store"
)

// TripService implements business logic for trip operations, including the
// note and planner sequence mutations.
type TripService struct {
	store store.TripStore
}

// NewTripService constructs a TripService backed by the provided store.
func NewTripService(s store.TripStore) *TripService {
	return &TripService{store: s}
}

// Create validates and persists a new trip. A fresh id is assigned here and
// is immutable thereafter; notes and planner start empty.
//
// Country and both dates are required (the original creation form's
// validation). Deliberately NOT validated: StartDate <= EndDate. Inverted
// ranges are accepted and yield empty itineraries.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if strings.TrimSpace(trip.Country) == "" {
		return domain.Trip{}, fmt.Errorf("%w: country is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return domain.Trip{}, fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}

	trip.ID = uuid.New()
	trip.Notes = []string{}
	trip.Planner = []domain.PlannerItem{}

	created, err := s.store.Insert(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// Get returns a single trip by id.
// Returns domain.ErrNotFound if no trip with that id exists.
func (s *TripService) Get(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// List returns all trips ordered by start date descending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update applies a partial update to a trip. Fields absent from u are left
// unchanged; present fields overwrite whole. No schema validation is
// performed — an empty country string is accepted on update, matching the
// permissive edit behavior of the original document writes.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, u domain.TripUpdate) (domain.Trip, error) {
	updated, err := s.store.Update(ctx, id, u)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip by id. Deletion is hard — no tombstone remains.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// AddNote appends a note to the trip. Text is trimmed; empty or
// whitespace-only text is rejected with domain.ErrValidation and the stored
// sequence is not touched.
func (s *TripService) AddNote(ctx context.Context, id uuid.UUID, text string) (domain.Trip, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Trip{}, fmt.Errorf("%w: note text is required", domain.ErrValidation)
	}

	trip, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AddNote: %w", err)
	}

	notes := domain.AddNote(trip.Notes, text)
	updated, err := s.store.Update(ctx, id, domain.TripUpdate{Notes: &notes})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AddNote: %w", err)
	}
	return updated, nil
}

// DeleteNote removes the note at the given position. An out-of-range index
// is a no-op: the trip is returned unchanged and no write is issued.
func (s *TripService) DeleteNote(ctx context.Context, id uuid.UUID, index int) (domain.Trip, error) {
	trip, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.DeleteNote: %w", err)
	}

	notes := domain.DeleteNote(trip.Notes, index)
	if len(notes) == len(trip.Notes) {
		return trip, nil
	}

	updated, err := s.store.Update(ctx, id, domain.TripUpdate{Notes: &notes})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.DeleteNote: %w", err)
	}
	return updated, nil
}

// AddPlannerItem appends a planner item to the trip's itinerary.
// A title is required; description and date are free-form.
func (s *TripService) AddPlannerItem(ctx context.Context, id uuid.UUID, item domain.PlannerItem) (domain.Trip, error) {
	if strings.TrimSpace(item.Title) == "" {
		return domain.Trip{}, fmt.Errorf("%w: planner item title is required", domain.ErrValidation)
	}

	trip, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AddPlannerItem: %w", err)
	}

	planner := domain.AddPlannerItem(trip.Planner, item)
	updated, err := s.store.Update(ctx, id, domain.TripUpdate{Planner: &planner})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AddPlannerItem: %w", err)
	}
	return updated, nil
}

// DeletePlannerItem removes the planner item at the given position.
// Same positional contract as DeleteNote: out-of-range is a no-op.
func (s *TripService) DeletePlannerItem(ctx context.Context, id uuid.UUID, index int) (domain.Trip, error) {
	trip, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.DeletePlannerItem: %w", err)
	}

	planner := domain.DeletePlannerItem(trip.Planner, index)
	if len(planner) == len(trip.Planner) {
		return trip, nil
	}

	updated, err := s.store.Update(ctx, id, domain.TripUpdate{Planner: &planner})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.DeletePlannerItem: %w", err)
	}
	return updated, nil
}
