// Package domain contains the core data types for the travel planner.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (store, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a single user-recorded travel plan and the top-level document in
// the trips collection. Notes and Planner are ordered sequences: order is
// insertion order, and deletion is by position. Both are always replaced
// whole on write — the store never receives a delta.
//
// There is no invariant that StartDate <= EndDate. Inverted ranges are
// accepted and simply produce empty itineraries.
//
// JSON field names follow the stored document shape (camelCase, with the
// planner sequence under "tripPlanner").
type Trip struct {
	ID        uuid.UUID     `json:"id"`
	Country   string        `json:"country"`
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
	Notes     []string      `json:"notes"`
	Planner   []PlannerItem `json:"tripPlanner"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// PlannerItem is one entry in a trip's day-by-day itinerary.
// Description is free text — possibly model-generated — and must always be
// treated as untrusted content by anything that renders it.
type PlannerItem struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date,omitempty"` // nil when the entry is not tied to a day
}

// TripUpdate carries a partial update to a trip. A nil field means "leave
// unchanged"; a non-nil field overwrites the corresponding trip field whole.
// This is the Go shape of the store's top-level field merge.
type TripUpdate struct {
	Country   *string        `json:"country,omitempty"`
	StartDate *time.Time     `json:"startDate,omitempty"`
	EndDate   *time.Time     `json:"endDate,omitempty"`
	Notes     *[]string      `json:"notes,omitempty"`
	Planner   *[]PlannerItem `json:"tripPlanner,omitempty"`
}
