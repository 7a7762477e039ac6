package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
	"github.com/Euphoric-Coder/Travel-Insights/internal/store"
)

// TextGenerator is the text-generation collaborator: one free-text prompt in,
// one free-text completion out. Defined here, on the consumer side, so the
// generation workflow can be tested with a substitute implementation.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// itineraryDateLayout formats the day date inside planner item titles,
// e.g. "Day 3 (April 3, 2025)".
const itineraryDateLayout = "January 2, 2006"

// ItineraryService builds day-by-day itineraries by calling the text
// generator once per calendar day of a trip.
type ItineraryService struct {
	store store.TripStore
	gen   TextGenerator
}

// NewItineraryService constructs an ItineraryService with its collaborators.
func NewItineraryService(s store.TripStore, gen TextGenerator) *ItineraryService {
	return &ItineraryService{store: s, gen: gen}
}

// Generate produces one planner item per calendar day in the trip's
// inclusive date range [StartDate, EndDate], appending each item to the trip
// as soon as its text arrives — one store write per day, never batched.
// An inverted range (EndDate before StartDate) yields zero days, zero
// generation requests, and no error.
//
// Requests are strictly sequential: each day's completion is awaited before
// the next request starts, so total latency grows linearly with trip length.
//
// Failure policy: abort on the first failed day. Items appended for earlier
// days stay on the trip; the returned error names the day that failed, and
// the items generated so far are returned alongside it. Cancellation via ctx
// is honored between days.
func (s *ItineraryService) Generate(ctx context.Context, tripID uuid.UUID, preference string) ([]domain.PlannerItem, error) {
	trip, err := s.store.Get(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Generate: %w", err)
	}

	days := daysInclusive(trip.StartDate, trip.EndDate)
	added := make([]domain.PlannerItem, 0, len(days))

	for i, day := range days {
		if err := ctx.Err(); err != nil {
			return added, fmt.Errorf("service.ItineraryService.Generate: day %d: %w", i+1, err)
		}

		prompt := buildDayPrompt(i+1, day, trip.Country, preference)
		text, err := s.gen.Generate(ctx, prompt)
		if err != nil {
			return added, fmt.Errorf("service.ItineraryService.Generate: day %d: %w", i+1, err)
		}

		date := day
		item := domain.PlannerItem{
			Title:       fmt.Sprintf("Day %d (%s)", i+1, day.Format(itineraryDateLayout)),
			Description: text,
			Date:        &date,
		}

		// Re-read before each append so days generated so far are never
		// clobbered by the whole-field planner write.
		current, err := s.store.Get(ctx, tripID)
		if err != nil {
			return added, fmt.Errorf("service.ItineraryService.Generate: day %d: %w", i+1, err)
		}
		planner := domain.AddPlannerItem(current.Planner, item)
		if _, err := s.store.Update(ctx, tripID, domain.TripUpdate{Planner: &planner}); err != nil {
			return added, fmt.Errorf("service.ItineraryService.Generate: day %d: %w", i+1, err)
		}

		added = append(added, item)
	}

	return added, nil
}

// buildDayPrompt assembles the per-day generation prompt from the system
// instruction and the human instruction template.
func buildDayPrompt(dayIndex int, day time.Time, country, preference string) string {
	prompt := fmt.Sprintf(
		"You are a travel assistant creating a day-by-day itinerary.\n\n"+
			"Suggest a plan for day %d (%s) of a trip to %s.",
		dayIndex, day.Format(itineraryDateLayout), country,
	)
	if preference != "" {
		prompt += fmt.Sprintf(" Traveler preferences: %s.", preference)
	}
	return prompt
}

// daysInclusive enumerates every calendar day from start to end inclusive,
// at midnight UTC. The sequence is empty when end is before start.
func daysInclusive(start, end time.Time) []time.Time {
	start = truncateToDay(start)
	end = truncateToDay(end)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// truncateToDay drops the time-of-day component, keeping the calendar date
// in UTC.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
