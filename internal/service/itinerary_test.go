package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
	"github.com/Euphoric-Coder/Travel-Insights/internal/service"
	"github.com/Euphoric-Coder/Travel-Insights/internal/store"
)

// mockGenerator is a test double for service.TextGenerator. It records every
// prompt and answers via the generate field.
type mockGenerator struct {
	prompts  []string
	generate func(prompt string) (string, error)
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.generate(prompt)
}

var _ service.TextGenerator = (*mockGenerator)(nil)

// ---- helpers ---------------------------------------------------------------

// seedTrip inserts a trip with the given date range into a fresh MemoryStore.
// Itinerary tests run against the real in-memory store so the per-day
// read-append-write cycle is exercised end to end.
func seedTrip(t *testing.T, start, end time.Time) (*store.MemoryStore, domain.Trip) {
	t.Helper()

	s := store.NewMemoryStore()
	svc := service.NewTripService(s)

	trip, err := svc.Create(context.Background(), domain.Trip{
		Country:   "Japan",
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	return s, trip
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ---- Generate tests --------------------------------------------------------

func TestItineraryService_Generate_SingleDay(t *testing.T) {
	s, trip := seedTrip(t, day(2025, 4, 1), day(2025, 4, 1))
	gen := &mockGenerator{
		generate: func(_ string) (string, error) { return "Temples in the morning.", nil },
	}
	svc := service.NewItineraryService(s, gen)

	items, err := svc.Generate(context.Background(), trip.ID, "")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Day 1 (April 1, 2025)", items[0].Title)
	assert.Equal(t, "Temples in the morning.", items[0].Description)
	require.NotNil(t, items[0].Date)
	assert.Equal(t, day(2025, 4, 1), *items[0].Date)

	// The item must also be on the stored trip.
	stored, err := s.Get(context.Background(), trip.ID)
	require.NoError(t, err)
	require.Len(t, stored.Planner, 1)
	assert.Equal(t, items[0].Title, stored.Planner[0].Title)
}

func TestItineraryService_Generate_ThreeDays(t *testing.T) {
	s, trip := seedTrip(t, day(2025, 4, 1), day(2025, 4, 3))
	gen := &mockGenerator{
		generate: func(prompt string) (string, error) {
			return "Plan for: " + prompt, nil
		},
	}
	svc := service.NewItineraryService(s, gen)

	items, err := svc.Generate(context.Background(), trip.ID, "street food")

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Day 1 (April 1, 2025)", items[0].Title)
	assert.Equal(t, "Day 2 (April 2, 2025)", items[1].Title)
	assert.Equal(t, "Day 3 (April 3, 2025)", items[2].Title)
	for _, item := range items {
		assert.NotEmpty(t, item.Description)
	}

	// One generation request per day, each carrying country and preference.
	require.Len(t, gen.prompts, 3)
	assert.Contains(t, gen.prompts[0], "Japan")
	assert.Contains(t, gen.prompts[0], "street food")
	assert.Contains(t, gen.prompts[2], "day 3")

	stored, err := s.Get(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Planner, 3)
}

func TestItineraryService_Generate_InvertedRangeYieldsNothing(t *testing.T) {
	s, trip := seedTrip(t, day(2025, 4, 3), day(2025, 4, 1))
	gen := &mockGenerator{
		generate: func(_ string) (string, error) {
			return "", errors.New("must not be called")
		},
	}
	svc := service.NewItineraryService(s, gen)

	items, err := svc.Generate(context.Background(), trip.ID, "")

	// Zero days, zero generation requests, no error.
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, gen.prompts)
}

func TestItineraryService_Generate_PreservesExistingItems(t *testing.T) {
	s, trip := seedTrip(t, day(2025, 4, 1), day(2025, 4, 2))

	// A manually added item must survive the generation run.
	tripSvc := service.NewTripService(s)
	_, err := tripSvc.AddPlannerItem(context.Background(), trip.ID, domain.PlannerItem{Title: "Manual entry"})
	require.NoError(t, err)

	gen := &mockGenerator{
		generate: func(_ string) (string, error) { return "generated", nil },
	}
	svc := service.NewItineraryService(s, gen)

	items, err := svc.Generate(context.Background(), trip.ID, "")

	require.NoError(t, err)
	assert.Len(t, items, 2)

	stored, err := s.Get(context.Background(), trip.ID)
	require.NoError(t, err)
	require.Len(t, stored.Planner, 3)
	assert.Equal(t, "Manual entry", stored.Planner[0].Title)
}

func TestItineraryService_Generate_AbortsOnFirstFailure(t *testing.T) {
	s, trip := seedTrip(t, day(2025, 4, 1), day(2025, 4, 3))

	genErr := errors.New("model unavailable")
	calls := 0
	gen := &mockGenerator{
		generate: func(_ string) (string, error) {
			calls++
			if calls == 2 {
				return "", genErr
			}
			return "fine", nil
		},
	}
	svc := service.NewItineraryService(s, gen)

	items, err := svc.Generate(context.Background(), trip.ID, "")

	require.ErrorIs(t, err, genErr)
	// The error names the day that failed.
	assert.Contains(t, err.Error(), "day 2")
	// Day 1 was appended before the failure and stays on the trip.
	require.Len(t, items, 1)
	assert.Equal(t, "Day 1 (April 1, 2025)", items[0].Title)

	stored, err := s.Get(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Planner, 1)
	// No request for day 3 after day 2 failed.
	assert.Equal(t, 2, calls)
}

func TestItineraryService_Generate_TripNotFound(t *testing.T) {
	s := store.NewMemoryStore()
	gen := &mockGenerator{
		generate: func(_ string) (string, error) { return "", errors.New("must not be called") },
	}
	svc := service.NewItineraryService(s, gen)

	_, err := svc.Generate(context.Background(), uuid.New(), "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, gen.prompts)
}

func TestItineraryService_Generate_CancelledBetweenDays(t *testing.T) {
	s, trip := seedTrip(t, day(2025, 4, 1), day(2025, 4, 5))

	ctx, cancel := context.WithCancel(context.Background())
	gen := &mockGenerator{
		generate: func(_ string) (string, error) {
			cancel() // cancel after the first completion arrives
			return "first day", nil
		},
	}
	svc := service.NewItineraryService(s, gen)

	items, err := svc.Generate(ctx, trip.ID, "")

	require.ErrorIs(t, err, context.Canceled)
	// Day 1 completed before cancellation; no further days run.
	assert.Len(t, items, 1)
	assert.Len(t, gen.prompts, 1)
}

func TestItineraryService_Generate_TimeOfDayIgnored(t *testing.T) {
	// Trips store timestamps, but only the calendar date matters for the
	// day count: a late start and an early end on consecutive days is 2 days.
	start := time.Date(2025, 4, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2025, 4, 2, 0, 15, 0, 0, time.UTC)
	s, trip := seedTrip(t, start, end)

	gen := &mockGenerator{
		generate: func(_ string) (string, error) { return "x", nil },
	}
	svc := service.NewItineraryService(s, gen)

	items, err := svc.Generate(context.Background(), trip.ID, "")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, fmt.Sprintf("Day 1 (%s)", "April 1, 2025"), items[0].Title)
	assert.Equal(t, fmt.Sprintf("Day 2 (%s)", "April 2, 2025"), items[1].Title)
}
