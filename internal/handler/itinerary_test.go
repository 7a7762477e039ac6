package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
	"github.com/Euphoric-Coder/Travel-Insights/internal/handler"
)

// mockItineraryGenerator is a test double for handler.ItineraryGenerator.
type mockItineraryGenerator struct {
	generate func(ctx context.Context, tripID uuid.UUID, preference string) ([]domain.PlannerItem, error)
}

func (m *mockItineraryGenerator) Generate(ctx context.Context, tripID uuid.UUID, preference string) ([]domain.PlannerItem, error) {
	return m.generate(ctx, tripID, preference)
}

var _ handler.ItineraryGenerator = (*mockItineraryGenerator)(nil)

// mockAsker is a test double for handler.Asker.
type mockAsker struct {
	ask func(ctx context.Context, question string) (string, error)
}

func (m *mockAsker) Ask(ctx context.Context, question string) (string, error) {
	return m.ask(ctx, question)
}

var _ handler.Asker = (*mockAsker)(nil)

// ---- POST /api/trips/{id}/itinerary ----------------------------------------

func TestGenerateItinerary_200(t *testing.T) {
	tripID := uuid.New()
	day1 := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	items := []domain.PlannerItem{
		{Title: "Day 1 (April 1, 2025)", Description: "Temples", Date: &day1},
	}

	gen := &mockItineraryGenerator{
		generate: func(_ context.Context, id uuid.UUID, preference string) ([]domain.PlannerItem, error) {
			assert.Equal(t, tripID, id)
			assert.Equal(t, "street food", preference)
			return items, nil
		},
	}

	body := jsonBody(t, map[string]any{"preference": "street food"})
	rec := doRequest(newHTTPHandler(serverDeps{itinerary: gen}),
		http.MethodPost, "/api/trips/"+tripID.String()+"/itinerary", body)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []domain.PlannerItem `json:"items"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Day 1 (April 1, 2025)", resp.Items[0].Title)
}

func TestGenerateItinerary_200_EmptyRange(t *testing.T) {
	gen := &mockItineraryGenerator{
		generate: func(_ context.Context, _ uuid.UUID, _ string) ([]domain.PlannerItem, error) {
			return []domain.PlannerItem{}, nil
		},
	}

	body := jsonBody(t, map[string]any{})
	rec := doRequest(newHTTPHandler(serverDeps{itinerary: gen}),
		http.MethodPost, "/api/trips/"+uuid.NewString()+"/itinerary", body)

	// An inverted date range is not an error: 200 with zero items.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestGenerateItinerary_404(t *testing.T) {
	gen := &mockItineraryGenerator{
		generate: func(_ context.Context, _ uuid.UUID, _ string) ([]domain.PlannerItem, error) {
			return nil, domain.ErrNotFound
		},
	}

	body := jsonBody(t, map[string]any{})
	rec := doRequest(newHTTPHandler(serverDeps{itinerary: gen}),
		http.MethodPost, "/api/trips/"+uuid.NewString()+"/itinerary", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateItinerary_502_MidRunFailure(t *testing.T) {
	// One day landed before the model fell over. The handler reports failure;
	// the appended item stays on the trip for the client to re-read.
	gen := &mockItineraryGenerator{
		generate: func(_ context.Context, _ uuid.UUID, _ string) ([]domain.PlannerItem, error) {
			return []domain.PlannerItem{{Title: "Day 1"}}, fmt.Errorf("day 2: %w", errors.New("model unavailable"))
		},
	}

	body := jsonBody(t, map[string]any{})
	rec := doRequest(newHTTPHandler(serverDeps{itinerary: gen}),
		http.MethodPost, "/api/trips/"+uuid.NewString()+"/itinerary", body)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "generation_failed", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "model unavailable")
}

// ---- POST /api/ask ---------------------------------------------------------

func TestAsk_200(t *testing.T) {
	asker := &mockAsker{
		ask: func(_ context.Context, question string) (string, error) {
			assert.Equal(t, "When should I visit Japan?", question)
			return "Spring.", nil
		},
	}

	body := jsonBody(t, map[string]any{"question": "When should I visit Japan?"})
	rec := doRequest(newHTTPHandler(serverDeps{asker: asker}), http.MethodPost, "/api/ask", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answer":"Spring."}`, rec.Body.String())
}

func TestAsk_422_EmptyQuestion(t *testing.T) {
	asker := &mockAsker{
		ask: func(_ context.Context, _ string) (string, error) {
			return "", fmt.Errorf("%w: question is required", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{"question": ""})
	rec := doRequest(newHTTPHandler(serverDeps{asker: asker}), http.MethodPost, "/api/ask", body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAsk_502_GeneratorError(t *testing.T) {
	asker := &mockAsker{
		ask: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("model unavailable")
		},
	}

	body := jsonBody(t, map[string]any{"question": "Anything good in Lisbon?"})
	rec := doRequest(newHTTPHandler(serverDeps{asker: asker}), http.MethodPost, "/api/ask", body)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
