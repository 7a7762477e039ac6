package handler

import (
	"errors"
	"net/http"

	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
)

// generateItineraryRequest is the body for POST /api/trips/{id}/itinerary.
type generateItineraryRequest struct {
	Preference string `json:"preference"`
}

// generateItineraryResponse reports the planner items appended by one
// generation run, in day order.
type generateItineraryResponse struct {
	Items []domain.PlannerItem `json:"items"`
}

// GenerateItinerary handles POST /api/trips/{id}/itinerary.
// One planner item is generated and appended per calendar day of the trip's
// inclusive date range; an inverted range yields an empty item list and 200.
//
// If generation fails partway, items appended before the failure stay on the
// trip and the response is 502 — the client can re-read the trip to see what
// landed.
func (s *Server) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	var req generateItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	items, err := s.itinerary.Generate(r.Context(), id, req.Preference)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "trip not found")
			return
		}
		s.log.ErrorContext(r.Context(), "itinerary generation failed",
			"trip_id", id, "items_appended", len(items), "error", err)
		respondError(w, http.StatusBadGateway, "generation_failed", "itinerary generation failed")
		return
	}

	respondJSON(w, http.StatusOK, generateItineraryResponse{Items: items})
}

// askRequest is the body for POST /api/ask.
type askRequest struct {
	Question string `json:"question"`
}

// askResponse carries the model's free-text answer.
type askResponse struct {
	Answer string `json:"answer"`
}

// Ask handles POST /api/ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	answer, err := s.asker.Ask(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			respondError(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
			return
		}
		s.log.ErrorContext(r.Context(), "ask failed", "error", err)
		respondError(w, http.StatusBadGateway, "generation_failed", "question could not be answered")
		return
	}

	respondJSON(w, http.StatusOK, askResponse{Answer: answer})
}
