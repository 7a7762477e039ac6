package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
)

// addNoteRequest is the body for POST /api/trips/{id}/notes.
type addNoteRequest struct {
	Text string `json:"text"`
}

// AddNote handles POST /api/trips/{id}/notes.
// Returns the updated trip with the note appended.
func (s *Server) AddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	var req addNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	trip, err := s.trips.AddNote(r.Context(), id, req.Text)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// DeleteNote handles DELETE /api/trips/{id}/notes/{index}.
// Deletion is positional; an out-of-range index leaves the trip unchanged
// and still returns 200 with the current document.
func (s *Server) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	index, ok := sequenceIndex(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.DeleteNote(r.Context(), id, index)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// AddPlannerItem handles POST /api/trips/{id}/planner.
func (s *Server) AddPlannerItem(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	var item domain.PlannerItem
	if err := decodeJSON(r, &item); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	trip, err := s.trips.AddPlannerItem(r.Context(), id, item)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// DeletePlannerItem handles DELETE /api/trips/{id}/planner/{index}.
// Same positional contract as DeleteNote.
func (s *Server) DeletePlannerItem(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	index, ok := sequenceIndex(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.DeletePlannerItem(r.Context(), id, index)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// sequenceIndex parses the {index} path parameter. On failure it writes a
// 400 response and returns ok=false.
func sequenceIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid index")
		return 0, false
	}
	return index, true
}
