package handler

import (
	"net/http"

	"github.com/Euphoric-Coder/Travel-Insights/internal/countries"
)

// ListCountries handles GET /api/countries.
// On upstream failure the error is logged and an empty list is returned with
// 200 — the destination selector simply stays empty. No retry, no caching.
func (s *Server) ListCountries(w http.ResponseWriter, r *http.Request) {
	options, err := s.countries.List(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "country directory fetch failed", "error", err)
		respondJSON(w, http.StatusOK, []countries.Option{})
		return
	}
	if options == nil {
		options = []countries.Option{}
	}
	respondJSON(w, http.StatusOK, options)
}
