// Package handler implements the HTTP handlers for the travel planner API.
// All handlers are methods on Server. Methods are split into concern-specific
// files (trip.go, note.go, watch.go, ...) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Euphoric-Coder/Travel-Insights/internal/countries"
	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
	"github.com/Euphoric-Coder/Travel-Insights/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, id uuid.UUID, u domain.TripUpdate) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddNote(ctx context.Context, id uuid.UUID, text string) (domain.Trip, error)
	DeleteNote(ctx context.Context, id uuid.UUID, index int) (domain.Trip, error)
	AddPlannerItem(ctx context.Context, id uuid.UUID, item domain.PlannerItem) (domain.Trip, error)
	DeletePlannerItem(ctx context.Context, id uuid.UUID, index int) (domain.Trip, error)
}

// ItineraryGenerator runs the day-by-day generation workflow for a trip.
type ItineraryGenerator interface {
	Generate(ctx context.Context, tripID uuid.UUID, preference string) ([]domain.PlannerItem, error)
}

// Asker answers one-off free-text questions.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// CountryLister fetches the country directory options.
type CountryLister interface {
	List(ctx context.Context) ([]countries.Option, error)
}

// Exporter assembles the flat trip export.
type Exporter interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// TripWatcher is the store subscription consumed by the watch endpoint.
type TripWatcher interface {
	Watch(ctx context.Context) (<-chan []domain.Trip, error)
}

// Server holds the dependencies for all API endpoints.
type Server struct {
	trips     TripServicer
	itinerary ItineraryGenerator
	asker     Asker
	countries CountryLister
	exporter  Exporter
	watcher   TripWatcher
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default.
func NewServer(
	trips TripServicer,
	itinerary ItineraryGenerator,
	asker Asker,
	countryLister CountryLister,
	exporter Exporter,
	watcher TripWatcher,
	log *slog.Logger,
) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		trips:     trips,
		itinerary: itinerary,
		asker:     asker,
		countries: countryLister,
		exporter:  exporter,
		watcher:   watcher,
		log:       log,
	}
}

// Routes returns the full route tree for the API.
// Global middleware (request id, logging, CORS, body limits) is applied by
// the caller; only routing lives here.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Get("/watch", s.WatchTrips)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Patch("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)

				r.Post("/notes", s.AddNote)
				r.Delete("/notes/{index}", s.DeleteNote)

				r.Post("/planner", s.AddPlannerItem)
				r.Delete("/planner/{index}", s.DeletePlannerItem)

				r.Post("/itinerary", s.GenerateItinerary)
			})
		})

		r.Post("/ask", s.Ask)
		r.Get("/countries", s.ListCountries)
		r.Get("/export", s.GetExport)
	})

	return r
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetOpenAPI serves the embedded API specification.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
