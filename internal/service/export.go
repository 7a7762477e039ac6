package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
	"github.com/Euphoric-Coder/Travel-Insights/internal/store"
)

// exportDateLayout formats trip and item dates in export rows.
const exportDateLayout = "2006-01-02"

// ExportService assembles a full flat export of all trips and their planner
// items.
type ExportService struct {
	store store.TripStore
}

// NewExportService constructs an ExportService backed by the provided store.
func NewExportService(s store.TripStore) *ExportService {
	return &ExportService{store: s}
}

// Export returns one ExportRow per planner item across all trips.
// Trips with no planner items contribute one row with empty item fields.
// Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	trips, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(trips))
	for _, trip := range trips {
		base := domain.ExportRow{
			TripID:        trip.ID.String(),
			Country:       trip.Country,
			TripStartDate: trip.StartDate.Format(exportDateLayout),
			TripEndDate:   trip.EndDate.Format(exportDateLayout),
			Notes:         trip.Notes,
		}
		if base.Notes == nil {
			base.Notes = []string{}
		}

		if len(trip.Planner) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, item := range trip.Planner {
			row := base
			row.ItemTitle = item.Title
			row.ItemDescription = item.Description
			row.ItemDate = formatOptionalDate(item.Date)
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// formatOptionalDate returns the date portion of t, or "" if t is nil.
func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportDateLayout)
}
