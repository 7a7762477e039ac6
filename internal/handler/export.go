// Export endpoint: GET /api/export returns all trips and their planner items
// as a flat table. Supports content negotiation via ?format=csv (CSV) or
// default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "country", "trip_start_date", "trip_end_date",
	"item_title", "item_description", "item_date", "notes",
}

// GetExport handles GET /api/export.
// It returns one row per planner item, with trip fields repeated; trips with
// no items yield one row with empty item fields. Use ?format=csv for CSV.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.exporter.Export(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSVExport(w, rows)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// writeCSVExport encodes export rows as CSV. Notes within a row are
// pipe-separated ("|") to keep each trip on a single CSV line.
func writeCSVExport(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// Write errors are impossible here: the underlying writer is a bytes.Buffer.
	cw.Write(csvHeaders)
	for _, row := range rows {
		cw.Write([]string{
			row.TripID,
			row.Country,
			row.TripStartDate,
			row.TripEndDate,
			row.ItemTitle,
			row.ItemDescription,
			row.ItemDate,
			strings.Join(row.Notes, "|"),
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
