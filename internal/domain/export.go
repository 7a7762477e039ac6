package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per planner item, with trip fields
// repeated for every item on that trip. Trips with no planner items yield one
// row with empty item fields.
//
// Notes holds the trip's notes in order; callers that need a joined string
// (e.g. CSV) should join with "|".
type ExportRow struct {
	// Trip fields — repeated for every planner item on the trip.
	TripID        string   `json:"tripId"`
	Country       string   `json:"country"`
	TripStartDate string   `json:"tripStartDate"` // "2006-01-02" formatted date
	TripEndDate   string   `json:"tripEndDate"`
	Notes         []string `json:"notes"`

	// Planner item fields — zero values when the trip has no items.
	ItemTitle       string `json:"itemTitle,omitempty"`
	ItemDescription string `json:"itemDescription,omitempty"`
	ItemDate        string `json:"itemDate,omitempty"` // empty string when the item has no date
}
