package domain

// Mutation functions for the two ordered sequences on a Trip. They are pure:
// the input slice is never modified, and the returned slice is always a fresh
// allocation (or the original, for no-op deletes). The caller persists the
// returned value whole through the store.

// AddNote returns notes with text appended at the end.
// Callers are responsible for rejecting empty text before invocation.
func AddNote(notes []string, text string) []string {
	out := make([]string, 0, len(notes)+1)
	out = append(out, notes...)
	return append(out, text)
}

// DeleteNote returns notes with the element at index removed; subsequent
// elements shift down by one position. An out-of-range index is a no-op and
// returns the original slice unchanged.
func DeleteNote(notes []string, index int) []string {
	if index < 0 || index >= len(notes) {
		return notes
	}
	out := make([]string, 0, len(notes)-1)
	out = append(out, notes[:index]...)
	return append(out, notes[index+1:]...)
}

// AddPlannerItem returns items with item appended at the end.
func AddPlannerItem(items []PlannerItem, item PlannerItem) []PlannerItem {
	out := make([]PlannerItem, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

// DeletePlannerItem returns items with the element at index removed.
// Same positional contract as DeleteNote: out-of-range is a no-op.
func DeletePlannerItem(items []PlannerItem, index int) []PlannerItem {
	if index < 0 || index >= len(items) {
		return items
	}
	out := make([]PlannerItem, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...)
}

// ApplyUpdate returns a copy of trip with every non-nil field of u
// overwritten. Fields not present in u are left identical to trip's.
// No schema validation is performed — an empty country is accepted.
func ApplyUpdate(trip Trip, u TripUpdate) Trip {
	if u.Country != nil {
		trip.Country = *u.Country
	}
	if u.StartDate != nil {
		trip.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		trip.EndDate = *u.EndDate
	}
	if u.Notes != nil {
		trip.Notes = append([]string(nil), (*u.Notes)...)
	}
	if u.Planner != nil {
		trip.Planner = append([]PlannerItem(nil), (*u.Planner)...)
	}
	return trip
}
