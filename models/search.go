package models

// Search modes. DateExact restricts results to one requested date;
// EarliestFirst ranks doctors by their soonest open date.
const (
	SearchModeDateExact     = "dateExact"
	SearchModeEarliestFirst = "earliestFirst"
)

// SearchResult is the structured answer to a doctor search: which mode
// actually produced the results, and the ranked availability list.
type SearchResult struct {
	Mode    string               `json:"mode"`
	Doctors []DoctorAvailability `json:"doctors"`
}
