package api

import "time"

// Source feed names, used in endpoint paths and diagnostic reports.
const (
	SourceUsers        = "users"
	SourceVehicles     = "vehicles"
	SourceReservations = "reservations"
)

// ActivityRecord is one entry from a source feed. Details is free-form
// and shaped by the feed: user records carry user_id/user_email and
// optionally user_name/user_role, vehicle records carry vehicle_id,
// name and status, reservation records carry reservation_id, status
// and optionally total_price. IDs are unique within a feed only;
// cross-feed collisions are tolerated and never deduplicated.
type ActivityRecord struct {
	ID           string         `json:"id"`
	Timestamp    string         `json:"timestamp"`
	ActivityType string         `json:"activity_type"`
	Details      map[string]any `json:"details,omitempty"`
}

// Time parses the record's ISO-8601 timestamp.
// Mangled timestamps sort as the zero time.
func (r ActivityRecord) Time() time.Time {
	if t, err := time.Parse(time.RFC3339, r.Timestamp); err == nil {
		return t
	}
	return time.Time{}
}

// ActivityPage is the {data, total} envelope every feed endpoint
// returns. Total is the feed's reported count, independent of how
// many records the page actually holds.
type ActivityPage struct {
	Data  []ActivityRecord `json:"data"`
	Total int              `json:"total"`
}
