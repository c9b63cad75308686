package api

// SystemHealth is the backend's health document. Services maps a
// component name (database, cache, payments) to its reported state.
type SystemHealth struct {
	Status        string            `json:"status"`
	Version       string            `json:"version,omitempty"`
	UptimeSeconds float64           `json:"uptime_seconds,omitempty"`
	Services      map[string]string `json:"services,omitempty"`
}

// HealthUnreachable is substituted when the backend cannot be reached.
const HealthUnreachable = "unreachable"

// DashboardStats holds the aggregate business numbers shown on the
// admin landing page.
type DashboardStats struct {
	TotalOwners        int     `json:"total_owners"`
	TotalRiders        int     `json:"total_riders"`
	TotalVehicles      int     `json:"total_vehicles"`
	TotalReservations  int     `json:"total_reservations"`
	ActiveReservations int     `json:"active_reservations"`
	PendingBetaTesters int     `json:"pending_beta_testers"`
	Revenue            float64 `json:"revenue"`
}
