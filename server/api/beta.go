package api

// Beta tester application statuses.
const (
	BetaPending  = "pending"
	BetaApproved = "approved"
	BetaRejected = "rejected"
)

type BetaTester struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
	AppliedAt string `json:"applied_at,omitempty"`
}

type BetaPage struct {
	Data  []BetaTester `json:"data"`
	Total int          `json:"total"`
}
