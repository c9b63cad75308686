package api

type Vehicle struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	OwnerID string `json:"owner_id,omitempty"`
	Model   string `json:"model,omitempty"`
	Plate   string `json:"plate,omitempty"`
}

type VehiclePage struct {
	Data  []Vehicle `json:"data"`
	Total int       `json:"total"`
}

type Reservation struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	RiderID    string  `json:"rider_id,omitempty"`
	VehicleID  string  `json:"vehicle_id,omitempty"`
	TotalPrice float64 `json:"total_price,omitempty"`
	StartsAt   string  `json:"starts_at,omitempty"`
	EndsAt     string  `json:"ends_at,omitempty"`
}

type ReservationPage struct {
	Data  []Reservation `json:"data"`
	Total int           `json:"total"`
}
