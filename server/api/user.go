package api

// User roles on the rental platform.
const (
	RoleOwner = "owner"
	RoleRider = "rider"
	RoleAdmin = "admin"
)

// User account statuses.
const (
	UserActive    = "active"
	UserSuspended = "suspended"
)

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}

type UserPage struct {
	Data  []User `json:"data"`
	Total int    `json:"total"`
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// UpdateUserRequest carries only the fields being changed;
// empty fields are omitted from the request body.
type UpdateUserRequest struct {
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}
