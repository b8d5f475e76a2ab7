package domain

import "time"

// Role enumerates platform account roles visible to the console.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleStationStaff Role = "Station Staff"
	RoleCustomer     Role = "Customer"
)

// UserStatus represents lifecycle states for a platform account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
	UserStatusBanned   UserStatus = "BANNED"
)

// User is the console-facing shape of a platform account. The backend owns
// the record; the gateway only displays and forwards mutations.
type User struct {
	ID        string     `json:"id"`
	FullName  string     `json:"fullname"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Role      Role       `json:"role"`
	Status    UserStatus `json:"status"`
	RiskScore *int       `json:"riskScore,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CreatedStaff is the backend's response to a staff creation: the account
// plus a one-time temporary password the operator hands to the new staff.
type CreatedStaff struct {
	User              User   `json:"user"`
	TemporaryPassword string `json:"temporaryPassword"`
}
