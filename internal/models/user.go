package models

// Role enum, matching the backend's role strings.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is one the backend recognises.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Profile is the account projection returned by the backend dashboard
// endpoint. The backend owns the record; the portal never stores it.
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

// UserRecord is a row in the admin panel's account listing. Protected is
// computed by the portal: the root account must not be deletable.
type UserRecord struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	Protected bool   `json:"protected,omitempty"`
}

// UserUpdate carries the editable fields of an account.
type UserUpdate struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     Role   `json:"role" validate:"required,oneof=USER ADMIN"`
	Avatar   string `json:"avatar,omitempty"`
}
