package model

import "time"

// Role is a user's access level.
type Role string

const (
	RoleAdmin Role = "administrador"
	RoleUser  Role = "usuario_padrao"
)

// User is an account that can log in. Standard users are bound to one obra.
type User struct {
	ID                 string     `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"`
	Role               Role       `json:"role"`
	ObraID             string     `json:"obra_id,omitempty"`
	Active             bool       `json:"active"`
	MustChangePassword bool       `json:"must_change_password"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	PasswordChangedAt       *time.Time `json:"password_changed_at,omitempty"`
	PasswordChangedByAdmin  bool       `json:"password_changed_by_admin"`
	LastAdminPasswordChange *time.Time `json:"last_admin_password_change,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}
