// Package accounts provides user registration, credential verification, and
// token-based session endpoints for the /api/auth handler group.
package accounts

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. The password hash never leaves the package
// in serialized form.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	IsStaff      bool       `json:"is_staff"`
	IsSuperuser  bool       `json:"is_superuser"`
	DateJoined   time.Time  `json:"date_joined"`
	LastLogin    *time.Time `json:"last_login"`
}

// Staff reports whether the user bypasses facility permission checks.
func (u *User) Staff() bool {
	return u.IsStaff || u.IsSuperuser
}

// RegisterCommand contains the data required to create an account.
type RegisterCommand struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginCommand carries credentials for POST /login.
type LoginCommand struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshCommand carries a refresh token for /refresh and /logout.
type RefreshCommand struct {
	Refresh string `json:"refresh"`
}

// UpdateCommand changes the caller's profile.
type UpdateCommand struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PasswordCommand changes the caller's password.
type PasswordCommand struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// FlagsCommand toggles account flags from the admin handler group. Nil
// fields are left unchanged.
type FlagsCommand struct {
	IsActive *bool `json:"is_active,omitempty"`
	IsStaff  *bool `json:"is_staff,omitempty"`
}

// TokenPair is returned by a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user"`
}

// AccessResponse is returned by a successful refresh.
type AccessResponse struct {
	Access string `json:"access"`
}
