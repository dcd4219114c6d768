package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the access level of a user.
type Role string

const (
	RoleAdministrator Role = "ADMINISTRATOR"
	RoleAdvisor       Role = "ADVISOR"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrMissingUserFields = errors.New("name, email and password are required")
var ErrLastAdministrator = errors.New("cannot remove the last administrator")
var ErrCaptchaInvalid = errors.New("invalid captcha")

// NormalizeRole maps a role literal to its canonical value. Legacy spellings
// from earlier snapshots of the system (Spanish, mixed case, "ADMIN") are
// accepted at input boundaries and normalized on the way in.
func NormalizeRole(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ADMINISTRATOR", "ADMINISTRADOR", "ADMIN":
		return RoleAdministrator, true
	case "ADVISOR", "ASESOR":
		return RoleAdvisor, true
	}
	return "", false
}

// User models an authenticated actor in the system.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRef is the public projection of a user attached to products and to the
// request context. It never carries the password hash.
type UserRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// IsAdministrator reports whether the referenced user holds the
// ADMINISTRATOR role.
func (r UserRef) IsAdministrator() bool {
	return r.Role == RoleAdministrator
}
