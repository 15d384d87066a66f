package models

import "time"

// UserRole represents the available roles for the access-control gate.
type UserRole string

const (
	RoleStudent      UserRole = "student"
	RoleCollegeAdmin UserRole = "college_admin"
	RoleSuperAdmin   UserRole = "super_admin"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleCollegeAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User represents an account stored in the users table. The password hash is
// write-only: it never serialises into API responses.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	College      string    `db:"college" json:"college"`
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
