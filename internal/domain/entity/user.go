package entity

import "time"

// Valid roles for User. Closed set, checked by the RBAC middleware.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleManager || s == RoleCashier
}

// User is a system account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID                  string
	Username            string
	FullName            string
	Email               string
	PhoneNumber         string
	PasswordHash        string
	Role                string // admin, manager, cashier
	IsActive            bool
	FailedLoginAttempts int
	LockedUntil         *time.Time
	LastLoginAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsLocked reports whether the account is currently locked out.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}
