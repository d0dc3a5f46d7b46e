package model

import "time"

// Role is the coarse authorization tag attached to a user and embedded in
// its session token.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an application user record as stored in the `users`
// table. The password hash never leaves the service layer; handlers define
// their own response shapes.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email (unique, lower-cased)
	PasswordHash string    // users.password_hash (bcrypt)
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	Role         Role      // users.role
	CreatedAt    time.Time // users.created_at
}
