package domain

import "time"

// UserRole gates privileged operations. Only admins may delete tickets.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleAgent UserRole = "agent"
)

// User is a credential-store identity allowed to obtain sessions.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         UserRole
	IsActive     bool
	CreatedAt    time.Time
}
