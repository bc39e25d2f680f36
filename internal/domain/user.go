package domain

import (
	"fmt"
	"time"
)

// Role is the account-level role of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole accepts only the known roles.
func ParseRole(raw string) (Role, error) {
	switch r := Role(raw); r {
	case RoleAdmin, RoleUser:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// User is a registered account. Name, grade, major and email form its public profile.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Grade        string
	Major        string
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
