package domain

import "time"

// MemberRole is a user's role inside a team.
type MemberRole string

const (
	MemberRoleCaptain MemberRole = "captain"
	MemberRoleMember  MemberRole = "member"
)

// MemberStatus is the membership flag stored with a team member.
type MemberStatus int16

const (
	MemberStatusPending  MemberStatus = 0
	MemberStatusActive   MemberStatus = 1
	MemberStatusInactive MemberStatus = 2
)

// Team is a named group of users.
type Team struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// TeamMember relates a user to a team.
type TeamMember struct {
	ID       string
	TeamID   string
	UserID   string
	Role     MemberRole
	Status   MemberStatus
	JoinedAt time.Time
}
