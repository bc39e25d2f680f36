package domain

import "time"

// Competition is an event teams can register for.
type Competition struct {
	ID                   string
	Title                string
	Description          string
	Location             string
	StartTime            time.Time
	EndTime              time.Time
	RegistrationDeadline *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Announcements        []CompetitionAnnouncement
}

// CompetitionAnnouncement is a notice posted under one competition.
type CompetitionAnnouncement struct {
	ID            string
	CompetitionID string
	Title         string
	Content       string
	CreatedAt     time.Time
}

// CompetitionRegistration records that a team competes in a competition.
type CompetitionRegistration struct {
	ID            string
	CompetitionID string
	TeamID        string
	CreatedAt     time.Time
}
