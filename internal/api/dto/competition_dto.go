package dto

import (
	"time"

	"github.com/spec-kit/competition-service/internal/domain"
)

// CreateCompetitionRequest payload.
type CreateCompetitionRequest struct {
	Title                string     `json:"title" validate:"required,max=200"`
	Description          string     `json:"description" validate:"max=10000"`
	Location             string     `json:"location" validate:"max=200"`
	StartTime            time.Time  `json:"start_time" validate:"required"`
	EndTime              time.Time  `json:"end_time" validate:"required"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
}

// UpdateCompetitionRequest payload; omitted fields are unchanged.
type UpdateCompetitionRequest struct {
	Title                *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description          *string    `json:"description" validate:"omitempty,max=10000"`
	Location             *string    `json:"location" validate:"omitempty,max=200"`
	StartTime            *time.Time `json:"start_time"`
	EndTime              *time.Time `json:"end_time"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
}

// CreateAnnouncementRequest payload.
type CreateAnnouncementRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// RegisterTeamRequest payload.
type RegisterTeamRequest struct {
	TeamID string `json:"team_id" validate:"required,uuid"`
}

// CompetitionResponse describes a competition.
type CompetitionResponse struct {
	ID                   string                 `json:"id"`
	Title                string                 `json:"title"`
	Description          string                 `json:"description"`
	Location             string                 `json:"location"`
	StartTime            time.Time              `json:"start_time"`
	EndTime              time.Time              `json:"end_time"`
	RegistrationDeadline *time.Time             `json:"registration_deadline"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
	Announcements        []AnnouncementResponse `json:"announcements,omitempty"`
}

// AnnouncementResponse describes an announcement.
type AnnouncementResponse struct {
	ID            string    `json:"id"`
	CompetitionID string    `json:"competition_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}

// RegistrationResponse describes a registration.
type RegistrationResponse struct {
	ID            string    `json:"id"`
	CompetitionID string    `json:"competition_id"`
	TeamID        string    `json:"team_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewCompetitionResponse maps a domain competition.
func NewCompetitionResponse(c *domain.Competition) CompetitionResponse {
	resp := CompetitionResponse{
		ID:                   c.ID,
		Title:                c.Title,
		Description:          c.Description,
		Location:             c.Location,
		StartTime:            c.StartTime,
		EndTime:              c.EndTime,
		RegistrationDeadline: c.RegistrationDeadline,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
	for i := range c.Announcements {
		resp.Announcements = append(resp.Announcements, NewAnnouncementResponse(&c.Announcements[i]))
	}
	return resp
}

// NewAnnouncementResponse maps a domain announcement.
func NewAnnouncementResponse(a *domain.CompetitionAnnouncement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:            a.ID,
		CompetitionID: a.CompetitionID,
		Title:         a.Title,
		Content:       a.Content,
		CreatedAt:     a.CreatedAt,
	}
}

// NewRegistrationResponse maps a domain registration.
func NewRegistrationResponse(r *domain.CompetitionRegistration) RegistrationResponse {
	return RegistrationResponse{
		ID:            r.ID,
		CompetitionID: r.CompetitionID,
		TeamID:        r.TeamID,
		CreatedAt:     r.CreatedAt,
	}
}
