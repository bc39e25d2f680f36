package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCompetitionRegistered EventType = "competition_registered"
	EventAnnouncementPublished EventType = "announcement_published"
	EventAnnouncementDeleted   EventType = "announcement_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	CompetitionID string    `json:"competition_id"`
	ActorID       string    `json:"actor_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Payload       any       `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, competitionID, actorID string, payload any) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		CompetitionID: competitionID,
		ActorID:       actorID,
		Timestamp:     time.Now().UTC(),
		Payload:       payload,
	}
}

// CompetitionRegisteredPayload payload.
type CompetitionRegisteredPayload struct {
	RegistrationID string `json:"registration_id"`
	TeamID         string `json:"team_id"`
}

// AnnouncementPayload payload.
type AnnouncementPayload struct {
	AnnouncementID string `json:"announcement_id"`
	Title          string `json:"title,omitempty"`
}
