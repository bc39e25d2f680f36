package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/competition-service/internal/auth"
	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/events"
	"github.com/spec-kit/competition-service/internal/repository"
	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

// CompetitionService manages competitions and their announcements.
type CompetitionService struct {
	competitions  repository.CompetitionRepository
	announcements repository.AnnouncementRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// CompetitionDependencies bundles collaborators for the competition service.
type CompetitionDependencies struct {
	CompetitionRepo  repository.CompetitionRepository
	AnnouncementRepo repository.AnnouncementRepository
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// CompetitionInput describes the fields of a new competition.
type CompetitionInput struct {
	Title                string
	Description          string
	Location             string
	StartTime            time.Time
	EndTime              time.Time
	RegistrationDeadline *time.Time
}

// CompetitionPatch carries optional updates; nil fields are left untouched.
type CompetitionPatch struct {
	Title                *string
	Description          *string
	Location             *string
	StartTime            *time.Time
	EndTime              *time.Time
	RegistrationDeadline *time.Time
}

// AnnouncementInput describes a new announcement.
type AnnouncementInput struct {
	Title   string
	Content string
}

// NewCompetitionService constructs the service.
func NewCompetitionService(deps CompetitionDependencies) *CompetitionService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompetitionService{
		competitions:  deps.CompetitionRepo,
		announcements: deps.AnnouncementRepo,
		dispatcher:    deps.Dispatcher,
		logger:        logger.Named("competition"),
	}
}

func requireCapability(actor *domain.User, capability auth.Capability) error {
	if actor == nil || !auth.Allows(actor.Role, capability) {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}

// Create persists a new competition.
func (s *CompetitionService) Create(ctx context.Context, actor *domain.User, input CompetitionInput) (*domain.Competition, error) {
	if err := requireCapability(actor, auth.CapManageCompetitions); err != nil {
		return nil, err
	}
	if !input.EndTime.IsZero() && input.EndTime.Before(input.StartTime) {
		return nil, apperrors.NewValidationError("end_time must not be before start_time", nil)
	}
	competition := &domain.Competition{
		Title:                input.Title,
		Description:          input.Description,
		Location:             input.Location,
		StartTime:            input.StartTime,
		EndTime:              input.EndTime,
		RegistrationDeadline: input.RegistrationDeadline,
	}
	if err := s.competitions.Create(ctx, competition); err != nil {
		return nil, err
	}
	s.logger.Info("competition created", zap.String("competition_id", competition.ID), zap.String("actor_id", actor.ID))
	return competition, nil
}

// List returns all competitions.
func (s *CompetitionService) List(ctx context.Context) ([]domain.Competition, error) {
	return s.competitions.List(ctx)
}

// GetDetail returns a competition with its announcements.
func (s *CompetitionService) GetDetail(ctx context.Context, id string) (*domain.Competition, error) {
	competition, err := s.getCompetition(ctx, id)
	if err != nil {
		return nil, err
	}
	announcements, err := s.announcements.ListByCompetition(ctx, id)
	if err != nil {
		return nil, err
	}
	competition.Announcements = announcements
	return competition, nil
}

// Update applies patch to an existing competition.
func (s *CompetitionService) Update(ctx context.Context, actor *domain.User, id string, patch CompetitionPatch) (*domain.Competition, error) {
	if err := requireCapability(actor, auth.CapManageCompetitions); err != nil {
		return nil, err
	}
	competition, err := s.getCompetition(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		competition.Title = *patch.Title
	}
	if patch.Description != nil {
		competition.Description = *patch.Description
	}
	if patch.Location != nil {
		competition.Location = *patch.Location
	}
	if patch.StartTime != nil {
		competition.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		competition.EndTime = *patch.EndTime
	}
	if patch.RegistrationDeadline != nil {
		competition.RegistrationDeadline = patch.RegistrationDeadline
	}
	if competition.EndTime.Before(competition.StartTime) {
		return nil, apperrors.NewValidationError("end_time must not be before start_time", nil)
	}

	if err := s.competitions.Update(ctx, competition); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, competitionNotFound(id)
		}
		return nil, err
	}
	return competition, nil
}

// Delete removes a competition together with its announcements and registrations.
func (s *CompetitionService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := requireCapability(actor, auth.CapManageCompetitions); err != nil {
		return err
	}
	if err := s.competitions.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return competitionNotFound(id)
		}
		return err
	}
	s.logger.Info("competition deleted", zap.String("competition_id", id), zap.String("actor_id", actor.ID))
	return nil
}

// CreateAnnouncement posts an announcement under a competition.
func (s *CompetitionService) CreateAnnouncement(ctx context.Context, actor *domain.User, competitionID string, input AnnouncementInput) (*domain.CompetitionAnnouncement, error) {
	if err := requireCapability(actor, auth.CapManageAnnouncements); err != nil {
		return nil, err
	}
	announcement := &domain.CompetitionAnnouncement{
		CompetitionID: competitionID,
		Title:         input.Title,
		Content:       input.Content,
	}
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewEvent(events.EventAnnouncementPublished, competitionID, actor.ID, events.AnnouncementPayload{
		AnnouncementID: announcement.ID,
		Title:          announcement.Title,
	}))
	return announcement, nil
}

// DeleteAnnouncement removes an announcement belonging to competitionID.
func (s *CompetitionService) DeleteAnnouncement(ctx context.Context, actor *domain.User, competitionID, announcementID string) error {
	if err := requireCapability(actor, auth.CapManageAnnouncements); err != nil {
		return err
	}
	if err := s.announcements.Delete(ctx, competitionID, announcementID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("announcement", map[string]any{
				"competition_id":  competitionID,
				"announcement_id": announcementID,
			})
		}
		return err
	}
	s.publish(ctx, events.NewEvent(events.EventAnnouncementDeleted, competitionID, actor.ID, events.AnnouncementPayload{
		AnnouncementID: announcementID,
	}))
	return nil
}

func (s *CompetitionService) getCompetition(ctx context.Context, id string) (*domain.Competition, error) {
	competition, err := s.competitions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, competitionNotFound(id)
		}
		return nil, err
	}
	return competition, nil
}

func (s *CompetitionService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func competitionNotFound(id string) error {
	return apperrors.NewNotFound("competition", map[string]any{"competition_id": id})
}
