package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/competition-service/internal/cache"
	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/events"
	"github.com/spec-kit/competition-service/internal/repository"
	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

// RegistrationService lets captains register teams and aggregates competition rosters.
type RegistrationService struct {
	competitions  repository.CompetitionRepository
	teams         repository.TeamRepository
	registrations repository.RegistrationRepository
	users         repository.UserRepository
	cache         cache.RosterCache
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// RegistrationDependencies bundles collaborators for the registration service.
type RegistrationDependencies struct {
	CompetitionRepo  repository.CompetitionRepository
	TeamRepo         repository.TeamRepository
	RegistrationRepo repository.RegistrationRepository
	UserRepo         repository.UserRepository
	RosterCache      cache.RosterCache
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// NewRegistrationService constructs the service.
func NewRegistrationService(deps RegistrationDependencies) *RegistrationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		competitions:  deps.CompetitionRepo,
		teams:         deps.TeamRepo,
		registrations: deps.RegistrationRepo,
		users:         deps.UserRepo,
		cache:         deps.RosterCache,
		dispatcher:    deps.Dispatcher,
		logger:        logger.Named("registration"),
	}
}

// Register enrolls teamID in competitionID on behalf of actor, who must be the
// team's captain. The captain check always runs before the duplicate check.
// Store errors are returned unchanged.
func (s *RegistrationService) Register(ctx context.Context, competitionID, teamID string, actor *domain.User) (*domain.CompetitionRegistration, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	if _, err := s.teams.FindMembership(ctx, actor.ID, teamID, domain.MemberRoleCaptain); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewForbidden("acting user is not captain of this team")
		}
		return nil, err
	}

	if _, err := s.registrations.Find(ctx, competitionID, teamID); err == nil {
		return nil, apperrors.NewDuplicateRegistration(competitionID, teamID)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	registration := &domain.CompetitionRegistration{CompetitionID: competitionID, TeamID: teamID}
	if err := s.registrations.Create(ctx, registration); err != nil {
		return nil, err
	}

	s.invalidateRoster(ctx, competitionID)
	s.publish(ctx, events.NewEvent(events.EventCompetitionRegistered, competitionID, actor.ID, events.CompetitionRegisteredPayload{
		RegistrationID: registration.ID,
		TeamID:         teamID,
	}))
	return registration, nil
}

// Roster returns every team registered for the competition with the public
// profile of each active member, in store order. Members whose user record is
// missing are skipped.
func (s *RegistrationService) Roster(ctx context.Context, competitionID string) ([]domain.TeamRoster, error) {
	if _, err := s.competitions.GetByID(ctx, competitionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("competition", map[string]any{"competition_id": competitionID})
		}
		return nil, err
	}

	if roster, ok := s.cachedRoster(ctx, competitionID); ok {
		return roster, nil
	}

	teams, err := s.registrations.ListTeams(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.TeamRoster, 0, len(teams))
	for _, team := range teams {
		members, err := s.teams.ListActiveMembers(ctx, team.ID)
		if err != nil {
			return nil, err
		}

		details := make([]domain.MemberDetail, 0, len(members))
		for _, member := range members {
			user, err := s.users.GetByID(ctx, member.UserID)
			if errors.Is(err, pgx.ErrNoRows) {
				s.logger.Debug("skipping team member with missing user",
					zap.String("competition_id", competitionID),
					zap.String("team_id", team.ID),
					zap.String("user_id", member.UserID))
				continue
			}
			if err != nil {
				return nil, err
			}
			details = append(details, domain.MemberDetail{
				Name:  user.Name,
				Grade: user.Grade,
				Major: user.Major,
				Email: user.Email,
			})
		}

		result = append(result, domain.TeamRoster{
			TeamID:   team.ID,
			TeamName: team.Name,
			Members:  details,
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, competitionID, result); err != nil {
			s.logger.Warn("roster cache write failed", zap.String("competition_id", competitionID), zap.Error(err))
		}
	}
	return result, nil
}

// ListTeamRegistrations returns the registrations held by a team, newest first.
func (s *RegistrationService) ListTeamRegistrations(ctx context.Context, teamID string) ([]domain.CompetitionRegistration, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("team", map[string]any{"team_id": teamID})
		}
		return nil, err
	}
	return s.registrations.ListByTeam(ctx, teamID)
}

func (s *RegistrationService) cachedRoster(ctx context.Context, competitionID string) ([]domain.TeamRoster, bool) {
	if s.cache == nil {
		return nil, false
	}
	roster, ok, err := s.cache.Get(ctx, competitionID)
	if err != nil {
		s.logger.Warn("roster cache read failed", zap.String("competition_id", competitionID), zap.Error(err))
		return nil, false
	}
	if ok && roster == nil {
		roster = []domain.TeamRoster{}
	}
	return roster, ok
}

func (s *RegistrationService) invalidateRoster(ctx context.Context, competitionID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, competitionID); err != nil {
		s.logger.Warn("roster cache invalidation failed", zap.String("competition_id", competitionID), zap.Error(err))
	}
}

func (s *RegistrationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
