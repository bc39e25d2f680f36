package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/competition-service/internal/cache"
	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/events"
	"github.com/spec-kit/competition-service/internal/repository"
)

type competitionRepoMock struct{ mock.Mock }

var _ repository.CompetitionRepository = (*competitionRepoMock)(nil)

func (m *competitionRepoMock) Create(ctx context.Context, c *domain.Competition) error {
	return m.Called(ctx, c).Error(0)
}

func (m *competitionRepoMock) Update(ctx context.Context, c *domain.Competition) error {
	return m.Called(ctx, c).Error(0)
}

func (m *competitionRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *competitionRepoMock) GetByID(ctx context.Context, id string) (*domain.Competition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Competition), args.Error(1)
}

func (m *competitionRepoMock) List(ctx context.Context) ([]domain.Competition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Competition), args.Error(1)
}

type announcementRepoMock struct{ mock.Mock }

var _ repository.AnnouncementRepository = (*announcementRepoMock)(nil)

func (m *announcementRepoMock) Create(ctx context.Context, a *domain.CompetitionAnnouncement) error {
	return m.Called(ctx, a).Error(0)
}

func (m *announcementRepoMock) Delete(ctx context.Context, competitionID, id string) error {
	return m.Called(ctx, competitionID, id).Error(0)
}

func (m *announcementRepoMock) ListByCompetition(ctx context.Context, competitionID string) ([]domain.CompetitionAnnouncement, error) {
	args := m.Called(ctx, competitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompetitionAnnouncement), args.Error(1)
}

type teamRepoMock struct{ mock.Mock }

var _ repository.TeamRepository = (*teamRepoMock)(nil)

func (m *teamRepoMock) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *teamRepoMock) FindMembership(ctx context.Context, userID, teamID string, role domain.MemberRole) (*domain.TeamMember, error) {
	args := m.Called(ctx, userID, teamID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

func (m *teamRepoMock) ListActiveMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

type registrationRepoMock struct{ mock.Mock }

var _ repository.RegistrationRepository = (*registrationRepoMock)(nil)

func (m *registrationRepoMock) Find(ctx context.Context, competitionID, teamID string) (*domain.CompetitionRegistration, error) {
	args := m.Called(ctx, competitionID, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompetitionRegistration), args.Error(1)
}

func (m *registrationRepoMock) Create(ctx context.Context, reg *domain.CompetitionRegistration) error {
	return m.Called(ctx, reg).Error(0)
}

func (m *registrationRepoMock) ListTeams(ctx context.Context, competitionID string) ([]domain.Team, error) {
	args := m.Called(ctx, competitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *registrationRepoMock) ListByTeam(ctx context.Context, teamID string) ([]domain.CompetitionRegistration, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompetitionRegistration), args.Error(1)
}

type userRepoMock struct{ mock.Mock }

var _ repository.UserRepository = (*userRepoMock)(nil)

func (m *userRepoMock) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *userRepoMock) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type rosterCacheMock struct{ mock.Mock }

var _ cache.RosterCache = (*rosterCacheMock)(nil)

func (m *rosterCacheMock) Get(ctx context.Context, competitionID string) ([]domain.TeamRoster, bool, error) {
	args := m.Called(ctx, competitionID)
	roster, _ := args.Get(0).([]domain.TeamRoster)
	return roster, args.Bool(1), args.Error(2)
}

func (m *rosterCacheMock) Set(ctx context.Context, competitionID string, roster []domain.TeamRoster) error {
	return m.Called(ctx, competitionID, roster).Error(0)
}

func (m *rosterCacheMock) Invalidate(ctx context.Context, competitionID string) error {
	return m.Called(ctx, competitionID).Error(0)
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.published = append(d.published, e)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}
