package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/events"
	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

var (
	adminUser   = &domain.User{ID: "A1", Role: domain.RoleAdmin}
	regularUser = &domain.User{ID: "U1", Role: domain.RoleUser}
)

func newCompetitionService(t *testing.T) (*CompetitionService, *competitionRepoMock, *announcementRepoMock, *recordingDispatcher) {
	t.Helper()
	comps := &competitionRepoMock{}
	anns := &announcementRepoMock{}
	disp := &recordingDispatcher{}
	t.Cleanup(func() {
		comps.AssertExpectations(t)
		anns.AssertExpectations(t)
	})
	svc := NewCompetitionService(CompetitionDependencies{
		CompetitionRepo:  comps,
		AnnouncementRepo: anns,
		Dispatcher:       disp,
	})
	return svc, comps, anns, disp
}

func TestAdminGateRunsBeforeStore(t *testing.T) {
	ctx := context.Background()
	svc, comps, anns, _ := newCompetitionService(t)

	for _, actor := range []*domain.User{nil, regularUser, {ID: "X", Role: domain.Role("ADMIN")}} {
		_, err := svc.Create(ctx, actor, CompetitionInput{Title: "Cup"})
		require.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

		_, err = svc.Update(ctx, actor, "C1", CompetitionPatch{})
		require.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

		err = svc.Delete(ctx, actor, "C1")
		require.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

		_, err = svc.CreateAnnouncement(ctx, actor, "C1", AnnouncementInput{Title: "t", Content: "c"})
		require.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

		err = svc.DeleteAnnouncement(ctx, actor, "C1", "N1")
		require.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	}

	require.Empty(t, comps.Calls)
	require.Empty(t, anns.Calls)
}

func TestCreateCompetition(t *testing.T) {
	svc, comps, _, _ := newCompetitionService(t)
	start := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)

	comps.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Competition) bool {
		return c.Title == "Cup" && c.StartTime.Equal(start)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Competition).ID = "C1"
	}).Return(nil).Once()

	c, err := svc.Create(context.Background(), adminUser, CompetitionInput{Title: "Cup", StartTime: start, EndTime: start.Add(time.Hour)})
	require.NoError(t, err)
	require.Equal(t, "C1", c.ID)

	_, err = svc.Create(context.Background(), adminUser, CompetitionInput{Title: "Bad", StartTime: start, EndTime: start.Add(-time.Hour)})
	require.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestGetDetail(t *testing.T) {
	svc, comps, anns, _ := newCompetitionService(t)
	comps.On("GetByID", mock.Anything, "C1").Return(&domain.Competition{ID: "C1", Title: "Cup"}, nil).Once()
	anns.On("ListByCompetition", mock.Anything, "C1").Return([]domain.CompetitionAnnouncement{{ID: "N1", CompetitionID: "C1"}}, nil).Once()
	comps.On("GetByID", mock.Anything, "C9").Return(nil, pgx.ErrNoRows).Once()

	c, err := svc.GetDetail(context.Background(), "C1")
	require.NoError(t, err)
	require.Len(t, c.Announcements, 1)

	_, err = svc.GetDetail(context.Background(), "C9")
	require.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestUpdateAppliesPatch(t *testing.T) {
	svc, comps, _, _ := newCompetitionService(t)
	start := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	existing := &domain.Competition{ID: "C1", Title: "Cup", Location: "Hall A", StartTime: start, EndTime: start.Add(2 * time.Hour)}
	title := "Grand Cup"

	comps.On("GetByID", mock.Anything, "C1").Return(existing, nil).Once()
	comps.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Competition) bool {
		return c.Title == "Grand Cup" && c.Location == "Hall A"
	})).Return(nil).Once()

	c, err := svc.Update(context.Background(), adminUser, "C1", CompetitionPatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Grand Cup", c.Title)
}

func TestUpdatePropagatesStoreError(t *testing.T) {
	svc, comps, _, _ := newCompetitionService(t)
	storeErr := errors.New("deadlock detected")
	comps.On("GetByID", mock.Anything, "C1").Return(&domain.Competition{ID: "C1"}, nil).Once()
	comps.On("Update", mock.Anything, mock.Anything).Return(storeErr).Once()

	_, err := svc.Update(context.Background(), adminUser, "C1", CompetitionPatch{})
	require.Same(t, storeErr, err)
}

func TestDeleteCompetition(t *testing.T) {
	svc, comps, _, _ := newCompetitionService(t)
	comps.On("Delete", mock.Anything, "C1").Return(nil).Once()
	comps.On("Delete", mock.Anything, "C9").Return(pgx.ErrNoRows).Once()

	require.NoError(t, svc.Delete(context.Background(), adminUser, "C1"))
	err := svc.Delete(context.Background(), adminUser, "C9")
	require.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestAnnouncementLifecycle(t *testing.T) {
	svc, _, anns, disp := newCompetitionService(t)
	anns.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.CompetitionAnnouncement) bool {
		return a.CompetitionID == "C1" && a.Title == "Schedule"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.CompetitionAnnouncement).ID = "N1"
	}).Return(nil).Once()
	anns.On("Delete", mock.Anything, "C1", "N1").Return(nil).Once()
	anns.On("Delete", mock.Anything, "C1", "N2").Return(pgx.ErrNoRows).Once()

	a, err := svc.CreateAnnouncement(context.Background(), adminUser, "C1", AnnouncementInput{Title: "Schedule", Content: "Starts at 9"})
	require.NoError(t, err)
	require.Equal(t, "N1", a.ID)

	require.NoError(t, svc.DeleteAnnouncement(context.Background(), adminUser, "C1", "N1"))
	err = svc.DeleteAnnouncement(context.Background(), adminUser, "C1", "N2")
	require.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	require.Len(t, disp.published, 2)
	require.Equal(t, events.EventAnnouncementPublished, disp.published[0].Type)
	require.Equal(t, events.EventAnnouncementDeleted, disp.published[1].Type)
}
