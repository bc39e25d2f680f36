package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/competition-service/internal/api/http/handlers"
	"github.com/spec-kit/competition-service/internal/auth"
	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/observability"
	"github.com/spec-kit/competition-service/internal/service"
	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

const (
	cupID          = "6f1c3a52-1d7e-4b8a-9c1e-2a4f5b6c7d01"
	emptyCupID     = "6f1c3a52-1d7e-4b8a-9c1e-2a4f5b6c7d02"
	missingCupID   = "6f1c3a52-1d7e-4b8a-9c1e-2a4f5b6c7d09"
	brokenCupID    = "6f1c3a52-1d7e-4b8a-9c1e-2a4f5b6c7d0f"
	teamID         = "0b7e9d44-52a1-4c3f-8e6d-91f2a3b4c5d6"
	announcementID = "a3d5e7f9-1b2c-4d6e-8f0a-1c3e5a7b9d2f"
)

type fakeCompetitions struct {
	created []service.CompetitionInput
}

func (f *fakeCompetitions) Create(_ context.Context, _ *domain.User, input service.CompetitionInput) (*domain.Competition, error) {
	f.created = append(f.created, input)
	return &domain.Competition{ID: "C2", Title: input.Title, StartTime: input.StartTime, EndTime: input.EndTime}, nil
}

func (f *fakeCompetitions) List(context.Context) ([]domain.Competition, error) {
	return []domain.Competition{{ID: "C1", Title: "Cup"}}, nil
}

func (f *fakeCompetitions) GetDetail(_ context.Context, id string) (*domain.Competition, error) {
	if id != cupID {
		return nil, apperrors.NewNotFound("competition", nil)
	}
	return &domain.Competition{ID: cupID, Title: "Cup"}, nil
}

func (f *fakeCompetitions) Update(context.Context, *domain.User, string, service.CompetitionPatch) (*domain.Competition, error) {
	return &domain.Competition{ID: "C1"}, nil
}

func (f *fakeCompetitions) Delete(context.Context, *domain.User, string) error { return nil }

func (f *fakeCompetitions) CreateAnnouncement(_ context.Context, _ *domain.User, competitionID string, input service.AnnouncementInput) (*domain.CompetitionAnnouncement, error) {
	return &domain.CompetitionAnnouncement{ID: "N1", CompetitionID: competitionID, Title: input.Title, Content: input.Content}, nil
}

func (f *fakeCompetitions) DeleteAnnouncement(context.Context, *domain.User, string, string) error {
	return nil
}

type fakeRegistrations struct {
	registered map[string]bool
}

func (f *fakeRegistrations) Register(_ context.Context, competitionID, teamID string, actor *domain.User) (*domain.CompetitionRegistration, error) {
	if actor.ID != "U1" {
		return nil, apperrors.NewForbidden("acting user is not captain of this team")
	}
	key := competitionID + "/" + teamID
	if f.registered[key] {
		return nil, apperrors.NewDuplicateRegistration(competitionID, teamID)
	}
	f.registered[key] = true
	return &domain.CompetitionRegistration{ID: "R1", CompetitionID: competitionID, TeamID: teamID}, nil
}

func (f *fakeRegistrations) Roster(_ context.Context, competitionID string) ([]domain.TeamRoster, error) {
	switch competitionID {
	case cupID:
		return []domain.TeamRoster{{
			TeamID:   teamID,
			TeamName: "T1",
			Members:  []domain.MemberDetail{{Name: "Ann", Grade: "3", Major: "CS", Email: "a@x.com"}},
		}}, nil
	case emptyCupID:
		return []domain.TeamRoster{}, nil
	case brokenCupID:
		return nil, io.ErrUnexpectedEOF
	}
	return nil, apperrors.NewNotFound("competition", nil)
}

func (f *fakeRegistrations) ListTeamRegistrations(context.Context, string) ([]domain.CompetitionRegistration, error) {
	return nil, nil
}

var testUsers = map[string]*domain.User{
	"U1":    {ID: "U1", Role: domain.RoleUser},
	"U2":    {ID: "U2", Role: domain.RoleUser},
	"admin": {ID: "admin", Role: domain.RoleAdmin},
}

// headerAuth authenticates by the X-Test-User header.
func headerAuth(c *fiber.Ctx) error {
	user, ok := testUsers[c.Get("X-Test-User")]
	if !ok {
		return apperrors.NewUnauthorized("missing authorization header")
	}
	auth.SetPrincipal(c, &auth.Principal{User: user})
	return c.Next()
}

func newTestApp(t *testing.T) (*fiber.App, *observability.Metrics) {
	t.Helper()
	app := fiber.New()
	metrics := observability.NewMetrics()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 0)

	validate := handlers.NewValidator()
	RegisterRoutes(app, RouteConfig{
		Health:       handlers.NewHealthHandler("competition-service", "test", nil, metrics),
		Users:        handlers.NewUsersHandler(nil, validate),
		Competitions: handlers.NewCompetitionsHandler(&fakeCompetitions{}, &fakeRegistrations{registered: map[string]bool{}}, validate),
		Authenticate: headerAuth,
	})
	return app, metrics
}

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func do(t *testing.T, app *fiber.App, method, path, user string, body any) *nethttp.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *nethttp.Response) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRegistrationEndpoint(t *testing.T) {
	app, metrics := newTestApp(t)
	path := "/competitions/" + cupID + "/registrations"
	payload := map[string]string{"team_id": teamID}

	resp := do(t, app, nethttp.MethodPost, path, "U2", payload)
	require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	require.Equal(t, apperrors.CodeForbidden, decodeError(t, resp).Error.Code)

	resp = do(t, app, nethttp.MethodPost, path, "U1", payload)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	var created struct {
		Data struct {
			ID            string `json:"id"`
			CompetitionID string `json:"competition_id"`
			TeamID        string `json:"team_id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.Equal(t, cupID, created.Data.CompetitionID)
	require.Equal(t, teamID, created.Data.TeamID)

	resp = do(t, app, nethttp.MethodPost, path, "U1", payload)
	require.Equal(t, nethttp.StatusConflict, resp.StatusCode)
	body := decodeError(t, resp)
	require.Equal(t, apperrors.CodeDuplicateRegistration, body.Error.Code)
	require.Equal(t, teamID, body.Error.Details["team_id"])

	resp = do(t, app, nethttp.MethodPost, path, "U1", map[string]string{})
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "required", decodeError(t, resp).Error.Details["teamid"])

	resp = do(t, app, nethttp.MethodPost, path, "U1", map[string]string{"team_id": "T1"})
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "uuid", decodeError(t, resp).Error.Details["teamid"])

	snap := metrics.Snapshot()
	require.Equal(t, int64(1), snap.Errors["/competitions/:id/registrations|POST|DUPLICATE_REGISTRATION"])
}

func TestRosterEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp := do(t, app, nethttp.MethodGet, "/competitions/"+cupID+"/teams", "U2", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var roster struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&roster))
	require.Len(t, roster.Data, 1)
	require.Equal(t, teamID, roster.Data[0]["team_id"])
	require.Equal(t, "T1", roster.Data[0]["team_name"])
	require.Equal(t, []any{map[string]any{"name": "Ann", "grade": "3", "major": "CS", "email": "a@x.com"}}, roster.Data[0]["members"])

	resp = do(t, app, nethttp.MethodGet, "/competitions/"+emptyCupID+"/teams", "U2", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"data":[]}`, string(raw))

	resp = do(t, app, nethttp.MethodGet, "/competitions/"+missingCupID+"/teams", "U2", nil)
	require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	require.Equal(t, apperrors.CodeNotFound, decodeError(t, resp).Error.Code)

	resp = do(t, app, nethttp.MethodGet, "/competitions/"+brokenCupID+"/teams", "U2", nil)
	require.Equal(t, nethttp.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, apperrors.CodeInternal, decodeError(t, resp).Error.Code)
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	cases := []struct {
		method string
		path   string
		user   string
		body   any
	}{
		{nethttp.MethodGet, "/competitions/abc/teams", "U2", nil},
		{nethttp.MethodGet, "/competitions/abc", "U2", nil},
		{nethttp.MethodDelete, "/competitions/abc", "admin", nil},
		{nethttp.MethodPost, "/competitions/abc/registrations", "U1", map[string]string{"team_id": teamID}},
		{nethttp.MethodDelete, "/competitions/" + cupID + "/announcements/abc", "admin", nil},
		{nethttp.MethodGet, "/teams/abc/registrations", "U2", nil},
	}
	for _, tc := range cases {
		resp := do(t, app, tc.method, tc.path, tc.user, tc.body)
		require.Equal(t, nethttp.StatusNotFound, resp.StatusCode, "%s %s", tc.method, tc.path)
		require.Equal(t, apperrors.CodeNotFound, decodeError(t, resp).Error.Code, "%s %s", tc.method, tc.path)
	}
}

func TestAdminRoutesAreGated(t *testing.T) {
	app, _ := newTestApp(t)
	payload := map[string]any{
		"title":      "Autumn Cup",
		"start_time": "2026-11-01T09:00:00Z",
		"end_time":   "2026-11-01T17:00:00Z",
	}

	resp := do(t, app, nethttp.MethodPost, "/competitions", "", payload)
	require.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, nethttp.MethodPost, "/competitions", "U1", payload)
	require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	require.Equal(t, apperrors.CodeForbidden, decodeError(t, resp).Error.Code)

	resp = do(t, app, nethttp.MethodDelete, "/competitions/"+cupID+"/announcements/"+announcementID, "U1", nil)
	require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)

	resp = do(t, app, nethttp.MethodPost, "/competitions", "admin", payload)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	resp = do(t, app, nethttp.MethodPost, "/competitions", "admin", map[string]any{"title": "No dates"})
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	require.Equal(t, apperrors.CodeValidationFailed, decodeError(t, resp).Error.Code)

	resp = do(t, app, nethttp.MethodPost, "/competitions/"+cupID+"/announcements", "admin", map[string]string{"title": "Schedule", "content": "9am"})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	resp = do(t, app, nethttp.MethodDelete, "/competitions/"+cupID, "admin", nil)
	require.Equal(t, nethttp.StatusNoContent, resp.StatusCode)
}

func TestPublicRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	resp := do(t, app, nethttp.MethodGet, "/health/live", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	resp = do(t, app, nethttp.MethodGet, "/health/ready", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp = do(t, app, nethttp.MethodGet, "/competitions/"+cupID, "U2", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
}
