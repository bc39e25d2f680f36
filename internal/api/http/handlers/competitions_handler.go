package handlers

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/competition-service/internal/api/dto"
	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/service"
)

// CompetitionService covers competition CRUD and announcements.
type CompetitionService interface {
	Create(ctx context.Context, actor *domain.User, input service.CompetitionInput) (*domain.Competition, error)
	List(ctx context.Context) ([]domain.Competition, error)
	GetDetail(ctx context.Context, id string) (*domain.Competition, error)
	Update(ctx context.Context, actor *domain.User, id string, patch service.CompetitionPatch) (*domain.Competition, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	CreateAnnouncement(ctx context.Context, actor *domain.User, competitionID string, input service.AnnouncementInput) (*domain.CompetitionAnnouncement, error)
	DeleteAnnouncement(ctx context.Context, actor *domain.User, competitionID, announcementID string) error
}

// RegistrationService covers team registration and rosters.
type RegistrationService interface {
	Register(ctx context.Context, competitionID, teamID string, actor *domain.User) (*domain.CompetitionRegistration, error)
	Roster(ctx context.Context, competitionID string) ([]domain.TeamRoster, error)
	ListTeamRegistrations(ctx context.Context, teamID string) ([]domain.CompetitionRegistration, error)
}

// CompetitionsHandler exposes competition endpoints.
type CompetitionsHandler struct {
	competitions  CompetitionService
	registrations RegistrationService
	validate      *validator.Validate
}

// NewCompetitionsHandler constructs handler.
func NewCompetitionsHandler(competitions CompetitionService, registrations RegistrationService, validate *validator.Validate) *CompetitionsHandler {
	return &CompetitionsHandler{competitions: competitions, registrations: registrations, validate: validate}
}

// List handles GET /competitions.
func (h *CompetitionsHandler) List(c *fiber.Ctx) error {
	items, err := h.competitions.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.CompetitionResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.NewCompetitionResponse(&items[i]))
	}
	return c.JSON(data(resp))
}

// Get handles GET /competitions/:id.
func (h *CompetitionsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "competition")
	if err != nil {
		return err
	}
	competition, err := h.competitions.GetDetail(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewCompetitionResponse(competition)))
}

// Create handles POST /competitions.
func (h *CompetitionsHandler) Create(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateCompetitionRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	competition, err := h.competitions.Create(c.UserContext(), actor, service.CompetitionInput{
		Title:                req.Title,
		Description:          req.Description,
		Location:             req.Location,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		RegistrationDeadline: req.RegistrationDeadline,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewCompetitionResponse(competition)))
}

// Update handles PUT /competitions/:id.
func (h *CompetitionsHandler) Update(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "competition")
	if err != nil {
		return err
	}
	var req dto.UpdateCompetitionRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	competition, err := h.competitions.Update(c.UserContext(), actor, id, service.CompetitionPatch{
		Title:                req.Title,
		Description:          req.Description,
		Location:             req.Location,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		RegistrationDeadline: req.RegistrationDeadline,
	})
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewCompetitionResponse(competition)))
}

// Delete handles DELETE /competitions/:id.
func (h *CompetitionsHandler) Delete(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "competition")
	if err != nil {
		return err
	}
	if err := h.competitions.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// CreateAnnouncement handles POST /competitions/:id/announcements.
func (h *CompetitionsHandler) CreateAnnouncement(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	competitionID, err := pathID(c, "id", "competition")
	if err != nil {
		return err
	}
	var req dto.CreateAnnouncementRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	announcement, err := h.competitions.CreateAnnouncement(c.UserContext(), actor, competitionID, service.AnnouncementInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewAnnouncementResponse(announcement)))
}

// DeleteAnnouncement handles DELETE /competitions/:id/announcements/:announcementId.
func (h *CompetitionsHandler) DeleteAnnouncement(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	competitionID, err := pathID(c, "id", "competition")
	if err != nil {
		return err
	}
	announcementID, err := pathID(c, "announcementId", "announcement")
	if err != nil {
		return err
	}
	if err := h.competitions.DeleteAnnouncement(c.UserContext(), actor, competitionID, announcementID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Register handles POST /competitions/:id/registrations.
func (h *CompetitionsHandler) Register(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	competitionID, err := pathID(c, "id", "competition")
	if err != nil {
		return err
	}
	var req dto.RegisterTeamRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	registration, err := h.registrations.Register(c.UserContext(), competitionID, req.TeamID, actor)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewRegistrationResponse(registration)))
}

// Roster handles GET /competitions/:id/teams.
func (h *CompetitionsHandler) Roster(c *fiber.Ctx) error {
	competitionID, err := pathID(c, "id", "competition")
	if err != nil {
		return err
	}
	roster, err := h.registrations.Roster(c.UserContext(), competitionID)
	if err != nil {
		return err
	}
	return c.JSON(data(roster))
}

// TeamRegistrations handles GET /teams/:id/registrations.
func (h *CompetitionsHandler) TeamRegistrations(c *fiber.Ctx) error {
	teamID, err := pathID(c, "id", "team")
	if err != nil {
		return err
	}
	regs, err := h.registrations.ListTeamRegistrations(c.UserContext(), teamID)
	if err != nil {
		return err
	}
	resp := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		resp = append(resp, dto.NewRegistrationResponse(&regs[i]))
	}
	return c.JSON(data(resp))
}
