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

// AuthService is what the users handler needs from the auth layer.
type AuthService interface {
	RegisterUser(ctx context.Context, input service.SignUpInput) (*domain.User, string, domain.Token, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, domain.Token, error)
}

// UsersHandler exposes sign-up and login endpoints.
type UsersHandler struct {
	auth     AuthService
	validate *validator.Validate
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService AuthService, validate *validator.Validate) *UsersHandler {
	return &UsersHandler{auth: authService, validate: validate}
}

// Register handles POST /auth/users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}

	user, signed, token, err := h.auth.RegisterUser(c.UserContext(), service.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Grade:    req.Grade,
		Major:    req.Major,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(data(fiber.Map{
		"user": userResponse(user),
		"auth": dto.AuthResponse{Token: signed, ExpiresAt: token.ExpiresAt},
	}))
}

// Login handles POST /auth/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}

	user, signed, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(data(fiber.Map{
		"user": userResponse(user),
		"auth": dto.AuthResponse{Token: signed, ExpiresAt: token.ExpiresAt},
	}))
}

func userResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
		Grade: u.Grade,
		Major: u.Major,
	}
}
