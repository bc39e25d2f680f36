package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/competition-service/internal/domain"
)

// Capability names an action gated by account role.
type Capability int

const (
	CapManageCompetitions Capability = iota + 1
	CapManageAnnouncements
)

var roleCapabilities = map[domain.Role][]Capability{
	domain.RoleAdmin: {CapManageCompetitions, CapManageAnnouncements},
	domain.RoleUser:  nil,
}

// Allows reports whether role holds capability.
func Allows(role domain.Role, capability Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == capability {
			return true
		}
	}
	return false
}

// RequireCapability ensures the authenticated user's role holds capability.
func RequireCapability(capability Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if !Allows(principal.User.Role, capability) {
			return fiber.NewError(http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}
