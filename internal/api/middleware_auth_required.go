package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrilume/internal/services"
)

// AuthRequired resolves the session user. Until onboarding is complete only
// the onboarding and logout routes stay reachable.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	if !services.IsOnboardingCompleted(user) && !isOnboardingExemptPath(c.Path()) {
		return handler.apiError(c, fiber.StatusForbidden, "onboarding required")
	}
	return c.Next()
}

func isOnboardingExemptPath(path string) bool {
	cleanPath := strings.TrimSuffix(strings.TrimSpace(path), "/")
	switch {
	case cleanPath == "/api/onboarding", strings.HasPrefix(cleanPath, "/api/onboarding/"):
		return true
	case cleanPath == "/api/auth/logout":
		return true
	case cleanPath == "/api/settings/delete-account":
		return true
	default:
		return false
	}
}
