package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrilume/internal/logger"
	"github.com/terraincognita07/nutrilume/internal/services"
	"go.uber.org/zap"
)

func (handler *Handler) SetupStatus(c *fiber.Ctx) error {
	handler.ensureDependencies()
	requiresSetup, err := handler.setupService.RequiresInitialSetup()
	if err != nil {
		return handler.internalError(c, "setup status", err)
	}
	return c.JSON(fiber.Map{"needs_setup": requiresSetup})
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Register(credentials.Email, credentials.Password, credentials.ConfirmPassword, handler.now())
	if err != nil {
		return handler.respondServiceError(c, "register", err)
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return handler.internalError(c, "create session", err)
	}

	logger.Info("user registered", zap.Uint("user_id", user.ID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":                   true,
		"user_id":              user.ID,
		"onboarding_completed": false,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Authenticate(credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthInvalidCredential) {
			return handler.apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return handler.internalError(c, "login", err)
	}

	if err := handler.setAuthCookie(c, &user, credentials.RememberMe); err != nil {
		return handler.internalError(c, "create session", err)
	}

	return c.JSON(fiber.Map{
		"ok":                   true,
		"user_id":              user.ID,
		"must_change_password": user.MustChangePassword,
		"onboarding_completed": services.IsOnboardingCompleted(&user),
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
