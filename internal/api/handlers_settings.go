package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrilume/internal/logger"
	"go.uber.org/zap"
)

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	if err := handler.settingsService.ChangePassword(user.ID, user.PasswordHash, input.CurrentPassword, input.NewPassword, input.ConfirmPassword); err != nil {
		return handler.respondServiceError(c, "change password", err)
	}

	user.MustChangePassword = false
	if err := handler.setAuthCookie(c, user, false); err != nil {
		return handler.internalError(c, "refresh session", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := deleteAccountInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	if err := handler.settingsService.ValidateDeleteAccountPassword(user.PasswordHash, input.Password); err != nil {
		return handler.respondServiceError(c, "validate delete account", err)
	}
	if err := handler.settingsService.DeleteAccount(user.ID); err != nil {
		return handler.internalError(c, "delete account", err)
	}

	handler.clearAuthCookie(c)
	logger.Info("account deleted", zap.Uint("user_id", user.ID))
	return c.JSON(fiber.Map{"ok": true})
}
