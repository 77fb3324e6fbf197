package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrilume/internal/logger"
	"github.com/terraincognita07/nutrilume/internal/services"
	"go.uber.org/zap"
)

func (handler *Handler) GetOnboarding(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	if services.IsOnboardingCompleted(user) {
		return c.JSON(fiber.Map{
			"completed": true,
			"state":     services.OnboardingState{CurrentStep: services.OnboardingStepCompleted, Completed: true},
		})
	}

	state, err := handler.onboardingService.LoadState(user.ID)
	if err != nil {
		return handler.internalError(c, "load onboarding", err)
	}
	return c.JSON(fiber.Map{
		"completed":         false,
		"state":             state,
		"suggested_targets": handler.onboardingService.SuggestedTargets(state),
	})
}

func (handler *Handler) SubmitOnboardingStep(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	data := services.OnboardingStepData{}
	if err := c.BodyParser(&data); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	stepID := strings.TrimSpace(c.Params("step"))
	state, err := handler.onboardingService.SubmitStep(user.ID, stepID, data)
	if err != nil {
		return handler.respondServiceError(c, "submit onboarding step", err)
	}

	return c.JSON(fiber.Map{
		"state":             state,
		"suggested_targets": handler.onboardingService.SuggestedTargets(state),
	})
}

func (handler *Handler) CompleteOnboarding(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	payload, err := handler.onboardingService.Complete(user.ID, handler.today(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, "complete onboarding", err)
	}

	logger.Info("onboarding completed",
		zap.Uint("user_id", user.ID),
		zap.Int("target_calories", payload.Targets.Calories),
	)
	return c.JSON(fiber.Map{
		"ok":      true,
		"profile": payload,
	})
}
