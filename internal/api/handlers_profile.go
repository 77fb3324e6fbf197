package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrilume/internal/models"
	"github.com/terraincognita07/nutrilume/internal/services"
)

type profileResponse struct {
	Email               string                    `json:"email"`
	DisplayName         string                    `json:"display_name"`
	Biometrics          services.BiometricProfile `json:"biometrics"`
	Goals               services.GoalProfile      `json:"goals"`
	Targets             services.NutritionTargets `json:"targets"`
	OnboardingCompleted bool                      `json:"onboarding_completed"`
}

func newProfileResponse(user *models.User) profileResponse {
	return profileResponse{
		Email:               user.Email,
		DisplayName:         user.DisplayName,
		Biometrics:          services.UserBiometrics(user),
		Goals:               services.UserGoals(user),
		Targets:             services.UserTargets(user),
		OnboardingCompleted: services.IsOnboardingCompleted(user),
	}
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(newProfileResponse(user))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	biometrics, goals, err := handler.parseProfileInput(c)
	if err != nil {
		return handler.respondServiceError(c, "parse profile", err)
	}

	handler.ensureDependencies()
	if _, err := handler.profileService.UpdateProfile(user.ID, biometrics, goals); err != nil {
		return handler.respondServiceError(c, "update profile", err)
	}

	updated, err := handler.profileService.LoadProfile(user.ID)
	if err != nil {
		return handler.internalError(c, "reload profile", err)
	}
	return c.JSON(newProfileResponse(&updated))
}

func (handler *Handler) ReplaceTargets(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := targetsInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	targets := services.NutritionTargets{
		Calories: input.Calories,
		ProteinG: input.ProteinG,
		CarbsG:   input.CarbsG,
		FatG:     input.FatG,
	}
	handler.ensureDependencies()
	if err := handler.profileService.ReplaceTargets(user.ID, targets); err != nil {
		return handler.respondServiceError(c, "replace targets", err)
	}
	return c.JSON(fiber.Map{"targets": targets})
}

// PreviewTargets computes targets for the posted answers without saving them.
func (handler *Handler) PreviewTargets(c *fiber.Ctx) error {
	biometrics, goals, err := handler.parseProfileInput(c)
	if err != nil {
		return handler.respondServiceError(c, "parse profile", err)
	}

	targets, err := services.ComputeTargets(biometrics, goals)
	if err != nil {
		return handler.respondServiceError(c, "preview targets", err)
	}
	return c.JSON(fiber.Map{
		"targets":        targets,
		"macro_calories": targets.MacroCalories(),
	})
}

func (handler *Handler) parseProfileInput(c *fiber.Ctx) (services.BiometricProfile, services.GoalProfile, error) {
	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return services.BiometricProfile{}, services.GoalProfile{}, errInvalidRequestBody
	}

	heightCm, err := services.ConvertHeightToCm(input.Height, input.HeightUnit)
	if err != nil {
		return services.BiometricProfile{}, services.GoalProfile{}, err
	}
	weightKg, err := services.ConvertWeightToKg(input.Weight, input.WeightUnit)
	if err != nil {
		return services.BiometricProfile{}, services.GoalProfile{}, err
	}

	var targetWeightKg *float64
	if input.TargetWeight != nil {
		converted, err := services.ConvertWeightToKg(*input.TargetWeight, input.WeightUnit)
		if err != nil {
			return services.BiometricProfile{}, services.GoalProfile{}, err
		}
		targetWeightKg = &converted
	}

	biometrics := services.BiometricProfile{
		Sex:      input.Sex,
		AgeYears: input.AgeYears,
		HeightCm: heightCm,
		WeightKg: weightKg,
	}
	goals := services.GoalProfile{
		ActivityLevel:    input.ActivityLevel,
		Goal:             input.Goal,
		TargetWeightKg:   targetWeightKg,
		TargetBodyFatPct: input.TargetBodyFatPct,
	}
	return biometrics, goals, nil
}
