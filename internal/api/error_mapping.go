package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrilume/internal/services"
)

var errInvalidRequestBody = errors.New("invalid request body")

type errorResponse struct {
	status int
	code   string
}

var serviceErrorResponses = []struct {
	target   error
	response errorResponse
}{
	{errInvalidRequestBody, errorResponse{fiber.StatusBadRequest, "invalid input"}},

	{services.ErrInvalidSex, errorResponse{fiber.StatusBadRequest, "invalid sex"}},
	{services.ErrInvalidActivityLevel, errorResponse{fiber.StatusBadRequest, "invalid activity level"}},
	{services.ErrInvalidGoal, errorResponse{fiber.StatusBadRequest, "invalid goal"}},
	{services.ErrAgeOutOfRange, errorResponse{fiber.StatusBadRequest, "age out of range"}},
	{services.ErrHeightOutOfRange, errorResponse{fiber.StatusBadRequest, "height out of range"}},
	{services.ErrWeightOutOfRange, errorResponse{fiber.StatusBadRequest, "weight out of range"}},
	{services.ErrBodyFatOutOfRange, errorResponse{fiber.StatusBadRequest, "body fat out of range"}},
	{services.ErrNonPositiveBMR, errorResponse{fiber.StatusBadRequest, "non positive bmr"}},
	{services.ErrInvalidTargets, errorResponse{fiber.StatusBadRequest, "invalid targets"}},
	{services.ErrInvalidTargetCalories, errorResponse{fiber.StatusBadRequest, "invalid targets"}},
	{services.ErrUnsupportedUnit, errorResponse{fiber.StatusBadRequest, "unsupported unit"}},

	{services.ErrOnboardingStepUnknown, errorResponse{fiber.StatusNotFound, "onboarding step unknown"}},
	{services.ErrOnboardingStepOutOfOrder, errorResponse{fiber.StatusConflict, "onboarding step out of order"}},
	{services.ErrOnboardingIncomplete, errorResponse{fiber.StatusBadRequest, "onboarding incomplete"}},
	{services.ErrOnboardingAlreadyFinished, errorResponse{fiber.StatusConflict, "onboarding already finished"}},
	{services.ErrOnboardingFieldRequired, errorResponse{fiber.StatusBadRequest, "onboarding field required"}},
	{services.ErrOnboardingFieldNotAllowed, errorResponse{fiber.StatusBadRequest, "onboarding field not allowed"}},

	{services.ErrUnknownMealType, errorResponse{fiber.StatusBadRequest, "unknown meal type"}},
	{services.ErrFoodNameRequired, errorResponse{fiber.StatusBadRequest, "food name required"}},
	{services.ErrFoodNameTooLong, errorResponse{fiber.StatusBadRequest, "food name too long"}},
	{services.ErrFoodUnitTooLong, errorResponse{fiber.StatusBadRequest, "food unit too long"}},
	{services.ErrFoodQuantityInvalid, errorResponse{fiber.StatusBadRequest, "food quantity invalid"}},
	{services.ErrFoodNutrientNegative, errorResponse{fiber.StatusBadRequest, "food nutrient negative"}},
	{services.ErrFoodEntryNotFound, errorResponse{fiber.StatusNotFound, "entry not found"}},
	{services.ErrTargetsNotSet, errorResponse{fiber.StatusConflict, "targets not set"}},
	{services.ErrStoredMealSlotRetired, errorResponse{fiber.StatusConflict, "meal slot retired"}},

	{services.ErrRangeFromDateInvalid, errorResponse{fiber.StatusBadRequest, "invalid date"}},
	{services.ErrRangeToDateInvalid, errorResponse{fiber.StatusBadRequest, "invalid date"}},
	{services.ErrRangeInvalid, errorResponse{fiber.StatusBadRequest, "invalid range"}},

	{services.ErrAuthCredentialsInvalid, errorResponse{fiber.StatusBadRequest, "invalid input"}},
	{services.ErrAuthPasswordMismatch, errorResponse{fiber.StatusBadRequest, "password mismatch"}},
	{services.ErrAuthWeakPassword, errorResponse{fiber.StatusBadRequest, "weak password"}},
	{services.ErrAuthEmailTaken, errorResponse{fiber.StatusConflict, "email taken"}},
	{services.ErrAuthInvalidCredential, errorResponse{fiber.StatusUnauthorized, "invalid credentials"}},

	{services.ErrSettingsPasswordChangeInvalidInput, errorResponse{fiber.StatusBadRequest, "invalid input"}},
	{services.ErrSettingsPasswordMismatch, errorResponse{fiber.StatusBadRequest, "password mismatch"}},
	{services.ErrSettingsInvalidCurrentPassword, errorResponse{fiber.StatusUnauthorized, "invalid current password"}},
	{services.ErrSettingsNewPasswordMustDiffer, errorResponse{fiber.StatusBadRequest, "new password must differ"}},
	{services.ErrSettingsWeakPassword, errorResponse{fiber.StatusBadRequest, "weak password"}},
	{services.ErrSettingsPasswordMissing, errorResponse{fiber.StatusBadRequest, "password required"}},
	{services.ErrSettingsPasswordInvalid, errorResponse{fiber.StatusUnauthorized, "invalid current password"}},
}

func lookupServiceError(err error) (errorResponse, bool) {
	for _, candidate := range serviceErrorResponses {
		if errors.Is(err, candidate.target) {
			return candidate.response, true
		}
	}
	return errorResponse{}, false
}

// respondServiceError maps a domain sentinel to its status and code. Anything
// unmapped is logged and reported as an internal error.
func (handler *Handler) respondServiceError(c *fiber.Ctx, action string, err error) error {
	if response, ok := lookupServiceError(err); ok {
		return handler.apiError(c, response.status, response.code)
	}
	return handler.internalError(c, action, err)
}
