package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/nutrilume/internal/models"
)

var (
	ErrOnboardingFieldRequired   = errors.New("onboarding field required")
	ErrOnboardingFieldNotAllowed = errors.New("onboarding field not allowed for step")
)

type OnboardingUserRepository interface {
	FindByID(userID uint) (models.User, error)
	SaveOnboardingDraft(userID uint, draft models.OnboardingDraft) error
	CompleteOnboarding(userID uint, updates map[string]any, initialWeight models.WeightEntry) error
}

type OnboardingService struct {
	users OnboardingUserRepository
}

func NewOnboardingService(users OnboardingUserRepository) *OnboardingService {
	return &OnboardingService{users: users}
}

func (service *OnboardingService) LoadState(userID uint) (OnboardingState, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return OnboardingState{}, err
	}
	return onboardingStateForUser(&user), nil
}

// SuggestedTargets returns the computed targets once the flow has reached the
// nutrition step, and nil before that.
func (service *OnboardingService) SuggestedTargets(state OnboardingState) *NutritionTargets {
	if state.CurrentStep != OnboardingStepNutrition && state.CurrentStep != OnboardingStepCompleted {
		return nil
	}
	suggested, err := SuggestOnboardingTargets(state)
	if err != nil {
		return nil
	}
	return &suggested
}

func (service *OnboardingService) SubmitStep(userID uint, stepID string, data OnboardingStepData) (OnboardingState, error) {
	if err := ValidateOnboardingStepData(stepID, data); err != nil {
		return OnboardingState{}, err
	}

	user, err := service.users.FindByID(userID)
	if err != nil {
		return OnboardingState{}, err
	}
	if IsOnboardingCompleted(&user) {
		return OnboardingState{}, ErrOnboardingAlreadyFinished
	}

	next, err := ApplyOnboardingStep(onboardingStateForUser(&user), stepID, data)
	if err != nil {
		return OnboardingState{}, err
	}
	if err := service.users.SaveOnboardingDraft(userID, next); err != nil {
		return OnboardingState{}, err
	}
	return next, nil
}

// Complete finalizes the accumulated answers, writes the profile, targets and
// the first weight entry in one transaction and discards the draft.
func (service *OnboardingService) Complete(userID uint, today time.Time, location *time.Location) (ProfileUpdatePayload, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return ProfileUpdatePayload{}, err
	}
	if IsOnboardingCompleted(&user) {
		return ProfileUpdatePayload{}, ErrOnboardingAlreadyFinished
	}

	payload, err := FinalizeOnboarding(onboardingStateForUser(&user))
	if err != nil {
		return ProfileUpdatePayload{}, err
	}

	initialWeight := models.WeightEntry{
		UserID:   userID,
		Day:      DateAtLocation(today, location),
		WeightKg: payload.Biometrics.WeightKg,
	}
	if err := service.users.CompleteOnboarding(userID, ProfileUpdateColumns(payload), initialWeight); err != nil {
		return ProfileUpdatePayload{}, err
	}
	return payload, nil
}

// ValidateOnboardingStepData checks the fields a single step is responsible for
// and rejects answers that belong to another step.
func ValidateOnboardingStepData(stepID string, data OnboardingStepData) error {
	if _, ok := onboardingStepPosition(stepID); !ok || stepID == OnboardingStepCompleted {
		return fmt.Errorf("%w: %q", ErrOnboardingStepUnknown, stepID)
	}
	if foreign := foreignOnboardingFields(stepID, data); len(foreign) > 0 {
		return fmt.Errorf("%w: %s %v", ErrOnboardingFieldNotAllowed, stepID, foreign)
	}

	switch stepID {
	case OnboardingStepBasicInfo:
		if data.Sex == nil || data.AgeYears == nil || data.HeightCm == nil || data.WeightKg == nil {
			return fmt.Errorf("%w: sex, age_years, height_cm and weight_kg", ErrOnboardingFieldRequired)
		}
		return ValidateBiometricProfile(BiometricProfile{
			Sex:      *data.Sex,
			AgeYears: *data.AgeYears,
			HeightCm: *data.HeightCm,
			WeightKg: *data.WeightKg,
		})
	case OnboardingStepGoals:
		if data.ActivityLevel == nil || data.Goal == nil {
			return fmt.Errorf("%w: activity_level and goal", ErrOnboardingFieldRequired)
		}
		return ValidateGoalProfile(GoalProfile{
			ActivityLevel:    *data.ActivityLevel,
			Goal:             *data.Goal,
			TargetWeightKg:   data.TargetWeightKg,
			TargetBodyFatPct: data.TargetBodyFatPct,
		})
	case OnboardingStepNutrition:
		if data.Calories != nil && *data.Calories <= 0 {
			return fmt.Errorf("%w: calories %d", ErrInvalidTargets, *data.Calories)
		}
		for _, macro := range []*int{data.ProteinG, data.CarbsG, data.FatG} {
			if macro != nil && *macro < 0 {
				return fmt.Errorf("%w: negative macro", ErrInvalidTargets)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrOnboardingStepUnknown, stepID)
	}
}

func foreignOnboardingFields(stepID string, data OnboardingStepData) []string {
	owners := []struct {
		field   string
		step    string
		present bool
	}{
		{"sex", OnboardingStepBasicInfo, data.Sex != nil},
		{"age_years", OnboardingStepBasicInfo, data.AgeYears != nil},
		{"height_cm", OnboardingStepBasicInfo, data.HeightCm != nil},
		{"weight_kg", OnboardingStepBasicInfo, data.WeightKg != nil},
		{"activity_level", OnboardingStepGoals, data.ActivityLevel != nil},
		{"goal", OnboardingStepGoals, data.Goal != nil},
		{"target_weight_kg", OnboardingStepGoals, data.TargetWeightKg != nil},
		{"target_body_fat_pct", OnboardingStepGoals, data.TargetBodyFatPct != nil},
		{"calories", OnboardingStepNutrition, data.Calories != nil},
		{"protein_g", OnboardingStepNutrition, data.ProteinG != nil},
		{"carbs_g", OnboardingStepNutrition, data.CarbsG != nil},
		{"fat_g", OnboardingStepNutrition, data.FatG != nil},
	}

	foreign := make([]string, 0)
	for _, owner := range owners {
		if owner.present && owner.step != stepID {
			foreign = append(foreign, owner.field)
		}
	}
	return foreign
}

func onboardingStateForUser(user *models.User) OnboardingState {
	state := user.OnboardingDraft
	if state.CurrentStep == "" {
		state.CurrentStep = OnboardingStepBasicInfo
	}
	return state
}
