package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/nutrilume/internal/models"
)

const (
	OnboardingStepBasicInfo = "basic-info"
	OnboardingStepGoals     = "goals"
	OnboardingStepNutrition = "nutrition"
	OnboardingStepCompleted = "completed"
)

var onboardingSteps = []string{
	OnboardingStepBasicInfo,
	OnboardingStepGoals,
	OnboardingStepNutrition,
	OnboardingStepCompleted,
}

var (
	ErrOnboardingStepUnknown     = errors.New("unknown onboarding step")
	ErrOnboardingStepOutOfOrder  = errors.New("onboarding step out of order")
	ErrOnboardingIncomplete      = errors.New("onboarding incomplete")
	ErrOnboardingAlreadyFinished = errors.New("onboarding already finished")
	ErrInvalidTargets            = errors.New("invalid nutrition targets")
)

// OnboardingState is the accumulator carried across onboarding steps.
type OnboardingState = models.OnboardingDraft

// OnboardingStepData holds the answers submitted with one step. Nil fields
// leave the accumulated value untouched.
type OnboardingStepData struct {
	Sex              *string  `json:"sex"`
	AgeYears         *int     `json:"age_years"`
	HeightCm         *float64 `json:"height_cm"`
	WeightKg         *float64 `json:"weight_kg"`
	ActivityLevel    *string  `json:"activity_level"`
	Goal             *string  `json:"goal"`
	TargetWeightKg   *float64 `json:"target_weight_kg"`
	TargetBodyFatPct *float64 `json:"target_body_fat_pct"`
	Calories         *int     `json:"calories"`
	ProteinG         *int     `json:"protein_g"`
	CarbsG           *int     `json:"carbs_g"`
	FatG             *int     `json:"fat_g"`
}

type ProfileUpdatePayload struct {
	Biometrics          BiometricProfile `json:"biometrics"`
	Goals               GoalProfile      `json:"goals"`
	Targets             NutritionTargets `json:"targets"`
	OnboardingCompleted bool             `json:"onboarding_completed"`
}

func NewOnboardingState() OnboardingState {
	return OnboardingState{CurrentStep: OnboardingStepBasicInfo}
}

// ApplyOnboardingStep merges the fields a step owns into the state and
// advances CurrentStep. A step ahead of CurrentStep is rejected. Resubmitting
// an earlier step keeps progress unless it changes a profile answer after
// targets were set: the targets are then dropped and the flow returns to the
// nutrition step. On the nutrition step the computed targets are filled in
// first so that explicit values in data override them.
func ApplyOnboardingStep(state OnboardingState, stepID string, data OnboardingStepData) (OnboardingState, error) {
	if state.Completed {
		return state, ErrOnboardingAlreadyFinished
	}

	stepPosition, ok := onboardingStepPosition(stepID)
	if !ok || stepID == OnboardingStepCompleted {
		return state, fmt.Errorf("%w: %q", ErrOnboardingStepUnknown, stepID)
	}
	currentPosition, ok := onboardingStepPosition(state.CurrentStep)
	if !ok {
		currentPosition = 0
	}
	if stepPosition > currentPosition {
		return state, fmt.Errorf("%w: %q before %q", ErrOnboardingStepOutOfOrder, stepID, onboardingSteps[currentPosition])
	}

	next := state
	if stepID == OnboardingStepNutrition {
		suggested, err := SuggestOnboardingTargets(next)
		if err != nil {
			return state, err
		}
		next.Calories = intPointer(suggested.Calories)
		next.ProteinG = intPointer(suggested.ProteinG)
		next.CarbsG = intPointer(suggested.CarbsG)
		next.FatG = intPointer(suggested.FatG)
	}

	mergeOnboardingStepData(&next, stepID, data)

	next.CurrentStep = onboardingSteps[currentPosition]
	if stepPosition+1 > currentPosition {
		next.CurrentStep = onboardingSteps[stepPosition+1]
	}

	if stepID != OnboardingStepNutrition && hasOnboardingTargets(state) && onboardingProfileChanged(state, next) {
		next.Calories = nil
		next.ProteinG = nil
		next.CarbsG = nil
		next.FatG = nil
		next.CurrentStep = OnboardingStepNutrition
	}
	return next, nil
}

// SuggestOnboardingTargets runs the target calculation over the basic-info
// and goals answers collected so far.
func SuggestOnboardingTargets(state OnboardingState) (NutritionTargets, error) {
	biometrics, goals, err := onboardingProfiles(state)
	if err != nil {
		return NutritionTargets{}, err
	}
	return ComputeTargets(biometrics, goals)
}

// FinalizeOnboarding marks the state completed and returns the payload to
// persist. Every answer must be present and valid.
func FinalizeOnboarding(state OnboardingState) (ProfileUpdatePayload, error) {
	if state.Completed {
		return ProfileUpdatePayload{}, ErrOnboardingAlreadyFinished
	}

	biometrics, goals, err := onboardingProfiles(state)
	if err != nil {
		return ProfileUpdatePayload{}, err
	}
	if err := ValidateBiometricProfile(biometrics); err != nil {
		return ProfileUpdatePayload{}, err
	}
	if err := ValidateGoalProfile(goals); err != nil {
		return ProfileUpdatePayload{}, err
	}

	missing := missingOnboardingFields(state, "calories", "protein_g", "carbs_g", "fat_g")
	if len(missing) > 0 {
		return ProfileUpdatePayload{}, fmt.Errorf("%w: missing %v", ErrOnboardingIncomplete, missing)
	}
	targets := NutritionTargets{
		Calories: *state.Calories,
		ProteinG: *state.ProteinG,
		CarbsG:   *state.CarbsG,
		FatG:     *state.FatG,
	}
	if err := ValidateNutritionTargets(targets); err != nil {
		return ProfileUpdatePayload{}, err
	}

	return ProfileUpdatePayload{
		Biometrics:          biometrics,
		Goals:               goals,
		Targets:             targets,
		OnboardingCompleted: true,
	}, nil
}

func ValidateNutritionTargets(targets NutritionTargets) error {
	if targets.Calories <= 0 {
		return fmt.Errorf("%w: calories %d", ErrInvalidTargets, targets.Calories)
	}
	if targets.ProteinG < 0 || targets.CarbsG < 0 || targets.FatG < 0 {
		return fmt.Errorf("%w: negative macro", ErrInvalidTargets)
	}
	return nil
}

func onboardingProfiles(state OnboardingState) (BiometricProfile, GoalProfile, error) {
	missing := missingOnboardingFields(state, "sex", "age_years", "height_cm", "weight_kg", "activity_level", "goal")
	if len(missing) > 0 {
		return BiometricProfile{}, GoalProfile{}, fmt.Errorf("%w: missing %v", ErrOnboardingIncomplete, missing)
	}

	biometrics := BiometricProfile{
		Sex:      *state.Sex,
		AgeYears: *state.AgeYears,
		HeightCm: *state.HeightCm,
		WeightKg: *state.WeightKg,
	}
	goals := GoalProfile{
		ActivityLevel:    *state.ActivityLevel,
		Goal:             *state.Goal,
		TargetWeightKg:   state.TargetWeightKg,
		TargetBodyFatPct: state.TargetBodyFatPct,
	}
	return biometrics, goals, nil
}

func missingOnboardingFields(state OnboardingState, fields ...string) []string {
	present := map[string]bool{
		"sex":            state.Sex != nil,
		"age_years":      state.AgeYears != nil,
		"height_cm":      state.HeightCm != nil,
		"weight_kg":      state.WeightKg != nil,
		"activity_level": state.ActivityLevel != nil,
		"goal":           state.Goal != nil,
		"calories":       state.Calories != nil,
		"protein_g":      state.ProteinG != nil,
		"carbs_g":        state.CarbsG != nil,
		"fat_g":          state.FatG != nil,
	}

	missing := make([]string, 0)
	for _, field := range fields {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	return missing
}

func mergeOnboardingStepData(state *OnboardingState, stepID string, data OnboardingStepData) {
	switch stepID {
	case OnboardingStepBasicInfo:
		mergeOptional(&state.Sex, data.Sex)
		mergeOptional(&state.AgeYears, data.AgeYears)
		mergeOptional(&state.HeightCm, data.HeightCm)
		mergeOptional(&state.WeightKg, data.WeightKg)
	case OnboardingStepGoals:
		mergeOptional(&state.ActivityLevel, data.ActivityLevel)
		mergeOptional(&state.Goal, data.Goal)
		mergeOptional(&state.TargetWeightKg, data.TargetWeightKg)
		mergeOptional(&state.TargetBodyFatPct, data.TargetBodyFatPct)
	case OnboardingStepNutrition:
		mergeOptional(&state.Calories, data.Calories)
		mergeOptional(&state.ProteinG, data.ProteinG)
		mergeOptional(&state.CarbsG, data.CarbsG)
		mergeOptional(&state.FatG, data.FatG)
	}
}

func mergeOptional[T any](target **T, value *T) {
	if value != nil {
		*target = value
	}
}

func hasOnboardingTargets(state OnboardingState) bool {
	return state.Calories != nil || state.ProteinG != nil || state.CarbsG != nil || state.FatG != nil
}

func onboardingProfileChanged(before OnboardingState, after OnboardingState) bool {
	return !samePointerValue(before.Sex, after.Sex) ||
		!samePointerValue(before.AgeYears, after.AgeYears) ||
		!samePointerValue(before.HeightCm, after.HeightCm) ||
		!samePointerValue(before.WeightKg, after.WeightKg) ||
		!samePointerValue(before.ActivityLevel, after.ActivityLevel) ||
		!samePointerValue(before.Goal, after.Goal) ||
		!samePointerValue(before.TargetWeightKg, after.TargetWeightKg) ||
		!samePointerValue(before.TargetBodyFatPct, after.TargetBodyFatPct)
}

func samePointerValue[T comparable](left *T, right *T) bool {
	if left == nil || right == nil {
		return left == right
	}
	return *left == *right
}

func onboardingStepPosition(stepID string) (int, bool) {
	for index, step := range onboardingSteps {
		if step == stepID {
			return index, true
		}
	}
	return 0, false
}

func intPointer(value int) *int {
	return &value
}
