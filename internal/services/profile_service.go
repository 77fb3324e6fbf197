package services

import "github.com/terraincognita07/nutrilume/internal/models"

type ProfileUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateByID(userID uint, updates map[string]any) error
}

type ProfileService struct {
	users ProfileUserRepository
}

func NewProfileService(users ProfileUserRepository) *ProfileService {
	return &ProfileService{users: users}
}

func (service *ProfileService) LoadProfile(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// UpdateProfile saves edited biometrics and goals and recomputes the targets
// from them. The previous targets are replaced as a whole.
func (service *ProfileService) UpdateProfile(userID uint, biometrics BiometricProfile, goals GoalProfile) (NutritionTargets, error) {
	targets, err := ComputeTargets(biometrics, goals)
	if err != nil {
		return NutritionTargets{}, err
	}

	updates := ProfileUpdateColumns(ProfileUpdatePayload{
		Biometrics: biometrics,
		Goals:      goals,
		Targets:    targets,
	})
	delete(updates, "onboarding_completed")
	if err := service.users.UpdateByID(userID, updates); err != nil {
		return NutritionTargets{}, err
	}
	return targets, nil
}

func (service *ProfileService) ReplaceTargets(userID uint, targets NutritionTargets) error {
	if err := ValidateNutritionTargets(targets); err != nil {
		return err
	}
	return service.users.UpdateByID(userID, targetColumns(targets))
}

func UserTargets(user *models.User) NutritionTargets {
	return NutritionTargets{
		Calories: user.TargetCalories,
		ProteinG: user.TargetProteinG,
		CarbsG:   user.TargetCarbsG,
		FatG:     user.TargetFatG,
	}
}

func UserBiometrics(user *models.User) BiometricProfile {
	return BiometricProfile{
		Sex:      user.Sex,
		AgeYears: user.AgeYears,
		HeightCm: user.HeightCm,
		WeightKg: user.WeightKg,
	}
}

func UserGoals(user *models.User) GoalProfile {
	return GoalProfile{
		ActivityLevel:    user.ActivityLevel,
		Goal:             user.Goal,
		TargetWeightKg:   user.TargetWeightKg,
		TargetBodyFatPct: user.TargetBodyFatPct,
	}
}

// ProfileUpdateColumns maps a payload onto user columns. The four target
// columns are always written together.
func ProfileUpdateColumns(payload ProfileUpdatePayload) map[string]any {
	updates := map[string]any{
		"sex":                  payload.Biometrics.Sex,
		"age_years":            payload.Biometrics.AgeYears,
		"height_cm":            payload.Biometrics.HeightCm,
		"weight_kg":            payload.Biometrics.WeightKg,
		"activity_level":       payload.Goals.ActivityLevel,
		"goal":                 payload.Goals.Goal,
		"target_weight_kg":     payload.Goals.TargetWeightKg,
		"target_body_fat_pct":  payload.Goals.TargetBodyFatPct,
		"onboarding_completed": payload.OnboardingCompleted,
	}
	for column, value := range targetColumns(payload.Targets) {
		updates[column] = value
	}
	return updates
}

func targetColumns(targets NutritionTargets) map[string]any {
	return map[string]any{
		"target_calories":  targets.Calories,
		"target_protein_g": targets.ProteinG,
		"target_carbs_g":   targets.CarbsG,
		"target_fat_g":     targets.FatG,
	}
}
