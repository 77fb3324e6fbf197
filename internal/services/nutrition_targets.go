package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/terraincognita07/nutrilume/internal/models"
)

var (
	ErrInvalidSex           = errors.New("invalid sex")
	ErrInvalidActivityLevel = errors.New("invalid activity level")
	ErrInvalidGoal          = errors.New("invalid goal")
	ErrAgeOutOfRange        = errors.New("age out of range")
	ErrHeightOutOfRange     = errors.New("height out of range")
	ErrWeightOutOfRange     = errors.New("weight out of range")
	ErrBodyFatOutOfRange    = errors.New("target body fat out of range")
	ErrNonPositiveBMR       = errors.New("basal metabolic rate must be positive")
)

const (
	MinAgeYears = 14
	MaxAgeYears = 120
	MinHeightCm = 100
	MaxHeightCm = 250
	MinWeightKg = 30
	MaxWeightKg = 300
)

const (
	proteinCaloriesShare = 0.30
	carbsCaloriesShare   = 0.40
	fatCaloriesShare     = 0.30

	proteinKcalPerGram = 4
	carbsKcalPerGram   = 4
	fatKcalPerGram     = 9

	loseWeightFactor = 0.85
	gainMuscleFactor = 1.10
)

// Mifflin-St Jeor sex constants. "other" has no published constant and
// uses the mean of the two.
const (
	bmrMaleOffset   = 5.0
	bmrFemaleOffset = -161.0
	bmrOtherOffset  = (bmrMaleOffset + bmrFemaleOffset) / 2
)

var activityMultipliers = map[string]float64{
	models.ActivitySedentary: 1.2,
	models.ActivityLight:     1.375,
	models.ActivityModerate:  1.55,
	models.ActivityActive:    1.725,
	models.ActivityExtreme:   1.9,
}

type BiometricProfile struct {
	Sex      string  `json:"sex"`
	AgeYears int     `json:"age_years"`
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

type GoalProfile struct {
	ActivityLevel    string   `json:"activity_level"`
	Goal             string   `json:"goal"`
	TargetWeightKg   *float64 `json:"target_weight_kg,omitempty"`
	TargetBodyFatPct *float64 `json:"target_body_fat_pct,omitempty"`
}

type NutritionTargets struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// ComputeTargets derives daily calorie and macro targets. It is pure and
// deterministic; any error is an input validation failure.
func ComputeTargets(biometrics BiometricProfile, goals GoalProfile) (NutritionTargets, error) {
	if err := ValidateGoalProfile(goals); err != nil {
		return NutritionTargets{}, err
	}

	bmr, err := BasalMetabolicRate(biometrics)
	if err != nil {
		return NutritionTargets{}, err
	}

	multiplier := activityMultipliers[goals.ActivityLevel]
	tdee := int(math.Round(bmr * multiplier))
	return MacroSplit(AdjustCaloriesForGoal(tdee, goals.Goal)), nil
}

func BasalMetabolicRate(biometrics BiometricProfile) (float64, error) {
	if err := ValidateBiometricProfile(biometrics); err != nil {
		return 0, err
	}

	bmr := 10*biometrics.WeightKg + 6.25*biometrics.HeightCm - 5*float64(biometrics.AgeYears)
	switch biometrics.Sex {
	case models.SexMale:
		bmr += bmrMaleOffset
	case models.SexFemale:
		bmr += bmrFemaleOffset
	default:
		bmr += bmrOtherOffset
	}

	if bmr <= 0 {
		return 0, ErrNonPositiveBMR
	}
	return bmr, nil
}

func AdjustCaloriesForGoal(tdee int, goal string) int {
	switch goal {
	case models.GoalLoseWeight:
		return int(math.Round(float64(tdee) * loseWeightFactor))
	case models.GoalGainMuscle:
		return int(math.Round(float64(tdee) * gainMuscleFactor))
	default:
		return tdee
	}
}

// MacroSplit allocates calories 30/40/30 across protein/carbs/fat. Each gram
// figure is rounded on its own, so the macros may drift a few kcal from the total.
func MacroSplit(calories int) NutritionTargets {
	total := float64(calories)
	return NutritionTargets{
		Calories: calories,
		ProteinG: int(math.Round(total * proteinCaloriesShare / proteinKcalPerGram)),
		CarbsG:   int(math.Round(total * carbsCaloriesShare / carbsKcalPerGram)),
		FatG:     int(math.Round(total * fatCaloriesShare / fatKcalPerGram)),
	}
}

func (targets NutritionTargets) MacroCalories() int {
	return targets.ProteinG*proteinKcalPerGram + targets.CarbsG*carbsKcalPerGram + targets.FatG*fatKcalPerGram
}

func ActivityMultiplier(level string) (float64, bool) {
	multiplier, ok := activityMultipliers[level]
	return multiplier, ok
}

func IsValidSex(value string) bool {
	switch value {
	case models.SexMale, models.SexFemale, models.SexOther:
		return true
	default:
		return false
	}
}

func IsValidGoal(value string) bool {
	switch value {
	case models.GoalLoseWeight, models.GoalMaintain, models.GoalGainMuscle:
		return true
	default:
		return false
	}
}

func ValidateBiometricProfile(biometrics BiometricProfile) error {
	if !IsValidSex(biometrics.Sex) {
		return fmt.Errorf("%w: %q", ErrInvalidSex, biometrics.Sex)
	}
	if biometrics.AgeYears < MinAgeYears || biometrics.AgeYears > MaxAgeYears {
		return fmt.Errorf("%w: %d", ErrAgeOutOfRange, biometrics.AgeYears)
	}
	if biometrics.HeightCm < MinHeightCm || biometrics.HeightCm > MaxHeightCm {
		return fmt.Errorf("%w: %g", ErrHeightOutOfRange, biometrics.HeightCm)
	}
	if biometrics.WeightKg < MinWeightKg || biometrics.WeightKg > MaxWeightKg {
		return fmt.Errorf("%w: %g", ErrWeightOutOfRange, biometrics.WeightKg)
	}
	return nil
}

func ValidateGoalProfile(goals GoalProfile) error {
	if _, ok := activityMultipliers[goals.ActivityLevel]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidActivityLevel, goals.ActivityLevel)
	}
	if !IsValidGoal(goals.Goal) {
		return fmt.Errorf("%w: %q", ErrInvalidGoal, goals.Goal)
	}
	if goals.TargetWeightKg != nil {
		if *goals.TargetWeightKg < MinWeightKg || *goals.TargetWeightKg > MaxWeightKg {
			return fmt.Errorf("%w: target %g", ErrWeightOutOfRange, *goals.TargetWeightKg)
		}
	}
	if goals.TargetBodyFatPct != nil {
		if *goals.TargetBodyFatPct <= 0 || *goals.TargetBodyFatPct >= 100 {
			return fmt.Errorf("%w: %g", ErrBodyFatOutOfRange, *goals.TargetBodyFatPct)
		}
	}
	return nil
}
