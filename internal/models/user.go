package models

import "time"

const (
	SexMale   = "male"
	SexFemale = "female"
	SexOther  = "other"
)

const (
	ActivitySedentary = "sedentary"
	ActivityLight     = "light"
	ActivityModerate  = "moderate"
	ActivityActive    = "active"
	ActivityExtreme   = "extreme"
)

const (
	GoalLoseWeight = "lose_weight"
	GoalMaintain   = "maintain"
	GoalGainMuscle = "gain_muscle"
)

type User struct {
	ID                 uint   `gorm:"primaryKey"`
	Email              string `gorm:"uniqueIndex;not null"`
	PasswordHash       string `gorm:"not null"`
	DisplayName        string `gorm:"not null;default:''"`
	MustChangePassword bool   `gorm:"not null;default:false"`

	Sex              string   `gorm:"not null;default:''"`
	AgeYears         int      `gorm:"not null;default:0"`
	HeightCm         float64  `gorm:"not null;default:0"`
	WeightKg         float64  `gorm:"not null;default:0"`
	ActivityLevel    string   `gorm:"not null;default:''"`
	Goal             string   `gorm:"not null;default:''"`
	TargetWeightKg   *float64 `gorm:"column:target_weight_kg"`
	TargetBodyFatPct *float64 `gorm:"column:target_body_fat_pct"`

	TargetCalories int `gorm:"column:target_calories;not null;default:0"`
	TargetProteinG int `gorm:"column:target_protein_g;not null;default:0"`
	TargetCarbsG   int `gorm:"column:target_carbs_g;not null;default:0"`
	TargetFatG     int `gorm:"column:target_fat_g;not null;default:0"`

	OnboardingCompleted bool            `gorm:"not null;default:false"`
	OnboardingDraft     OnboardingDraft `gorm:"serializer:json"`
	CreatedAt           time.Time       `gorm:"not null"`
}

// OnboardingDraft is the persisted form of the onboarding accumulator.
// Every answer stays optional until the flow is finalized.
type OnboardingDraft struct {
	CurrentStep      string   `json:"current_step,omitempty"`
	Sex              *string  `json:"sex,omitempty"`
	AgeYears         *int     `json:"age_years,omitempty"`
	HeightCm         *float64 `json:"height_cm,omitempty"`
	WeightKg         *float64 `json:"weight_kg,omitempty"`
	ActivityLevel    *string  `json:"activity_level,omitempty"`
	Goal             *string  `json:"goal,omitempty"`
	TargetWeightKg   *float64 `json:"target_weight_kg,omitempty"`
	TargetBodyFatPct *float64 `json:"target_body_fat_pct,omitempty"`
	Calories         *int     `json:"calories,omitempty"`
	ProteinG         *int     `json:"protein_g,omitempty"`
	CarbsG           *int     `json:"carbs_g,omitempty"`
	FatG             *int     `json:"fat_g,omitempty"`
	Completed        bool     `json:"completed,omitempty"`
}

func (user *User) HasTargets() bool {
	return user.TargetCalories > 0
}
