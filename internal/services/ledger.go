package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/terraincognita07/nutrilume/internal/models"
)

var (
	ErrInvalidTargetCalories = errors.New("target calories must be positive")
	ErrUnknownMealType       = errors.New("unknown meal type")
	ErrDuplicateMealSlot     = errors.New("duplicate meal slot")
)

type MealSummary struct {
	MealType      string                `json:"meal_type"`
	Entries       []models.FoodLogEntry `json:"entries"`
	TotalCalories float64               `json:"total_calories"`
}

type DailySummary struct {
	TargetCalories    int     `json:"target_calories"`
	TotalCalories     float64 `json:"total_calories"`
	TotalProteinG     float64 `json:"total_protein_g"`
	TotalCarbsG       float64 `json:"total_carbs_g"`
	TotalFatG         float64 `json:"total_fat_g"`
	RemainingCalories float64 `json:"remaining_calories"`
	ProgressPct       float64 `json:"progress_pct"`
}

type DayLedger struct {
	Meals []MealSummary `json:"meals"`
	Daily DailySummary  `json:"daily"`
}

// AggregateDay buckets a day's entries into the given meal slots and totals
// the day against the targets. Slots keep the caller's order, entries keep
// their input order. Daily figures are rounded to one decimal; meal totals and
// ProgressPct are not, and ProgressPct is never clamped.
func AggregateDay(entries []models.FoodLogEntry, targets NutritionTargets, mealSlots []string) (DayLedger, error) {
	if targets.Calories <= 0 {
		return DayLedger{}, ErrInvalidTargetCalories
	}

	meals := make([]MealSummary, 0, len(mealSlots))
	slotIndex := make(map[string]int, len(mealSlots))
	for _, slot := range mealSlots {
		if _, exists := slotIndex[slot]; exists {
			return DayLedger{}, fmt.Errorf("%w: %q", ErrDuplicateMealSlot, slot)
		}
		slotIndex[slot] = len(meals)
		meals = append(meals, MealSummary{
			MealType: slot,
			Entries:  []models.FoodLogEntry{},
		})
	}

	var calories, protein, carbs, fat float64
	for _, entry := range entries {
		index, ok := slotIndex[entry.MealType]
		if !ok {
			return DayLedger{}, fmt.Errorf("%w: %q", ErrUnknownMealType, entry.MealType)
		}
		meals[index].Entries = append(meals[index].Entries, entry)
		meals[index].TotalCalories += entry.Calories

		calories += entry.Calories
		protein += entry.ProteinG
		carbs += entry.CarbsG
		fat += entry.FatG
	}

	target := float64(targets.Calories)
	return DayLedger{
		Meals: meals,
		Daily: DailySummary{
			TargetCalories:    targets.Calories,
			TotalCalories:     roundToTenth(calories),
			TotalProteinG:     roundToTenth(protein),
			TotalCarbsG:       roundToTenth(carbs),
			TotalFatG:         roundToTenth(fat),
			RemainingCalories: roundToTenth(target - calories),
			ProgressPct:       calories * 100 / target,
		},
	}, nil
}

func roundToTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
