package services

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	MaxFoodNameLength = 200
	MaxFoodUnitLength = 32
)

var (
	ErrFoodNameRequired     = errors.New("food name is required")
	ErrFoodNameTooLong      = errors.New("food name too long")
	ErrFoodUnitTooLong      = errors.New("food unit too long")
	ErrFoodQuantityInvalid  = errors.New("food quantity must be positive")
	ErrFoodNutrientNegative = errors.New("food nutrients must be non-negative")
)

type FoodEntryInput struct {
	MealType string
	Name     string
	Quantity float64
	Unit     string
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

func NormalizeFoodEntryInput(input FoodEntryInput, mealSlots []string) (FoodEntryInput, error) {
	input.MealType = strings.TrimSpace(input.MealType)
	if !containsString(mealSlots, input.MealType) {
		return input, ErrUnknownMealType
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return input, ErrFoodNameRequired
	}
	if utf8.RuneCountInString(input.Name) > MaxFoodNameLength {
		return input, ErrFoodNameTooLong
	}

	input.Unit = strings.TrimSpace(input.Unit)
	if utf8.RuneCountInString(input.Unit) > MaxFoodUnitLength {
		return input, ErrFoodUnitTooLong
	}

	if !(input.Quantity > 0) || math.IsInf(input.Quantity, 0) {
		return input, ErrFoodQuantityInvalid
	}
	for _, value := range []float64{input.Calories, input.ProteinG, input.CarbsG, input.FatG} {
		if !(value >= 0) || math.IsInf(value, 0) {
			return input, ErrFoodNutrientNegative
		}
	}
	return input, nil
}

func containsString(values []string, needle string) bool {
	for _, value := range values {
		if value == needle {
			return true
		}
	}
	return false
}
