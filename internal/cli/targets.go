package cli

import (
	"encoding/json"
	"io"

	"github.com/terraincognita07/nutrilume/internal/services"
)

type TargetsOptions struct {
	Sex              string
	AgeYears         int
	Height           float64
	HeightUnit       string
	Weight           float64
	WeightUnit       string
	ActivityLevel    string
	Goal             string
	TargetBodyFatPct float64
}

// RunTargetsCommand computes nutrition targets offline and writes them as JSON.
func RunTargetsCommand(out io.Writer, options TargetsOptions) error {
	heightCm, err := services.ConvertHeightToCm(options.Height, options.HeightUnit)
	if err != nil {
		return err
	}
	weightKg, err := services.ConvertWeightToKg(options.Weight, options.WeightUnit)
	if err != nil {
		return err
	}

	goals := services.GoalProfile{
		ActivityLevel: options.ActivityLevel,
		Goal:          options.Goal,
	}
	if options.TargetBodyFatPct != 0 {
		bodyFat := options.TargetBodyFatPct
		goals.TargetBodyFatPct = &bodyFat
	}

	targets, err := services.ComputeTargets(services.BiometricProfile{
		Sex:      options.Sex,
		AgeYears: options.AgeYears,
		HeightCm: heightCm,
		WeightKg: weightKg,
	}, goals)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(targets)
}
