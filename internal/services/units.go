package services

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedUnit = errors.New("unsupported unit")

const (
	UnitKilogram   = "kg"
	UnitPound      = "lb"
	UnitCentimeter = "cm"
	UnitMeter      = "m"
	UnitInch       = "in"
)

// base = kg
var weightUnitFactors = map[string]float64{
	"kg":  1,
	"g":   0.001,
	"lb":  0.45359237,
	"lbs": 0.45359237,
}

// base = cm
var heightUnitFactors = map[string]float64{
	"cm": 1,
	"m":  100,
	"in": 2.54,
}

func ConvertWeightToKg(value float64, unit string) (float64, error) {
	factor, ok := weightUnitFactors[normalizeUnit(unit, UnitKilogram)]
	if !ok {
		return 0, fmt.Errorf("%w: weight %q", ErrUnsupportedUnit, unit)
	}
	return value * factor, nil
}

func ConvertKgToWeightUnit(valueKg float64, unit string) (float64, error) {
	factor, ok := weightUnitFactors[normalizeUnit(unit, UnitKilogram)]
	if !ok {
		return 0, fmt.Errorf("%w: weight %q", ErrUnsupportedUnit, unit)
	}
	return valueKg / factor, nil
}

func ConvertHeightToCm(value float64, unit string) (float64, error) {
	factor, ok := heightUnitFactors[normalizeUnit(unit, UnitCentimeter)]
	if !ok {
		return 0, fmt.Errorf("%w: height %q", ErrUnsupportedUnit, unit)
	}
	return value * factor, nil
}

func normalizeUnit(unit string, fallback string) string {
	normalized := strings.ToLower(strings.TrimSpace(unit))
	if normalized == "" {
		return fallback
	}
	return normalized
}
