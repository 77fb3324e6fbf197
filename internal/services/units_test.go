package services

import (
	"errors"
	"math"
	"testing"
)

func TestConvertWeightToKg(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  float64
	}{
		{80, "", 80},
		{80, "kg", 80},
		{80, " KG ", 80},
		{176.37, "lb", 80.0001},
		{176.37, "lbs", 80.0001},
		{500, "g", 0.5},
	}

	for _, tt := range tests {
		got, err := ConvertWeightToKg(tt.value, tt.unit)
		if err != nil {
			t.Fatalf("ConvertWeightToKg(%v, %q) returned error: %v", tt.value, tt.unit, err)
		}
		if math.Abs(got-tt.want) > 1e-3 {
			t.Fatalf("ConvertWeightToKg(%v, %q) = %v, want %v", tt.value, tt.unit, got, tt.want)
		}
	}
}

func TestConvertKgToWeightUnitRoundTrips(t *testing.T) {
	kg, err := ConvertWeightToKg(150, UnitPound)
	if err != nil {
		t.Fatalf("to kg: %v", err)
	}
	pounds, err := ConvertKgToWeightUnit(kg, UnitPound)
	if err != nil {
		t.Fatalf("to lb: %v", err)
	}
	if math.Abs(pounds-150) > 1e-9 {
		t.Fatalf("expected 150 lb back, got %v", pounds)
	}
}

func TestConvertHeightToCm(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  float64
	}{
		{180, "", 180},
		{1.8, "m", 180},
		{70, "in", 177.8},
	}

	for _, tt := range tests {
		got, err := ConvertHeightToCm(tt.value, tt.unit)
		if err != nil {
			t.Fatalf("ConvertHeightToCm(%v, %q) returned error: %v", tt.value, tt.unit, err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("ConvertHeightToCm(%v, %q) = %v, want %v", tt.value, tt.unit, got, tt.want)
		}
	}
}

func TestUnitConversionRejectsUnknownUnits(t *testing.T) {
	if _, err := ConvertWeightToKg(10, "stone"); !errors.Is(err, ErrUnsupportedUnit) {
		t.Fatalf("expected ErrUnsupportedUnit for weight, got %v", err)
	}
	if _, err := ConvertHeightToCm(6, "ft"); !errors.Is(err, ErrUnsupportedUnit) {
		t.Fatalf("expected ErrUnsupportedUnit for height, got %v", err)
	}
	if _, err := ConvertKgToWeightUnit(10, "oz"); !errors.Is(err, ErrUnsupportedUnit) {
		t.Fatalf("expected ErrUnsupportedUnit for output unit, got %v", err)
	}
}
