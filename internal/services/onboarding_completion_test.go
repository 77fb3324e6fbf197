package services

import (
	"testing"

	"github.com/terraincognita07/nutrilume/internal/models"
)

func TestIsCompletedFlagValue(t *testing.T) {
	yes := true
	no := false

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"letter t", "t", true},
		{"int one", 1, true},
		{"int64 one", int64(1), true},
		{"float one", 1.0, true},
		{"bool true", true, true},
		{"string true", "true", true},
		{"bytes t", []byte("t"), true},
		{"pointer true", &yes, true},
		{"nil", nil, false},
		{"int zero", 0, false},
		{"bool false", false, false},
		{"string false", "false", false},
		{"letter f", "f", false},
		{"upper TRUE", "TRUE", false},
		{"string one", "1", false},
		{"yes", "yes", false},
		{"int two", 2, false},
		{"pointer false", &no, false},
		{"nil pointer", (*bool)(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCompletedFlagValue(tt.value); got != tt.want {
				t.Fatalf("IsCompletedFlagValue(%#v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestIsOnboardingCompletedRecordChecksBothFields(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]any
		want   bool
	}{
		{"canonical true", map[string]any{"onboarding_completed": true}, true},
		{"legacy t", map[string]any{"completed": "t"}, true},
		{"legacy true with canonical false", map[string]any{"onboarding_completed": false, "completed": int64(1)}, true},
		{"both false", map[string]any{"onboarding_completed": int64(0), "completed": "f"}, false},
		{"missing fields", map[string]any{"email": "x@example.com"}, false},
		{"nil record", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOnboardingCompletedRecord(tt.record); got != tt.want {
				t.Fatalf("IsOnboardingCompletedRecord(%v) = %v, want %v", tt.record, got, tt.want)
			}
		})
	}
}

func TestIsOnboardingCompleted(t *testing.T) {
	if IsOnboardingCompleted(nil) {
		t.Fatal("expected nil user to be incomplete")
	}
	if IsOnboardingCompleted(&models.User{}) {
		t.Fatal("expected fresh user to be incomplete")
	}
	if !IsOnboardingCompleted(&models.User{OnboardingCompleted: true}) {
		t.Fatal("expected flagged user to be complete")
	}
}
