package api

import (
	"math"
	"net/http"
	"testing"

	"github.com/terraincognita07/nutrilume/internal/services"
)

func TestPreviewTargetsDoesNotPersist(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "preview@example.com", true, 2000)
	cookie := loginAndExtractAuthCookie(t, app, "preview@example.com", testPassword)

	response := doJSON(t, app, http.MethodPost, "/api/targets/preview", cookie, map[string]any{
		"sex":            "male",
		"age_years":      30,
		"height":         180,
		"weight":         80,
		"activity_level": "moderate",
		"goal":           "maintain",
	})
	expectStatus(t, response, http.StatusOK)

	payload := struct {
		Targets       services.NutritionTargets `json:"targets"`
		MacroCalories int                       `json:"macro_calories"`
	}{}
	decodeJSON(t, response, &payload)
	expected := services.NutritionTargets{Calories: 2759, ProteinG: 207, CarbsG: 276, FatG: 92}
	if payload.Targets != expected {
		t.Fatalf("expected %+v, got %+v", expected, payload.Targets)
	}
	if payload.MacroCalories != 2760 {
		t.Fatalf("expected macro calories 2760, got %d", payload.MacroCalories)
	}

	profile := profileResponse{}
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/profile", cookie, nil), &profile)
	if profile.Targets.Calories != 2000 {
		t.Fatalf("expected stored targets untouched, got %+v", profile.Targets)
	}
}

func TestUpdateProfileRecomputesTargets(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "profile@example.com", true, 2000)
	cookie := loginAndExtractAuthCookie(t, app, "profile@example.com", testPassword)

	response := doJSON(t, app, http.MethodPut, "/api/profile", cookie, map[string]any{
		"sex":            "male",
		"age_years":      30,
		"height":         1.8,
		"height_unit":    "m",
		"weight":         80,
		"weight_unit":    "kg",
		"activity_level": "moderate",
		"goal":           "gain_muscle",
		"target_weight":  85,
	})
	expectStatus(t, response, http.StatusOK)

	profile := profileResponse{}
	decodeJSON(t, response, &profile)
	if math.Abs(profile.Biometrics.HeightCm-180) > 1e-9 {
		t.Fatalf("expected height 180 cm, got %v", profile.Biometrics.HeightCm)
	}
	if profile.Targets.Calories != 3035 || profile.Targets.ProteinG != 228 {
		t.Fatalf("expected gain targets 3035 kcal / 228 g protein, got %+v", profile.Targets)
	}
	if profile.Goals.TargetWeightKg == nil || *profile.Goals.TargetWeightKg != 85 {
		t.Fatalf("expected target weight 85, got %v", profile.Goals.TargetWeightKg)
	}
	if !profile.OnboardingCompleted {
		t.Fatal("expected profile edit to keep onboarding completed")
	}

	invalid := doJSON(t, app, http.MethodPut, "/api/profile", cookie, map[string]any{
		"sex":            "male",
		"age_years":      30,
		"height":         180,
		"weight":         80,
		"activity_level": "couch",
		"goal":           "maintain",
	})
	expectStatus(t, invalid, http.StatusBadRequest)
	if code := readAPIError(t, invalid); code != "invalid activity level" {
		t.Fatalf("expected invalid activity level, got %q", code)
	}
}

func TestReplaceTargetsValidatesInput(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "targets@example.com", true, 2000)
	cookie := loginAndExtractAuthCookie(t, app, "targets@example.com", testPassword)

	rejected := doJSON(t, app, http.MethodPut, "/api/profile/targets", cookie, map[string]any{
		"calories":  0,
		"protein_g": 100,
	})
	expectStatus(t, rejected, http.StatusBadRequest)
	if code := readAPIError(t, rejected); code != "invalid targets" {
		t.Fatalf("expected invalid targets, got %q", code)
	}

	accepted := doJSON(t, app, http.MethodPut, "/api/profile/targets", cookie, map[string]any{
		"calories":  1800,
		"protein_g": 150,
		"carbs_g":   160,
		"fat_g":     60,
	})
	expectStatus(t, accepted, http.StatusOK)

	profile := profileResponse{}
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/profile", cookie, nil), &profile)
	expected := services.NutritionTargets{Calories: 1800, ProteinG: 150, CarbsG: 160, FatG: 60}
	if profile.Targets != expected {
		t.Fatalf("expected %+v, got %+v", expected, profile.Targets)
	}
}
