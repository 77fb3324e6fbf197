package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestFoodEntryLifecycleAndDaySummary(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "ledger@example.com", true, 2000)
	cookie := loginAndExtractAuthCookie(t, app, "ledger@example.com", testPassword)

	lunch := doJSON(t, app, http.MethodPost, "/api/days/2026-03-02/entries", cookie, map[string]any{
		"meal_type": "Almoço",
		"name":      "Arroz e feijão",
		"quantity":  1,
		"unit":      "prato",
		"calories":  650.25,
		"protein_g": 22.5,
		"carbs_g":   95,
		"fat_g":     12.3,
	})
	expectStatus(t, lunch, http.StatusCreated)
	created := foodEntryView{}
	decodeJSON(t, lunch, &created)
	if created.ID == 0 || created.Date != "2026-03-02" {
		t.Fatalf("expected created entry on 2026-03-02, got %+v", created)
	}

	breakfast := doJSON(t, app, http.MethodPost, "/api/days/2026-03-02/entries", cookie, map[string]any{
		"meal_type": "Café da Manhã",
		"name":      "Pão",
		"quantity":  2,
		"calories":  300,
		"protein_g": 10,
		"carbs_g":   55,
		"fat_g":     4,
	})
	expectStatus(t, breakfast, http.StatusCreated)

	otherDay := doJSON(t, app, http.MethodPost, "/api/days/2026-03-03/entries", cookie, map[string]any{
		"meal_type": "Jantar",
		"name":      "Sopa",
		"quantity":  1,
		"calories":  999,
	})
	expectStatus(t, otherDay, http.StatusCreated)

	entries := []foodEntryView{}
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/days/2026-03-02/entries", cookie, nil), &entries)
	if len(entries) != 2 || entries[0].Name != "Arroz e feijão" {
		t.Fatalf("expected 2 entries in insertion order, got %+v", entries)
	}

	summary := daySummaryResponse{}
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/days/2026-03-02/summary", cookie, nil, "Accept-Language", "en-US"), &summary)

	if len(summary.Meals) != 4 {
		t.Fatalf("expected one summary per configured slot, got %d", len(summary.Meals))
	}
	if summary.Meals[0].MealType != "Café da Manhã" || summary.Meals[0].Label != "Breakfast" {
		t.Fatalf("expected first slot breakfast with english label, got %+v", summary.Meals[0])
	}
	if summary.Meals[1].TotalCalories != 650.25 {
		t.Fatalf("expected lunch total 650.25, got %v", summary.Meals[1].TotalCalories)
	}
	if summary.Meals[2].Entries == nil || len(summary.Meals[2].Entries) != 0 {
		t.Fatalf("expected empty snack slot to be present with no entries, got %+v", summary.Meals[2])
	}
	if summary.Daily.TotalCalories != 950.3 {
		t.Fatalf("expected daily calories 950.3, got %v", summary.Daily.TotalCalories)
	}
	if summary.Daily.RemainingCalories != 1049.8 {
		t.Fatalf("expected remaining 1049.8, got %v", summary.Daily.RemainingCalories)
	}
	if summary.Daily.TotalFatG != 16.3 {
		t.Fatalf("expected fat 16.3, got %v", summary.Daily.TotalFatG)
	}

	update := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/entries/%d", created.ID), cookie, map[string]any{
		"meal_type": "Jantar",
		"name":      "Arroz",
		"quantity":  0.5,
		"calories":  325,
	})
	expectStatus(t, update, http.StatusOK)
	updated := foodEntryView{}
	decodeJSON(t, update, &updated)
	if updated.MealType != "Jantar" || updated.Unit != "" || updated.ProteinG != 0 {
		t.Fatalf("expected full replacement of the entry, got %+v", updated)
	}

	deleted := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/entries/%d", created.ID), cookie, nil)
	expectStatus(t, deleted, http.StatusNoContent)

	missing := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/entries/%d", created.ID), cookie, nil)
	expectStatus(t, missing, http.StatusNotFound)
}

func TestFoodEntryValidation(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "validate@example.com", true, 2000)
	cookie := loginAndExtractAuthCookie(t, app, "validate@example.com", testPassword)

	tests := []struct {
		name string
		path string
		body map[string]any
		code string
	}{
		{
			name: "unknown meal",
			path: "/api/days/2026-03-02/entries",
			body: map[string]any{"meal_type": "Ceia", "name": "Chá", "quantity": 1},
			code: "unknown meal type",
		},
		{
			name: "missing name",
			path: "/api/days/2026-03-02/entries",
			body: map[string]any{"meal_type": "Lanche", "name": "  ", "quantity": 1},
			code: "food name required",
		},
		{
			name: "zero quantity",
			path: "/api/days/2026-03-02/entries",
			body: map[string]any{"meal_type": "Lanche", "name": "Maçã", "quantity": 0},
			code: "food quantity invalid",
		},
		{
			name: "negative calories",
			path: "/api/days/2026-03-02/entries",
			body: map[string]any{"meal_type": "Lanche", "name": "Maçã", "quantity": 1, "calories": -5},
			code: "food nutrient negative",
		},
		{
			name: "bad date",
			path: "/api/days/2026-13-40/entries",
			body: map[string]any{"meal_type": "Lanche", "name": "Maçã", "quantity": 1},
			code: "invalid date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := doJSON(t, app, http.MethodPost, tt.path, cookie, tt.body)
			expectStatus(t, response, http.StatusBadRequest)
			if code := readAPIError(t, response); code != tt.code {
				t.Fatalf("expected %q, got %q", tt.code, code)
			}
		})
	}
}

func TestEntriesAreScopedToOwner(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "owner@example.com", true, 2000)
	createTestUser(t, database, "intruder@example.com", true, 2000)
	ownerCookie := loginAndExtractAuthCookie(t, app, "owner@example.com", testPassword)
	intruderCookie := loginAndExtractAuthCookie(t, app, "intruder@example.com", testPassword)

	response := doJSON(t, app, http.MethodPost, "/api/days/2026-03-02/entries", ownerCookie, map[string]any{
		"meal_type": "Almoço",
		"name":      "Salada",
		"quantity":  1,
		"calories":  120,
	})
	created := foodEntryView{}
	decodeJSON(t, response, &created)

	update := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/entries/%d", created.ID), intruderCookie, map[string]any{
		"meal_type": "Almoço",
		"name":      "Hijacked",
		"quantity":  1,
	})
	expectStatus(t, update, http.StatusNotFound)

	entries := []foodEntryView{}
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/days/2026-03-02/entries", intruderCookie, nil), &entries)
	if len(entries) != 0 {
		t.Fatalf("expected intruder to see no entries, got %+v", entries)
	}
}

func TestDaySummaryWithoutTargetsReturnsConflict(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "notargets@example.com", true, 0)
	cookie := loginAndExtractAuthCookie(t, app, "notargets@example.com", testPassword)

	response := doJSON(t, app, http.MethodGet, "/api/days/2026-03-02/summary", cookie, nil)
	expectStatus(t, response, http.StatusConflict)
	if code := readAPIError(t, response); code != "targets not set" {
		t.Fatalf("expected targets not set, got %q", code)
	}
}

func TestDaySummaryWithRetiredMealSlotReturnsConflict(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "retired@example.com", true, 2000)
	cookie := loginAndExtractAuthCookie(t, app, "retired@example.com", testPassword)

	created := doJSON(t, app, http.MethodPost, "/api/days/2026-03-02/entries", cookie, map[string]any{
		"meal_type": "Almoço",
		"name":      "Arroz",
		"quantity":  1,
		"calories":  450,
	})
	expectStatus(t, created, http.StatusCreated)
	if err := database.Exec(`UPDATE food_log_entries SET meal_type = ?`, "Ceia").Error; err != nil {
		t.Fatalf("rename stored slot: %v", err)
	}

	response := doJSON(t, app, http.MethodGet, "/api/days/2026-03-02/summary", cookie, nil)
	expectStatus(t, response, http.StatusConflict)
	if code := readAPIError(t, response); code != "meal slot retired" {
		t.Fatalf("expected meal slot retired, got %q", code)
	}

	expectStatus(t, doJSON(t, app, http.MethodGet, "/api/days/2026-03-02/entries", cookie, nil), http.StatusOK)
}

func TestExportCSVAndJSON(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "export@example.com", true, 2000)
	cookie := loginAndExtractAuthCookie(t, app, "export@example.com", testPassword)

	for _, day := range []string{"2026-03-01", "2026-03-05"} {
		response := doJSON(t, app, http.MethodPost, "/api/days/"+day+"/entries", cookie, map[string]any{
			"meal_type": "Lanche",
			"name":      "Iogurte, natural",
			"quantity":  170,
			"unit":      "g",
			"calories":  104.5,
		})
		expectStatus(t, response, http.StatusCreated)
	}

	csvResponse := doJSON(t, app, http.MethodGet, "/api/export/csv?from=2026-03-02", cookie, nil)
	expectStatus(t, csvResponse, http.StatusOK)
	body, err := io.ReadAll(csvResponse.Body)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", string(body))
	}
	if !strings.HasPrefix(lines[0], "Date,Meal,Food") {
		t.Fatalf("unexpected csv header %q", lines[0])
	}
	if lines[1] != `2026-03-05,Lanche,"Iogurte, natural",170,g,104.5,0,0,0` {
		t.Fatalf("unexpected csv row %q", lines[1])
	}

	payload := struct {
		Entries []struct {
			Date string `json:"date"`
		} `json:"entries"`
	}{}
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/export/json", cookie, nil), &payload)
	if len(payload.Entries) != 2 || payload.Entries[0].Date != "2026-03-01" {
		t.Fatalf("expected two entries ordered by day, got %+v", payload.Entries)
	}

	invalid := doJSON(t, app, http.MethodGet, "/api/export/csv?from=2026-03-05&to=2026-03-01", cookie, nil)
	expectStatus(t, invalid, http.StatusBadRequest)
	if code := readAPIError(t, invalid); code != "invalid range" {
		t.Fatalf("expected invalid range, got %q", code)
	}
}
