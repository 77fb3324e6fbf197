package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrilume/internal/db"
	"github.com/terraincognita07/nutrilume/internal/i18n"
	"github.com/terraincognita07/nutrilume/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "StrongPass1"

var testMealSlots = []string{"Café da Manhã", "Almoço", "Lanche", "Jantar"}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "nutrilume-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	i18nManager, err := i18n.NewManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(database, "test-secret-key-0123456789abcdef", time.UTC, i18nManager, false, testMealSlots)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return app, database
}

func createTestUser(t *testing.T, database *gorm.DB, email string, onboarded bool, targetCalories int) models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Email:               strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:        string(passwordHash),
		OnboardingCompleted: onboarded,
		CreatedAt:           time.Now().UTC(),
	}
	if onboarded {
		user.Sex = models.SexFemale
		user.AgeYears = 28
		user.HeightCm = 165
		user.WeightKg = 60
		user.ActivityLevel = models.ActivityLight
		user.Goal = models.GoalMaintain
		user.TargetCalories = targetCalories
		user.TargetProteinG = targetCalories * 3 / 40
		user.TargetCarbsG = targetCalories / 10
		user.TargetFatG = targetCalories / 30
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func loginAndExtractAuthCookie(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", response.StatusCode)
	}
	if cookie := authCookieFrom(response); cookie != "" {
		return cookie
	}

	t.Fatal("auth cookie is missing in login response")
	return ""
}

func authCookieFrom(response *http.Response) string {
	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	return ""
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, cookie string, body any, headers ...string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	for index := 0; index+1 < len(headers); index += 2 {
		request.Header.Set(headers[index], headers[index+1])
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("decode response body %q: %v", string(raw), err)
	}
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()

	payload := map[string]string{}
	decodeJSON(t, response, &payload)
	return payload["error"]
}

func expectStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, string(body))
	}
}
