package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/nutrilume/internal/api"
	"github.com/terraincognita07/nutrilume/internal/config"
	"github.com/terraincognita07/nutrilume/internal/db"
	"github.com/terraincognita07/nutrilume/internal/i18n"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewAppLogsRequestsWithRequestID(t *testing.T) {
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "main-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	i18nManager, err := i18n.NewManager("pt")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}
	handler, err := api.NewHandler(database, "0123456789abcdef0123456789abcdef", time.UTC, i18nManager, false, []string{"Almoço"})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	core, recorded := observer.New(zap.InfoLevel)
	app := newApp(handler, zap.New(core))

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	requestID := response.Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header")
	}

	entries := recorded.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one access log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/healthz" || fields["request_id"] != requestID {
		t.Fatalf("unexpected access log fields %+v", fields)
	}
}

func TestUnauthenticatedAPIRequestIsLoggedAsWarning(t *testing.T) {
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "main-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	i18nManager, err := i18n.NewManager("pt")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}
	handler, err := api.NewHandler(database, "0123456789abcdef0123456789abcdef", time.UTC, i18nManager, false, []string{"Almoço"})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	core, recorded := observer.New(zap.InfoLevel)
	app := newApp(handler, zap.New(core))

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profile", nil), -1)
	if err != nil {
		t.Fatalf("profile request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
	if recorded.FilterLevelExact(zap.WarnLevel).Len() != 1 {
		t.Fatalf("expected one warning access log, got %d", recorded.FilterLevelExact(zap.WarnLevel).Len())
	}
}

func TestResolveLocationWarnsOnInvalidZone(t *testing.T) {
	core, recorded := observer.New(zap.WarnLevel)
	log := zap.New(core)

	location := resolveLocation(config.Config{TimeZone: "Not/AZone"}, log)
	if location != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", location)
	}
	warnings := recorded.FilterMessage("falling back to UTC").All()
	if len(warnings) != 1 {
		t.Fatalf("expected one fallback warning, got %d", len(warnings))
	}
	if tz := warnings[0].ContextMap()["tz"]; tz != "Not/AZone" {
		t.Fatalf("expected tz field Not/AZone, got %v", tz)
	}

	if location := resolveLocation(config.Config{TimeZone: "UTC"}, log); location != time.UTC {
		t.Fatalf("expected UTC, got %v", location)
	}
	if recorded.Len() != 1 {
		t.Fatalf("expected no warning for a valid zone, got %d entries", recorded.Len())
	}
}
