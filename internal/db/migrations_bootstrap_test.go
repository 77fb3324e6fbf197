package db

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/glebarez/sqlite"
	embeddedmigrations "github.com/terraincognita07/nutrilume/migrations"
	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	database := openTestDatabase(t, filepath.Join(t.TempDir(), "nutrilume-clean.db"))

	columns := loadTableColumns(t, database, "users")
	for _, column := range []string{"onboarding_completed", "onboarding_draft", "target_calories", "activity_level"} {
		if _, exists := columns[column]; !exists {
			t.Fatalf("expected users.%s column to exist after migrations", column)
		}
	}
	for _, table := range []string{"food_log_entries", "weight_entries"} {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}

	indexSQL := strings.ToLower(strings.Join(strings.Fields(loadSQLiteObjectSQL(t, database, "index", "idx_users_email_normalized")), ""))
	if !strings.Contains(indexSQL, "lower(trim(email))") {
		t.Fatalf("expected normalized email index to use lower(trim(email)), got %q", indexSQL)
	}

	assertAllEmbeddedMigrationsApplied(t, database)
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "nutrilume-idempotent.db")

	first, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open sqlite: %v", err)
	}
	before, err := ListMigrationRecords(first)
	if err != nil {
		t.Fatalf("load first migration records: %v", err)
	}
	if err := Close(first); err != nil {
		t.Fatalf("close first database: %v", err)
	}

	second := openTestDatabase(t, databasePath)
	after, err := ListMigrationRecords(second)
	if err != nil {
		t.Fatalf("load second migration records: %v", err)
	}

	if !reflect.DeepEqual(before, after) {
		t.Fatalf("expected migration records to remain unchanged between boots, before=%v after=%v", before, after)
	}
}

func TestMigrateRejectsDuplicateVersions(t *testing.T) {
	database := openRawSQLite(t, filepath.Join(t.TempDir(), "duplicate.db"))
	source := fstest.MapFS{
		"001_a.sql": &fstest.MapFile{Data: []byte("CREATE TABLE a (id INTEGER)")},
		"001_b.sql": &fstest.MapFile{Data: []byte("CREATE TABLE b (id INTEGER)")},
	}

	if _, err := migrate(database, source); err == nil {
		t.Fatal("expected duplicate migration versions to fail")
	}
}

func TestMigrateSkipsAddColumnWhenColumnExists(t *testing.T) {
	database := openRawSQLite(t, filepath.Join(t.TempDir(), "add-column.db"))
	source := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{Data: []byte("CREATE TABLE things (id INTEGER PRIMARY KEY, label TEXT)")},
		"002_label.sql":  &fstest.MapFile{Data: []byte("ALTER TABLE things ADD COLUMN label TEXT")},
	}

	ran, err := migrate(database, source)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !reflect.DeepEqual(ran, []string{"001_create.sql", "002_label.sql"}) {
		t.Fatalf("expected both migrations recorded, got %v", ran)
	}
}

func TestSplitStatementsDropsBlankParts(t *testing.T) {
	statements := splitStatements("CREATE TABLE a (id INTEGER);\n\n;  CREATE INDEX i ON a(id);\n")
	if len(statements) != 2 {
		t.Fatalf("expected 2 statements, got %d: %v", len(statements), statements)
	}
}

func openTestDatabase(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = Close(database)
	})
	return database
}

func openRawSQLite(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
	if err != nil {
		t.Fatalf("open raw sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = Close(database)
	})
	return database
}

func assertAllEmbeddedMigrationsApplied(t *testing.T, database *gorm.DB) {
	t.Helper()

	embedded, err := readMigrations(embeddedmigrations.Files)
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	expected := make([]string, 0, len(embedded))
	for _, migration := range embedded {
		expected = append(expected, migration.Version)
	}

	records, err := ListMigrationRecords(database)
	if err != nil {
		t.Fatalf("load migration records: %v", err)
	}
	actual := make([]string, 0, len(records))
	for _, record := range records {
		actual = append(actual, record.Version)
	}

	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("unexpected applied migration versions: expected=%v actual=%v", expected, actual)
	}
}

func loadTableColumns(t *testing.T, database *gorm.DB, table string) map[string]struct{} {
	t.Helper()

	var rows []struct {
		Name string `gorm:"column:name"`
	}
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, table)
	if err := database.Raw(query).Scan(&rows).Error; err != nil {
		t.Fatalf("load table columns for %s: %v", table, err)
	}

	columns := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		columns[strings.ToLower(strings.TrimSpace(row.Name))] = struct{}{}
	}
	return columns
}

func loadSQLiteObjectSQL(t *testing.T, database *gorm.DB, objectType string, objectName string) string {
	t.Helper()

	var row struct {
		SQL string `gorm:"column:sql"`
	}
	if err := database.Raw(
		`SELECT sql FROM sqlite_master WHERE type = ? AND name = ?`,
		objectType,
		objectName,
	).Scan(&row).Error; err != nil {
		t.Fatalf("load sqlite master sql for %s %s: %v", objectType, objectName, err)
	}
	return row.SQL
}

func readEmbeddedMigration(t *testing.T, name string) []byte {
	t.Helper()

	body, err := fs.ReadFile(embeddedmigrations.Files, name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return body
}
