package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/terraincognita07/nutrilume/internal/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	migrationFileNamePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
	alterAddColumnPattern    = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)
)

type sqlMigration struct {
	Version string
	Order   int
	Name    string
	SQL     string
}

// MigrationRecord is one row of schema_migrations.
type MigrationRecord struct {
	Version   string `gorm:"column:version"`
	Name      string `gorm:"column:name"`
	AppliedAt string `gorm:"column:applied_at"`
}

// migrate applies every pending migration found in source and returns the
// names of the ones it ran.
func migrate(database *gorm.DB, source fs.FS) ([]string, error) {
	if err := createSchemaMigrationsTable(database); err != nil {
		return nil, err
	}

	pending, err := readMigrations(source)
	if err != nil {
		return nil, err
	}

	applied, err := appliedVersions(database)
	if err != nil {
		return nil, err
	}

	ran := make([]string, 0)
	for _, migration := range pending {
		if _, done := applied[migration.Version]; done {
			continue
		}
		if err := runMigration(database, migration); err != nil {
			return ran, err
		}
		logger.Info("applied migration", zap.String("name", migration.Name))
		ran = append(ran, migration.Name)
	}
	return ran, nil
}

func createSchemaMigrationsTable(database *gorm.DB) error {
	const statement = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := database.Exec(statement).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func readMigrations(source fs.FS) ([]sqlMigration, error) {
	entries, err := fs.ReadDir(source, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	migrations := make([]sqlMigration, 0, len(entries))
	byVersion := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := strings.TrimSpace(entry.Name())
		matches := migrationFileNamePattern.FindStringSubmatch(name)
		if len(matches) != 2 {
			continue
		}

		version := matches[1]
		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", name, err)
		}
		if previous, exists := byVersion[version]; exists {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, previous, name)
		}
		byVersion[version] = name

		body, err := fs.ReadFile(source, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, sqlMigration{
			Version: version,
			Order:   order,
			Name:    name,
			SQL:     string(body),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		if migrations[i].Order == migrations[j].Order {
			return migrations[i].Name < migrations[j].Name
		}
		return migrations[i].Order < migrations[j].Order
	})
	return migrations, nil
}

func appliedVersions(database *gorm.DB) (map[string]struct{}, error) {
	records, err := ListMigrationRecords(database)
	if err != nil {
		return nil, err
	}
	versions := make(map[string]struct{}, len(records))
	for _, record := range records {
		versions[record.Version] = struct{}{}
	}
	return versions, nil
}

// ListMigrationRecords returns the applied migrations ordered by version.
func ListMigrationRecords(database *gorm.DB) ([]MigrationRecord, error) {
	records := make([]MigrationRecord, 0)
	if err := database.Raw(`SELECT version, name, applied_at FROM schema_migrations ORDER BY version`).Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("load schema_migrations: %w", err)
	}
	return records, nil
}

func runMigration(database *gorm.DB, migration sqlMigration) error {
	return database.Transaction(func(tx *gorm.DB) error {
		statements := splitStatements(migration.SQL)
		if len(statements) == 0 {
			return errors.New("migration has no SQL statements")
		}

		for _, statement := range statements {
			skip, err := columnAlreadyAdded(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", migration.Name, err)
			}
			if skip {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", migration.Name, statement, err)
			}
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			migration.Version,
			migration.Name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", migration.Name, err)
		}
		return nil
	})
}

// splitStatements splits on ';'. Migration files must not put semicolons
// inside string literals.
func splitStatements(sqlText string) []string {
	parts := strings.Split(sqlText, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		statement := strings.TrimSpace(part)
		if statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

func columnAlreadyAdded(database *gorm.DB, statement string) (bool, error) {
	matches := alterAddColumnPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if len(matches) != 3 {
		return false, nil
	}
	return columnExists(database, unquoteIdentifier(matches[1]), unquoteIdentifier(matches[2]))
}

type tableInfoColumn struct {
	Name string `gorm:"column:name"`
}

func columnExists(database *gorm.DB, table string, column string) (bool, error) {
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`))

	columns := make([]tableInfoColumn, 0)
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", table, err)
	}
	for _, candidate := range columns {
		if strings.EqualFold(strings.TrimSpace(candidate.Name), column) {
			return true, nil
		}
	}
	return false, nil
}

func unquoteIdentifier(identifier string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(identifier), "\"`[]"))
}
