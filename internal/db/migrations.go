package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hollyoak/plateful/migrations"
	"gorm.io/gorm"
)

var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)
)

type migrationScript struct {
	version string
	order   int
	name    string
	sql     string
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	const bookkeepingSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := database.Exec(bookkeepingSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	scripts, err := readMigrationScripts()
	if err != nil {
		return err
	}

	applied, err := appliedVersions(database)
	if err != nil {
		return err
	}

	for _, script := range scripts {
		if _, done := applied[script.version]; done {
			continue
		}
		if err := runMigrationScript(database, script); err != nil {
			return err
		}
	}
	return nil
}

func readMigrationScripts() ([]migrationScript, error) {
	entries, err := fs.ReadDir(migrations.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	scripts := make([]migrationScript, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.TrimSpace(entry.Name())
		match := migrationNamePattern.FindStringSubmatch(name)
		if len(match) != 2 {
			continue
		}

		version := match[1]
		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", name, err)
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, other, name)
		}
		seen[version] = name

		body, err := fs.ReadFile(migrations.Files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		scripts = append(scripts, migrationScript{
			version: version,
			order:   order,
			name:    name,
			sql:     string(body),
		})
	}

	sort.Slice(scripts, func(i, j int) bool {
		if scripts[i].order == scripts[j].order {
			return scripts[i].name < scripts[j].name
		}
		return scripts[i].order < scripts[j].order
	})
	return scripts, nil
}

func appliedVersions(database *gorm.DB) (map[string]struct{}, error) {
	type versionRow struct {
		Version string `gorm:"column:version"`
	}
	rows := make([]versionRow, 0)
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}
	versions := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		versions[row.Version] = struct{}{}
	}
	return versions, nil
}

func runMigrationScript(database *gorm.DB, script migrationScript) error {
	return database.Transaction(func(tx *gorm.DB) error {
		statements := splitStatements(script.sql)
		if len(statements) == 0 {
			return errors.New("migration has no SQL statements")
		}

		for _, statement := range statements {
			// Databases created before the migration existed may already
			// carry the column; re-adding it would fail the whole script.
			skip, err := columnAlreadyPresent(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", script.name, err)
			}
			if skip {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", script.name, statement, err)
			}
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			script.version,
			script.name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", script.name, err)
		}
		return nil
	})
}

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

func columnAlreadyPresent(database *gorm.DB, statement string) (bool, error) {
	match := addColumnPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if len(match) != 3 {
		return false, nil
	}

	table := trimSQLIdentifier(match[1])
	column := trimSQLIdentifier(match[2])

	type columnRow struct {
		Name string `gorm:"column:name"`
	}
	escaped := strings.ReplaceAll(table, `"`, `""`)
	rows := make([]columnRow, 0)
	if err := database.Raw(fmt.Sprintf(`PRAGMA table_info("%s")`, escaped)).Scan(&rows).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", table, err)
	}
	for _, row := range rows {
		if strings.EqualFold(strings.TrimSpace(row.Name), column) {
			return true, nil
		}
	}
	return false, nil
}

func trimSQLIdentifier(identifier string) string {
	trimmed := strings.TrimSpace(identifier)
	trimmed = strings.Trim(trimmed, "\"`[]")
	return strings.TrimSpace(trimmed)
}
