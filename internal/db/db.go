package db

import (
	"fmt"
	"os"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the database drivers and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rkradolfer/jobadmin/internal/models"
)

// open picks the gorm driver from the DSN: URL-style postgres DSNs go to the
// postgres driver, everything else is treated as a sqlite file path.
func open(dsn string) (*gorm.DB, error) {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	if isPostgresDSN(dsn) {
		return gorm.Open(postgres.Open(dsn), cfg)
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

func isPostgresDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// ConnectAndMigrate opens the job database and brings the schema up to date.
// With MIGRATIONS=1 the SQL files in ./migrations are applied via
// golang-migrate; otherwise gorm AutoMigrate is used (dev convenience).
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is empty, check environment configuration")
	}
	db, err := open(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := db.AutoMigrate(&models.Job{}, &models.JobItem{}); err != nil {
			return nil, fmt.Errorf("automigrate: %w", err)
		}
	}
	return db, nil
}

// ConnectCatalog opens the external parts catalog. The catalog is read-only
// reference data owned by another system, so no migrations are run here.
func ConnectCatalog(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("catalog DSN is empty, check environment configuration")
	}
	db, err := open(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect catalog database: %w", err)
	}
	return db, nil
}

// runSQLMigrations executes migrations in ./migrations using the file source.
func runSQLMigrations(dsn string) error {
	target := dsn
	if !isPostgresDSN(dsn) {
		target = "sqlite3://" + dsn
	}
	m, err := migrate.New("file://migrations", target)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
