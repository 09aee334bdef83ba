package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/heavydutyrent/machinery-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSQLitePath = "machinery.db"

var DB *gorm.DB

// ConnectDatabase opens the database selected by cfg and stores it for GetDB
func ConnectDatabase(cfg *Config) error {
	db, err := OpenDatabase(cfg)
	if err != nil {
		return err
	}

	DB = db
	log.Printf("Database connection established successfully (driver=%s)", cfg.DBDriver)
	return nil
}

// OpenDatabase opens a new connection pool without touching the package-level DB
func OpenDatabase(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverSQLite:
		dialector = sqlite.Open(SQLiteDSN(cfg.DatabaseURL))
	case DriverPostgres, "":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("failed to connect to database: DATABASE_URL is empty")
		}
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("failed to connect to database: unsupported driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, GormConfig(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// GormConfig returns the shared GORM settings. Driver errors are left
// untranslated so the repository can read constraint and column names.
func GormConfig(logLevel string) *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(logLevel)),
	}
}

// SQLiteDSN enables foreign key enforcement, which SQLite leaves off by default
func SQLiteDSN(dsn string) string {
	if dsn == "" {
		dsn = defaultSQLitePath
	}
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// Migrate creates or updates every table, including the many-to-many join tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}
