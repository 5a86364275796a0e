package database

import (
	"embed"
	"fmt"
	"time"

	"jbucks/internal/config"
	"jbucks/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Schema migrations are compiled into the binary so the schema can be created
// on startup without any files on disk. SQLite and PostgreSQL need separate
// DDL dialects.
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Manager handles database operations
type Manager struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewManager opens the configured database: PostgreSQL when the connection
// string carries a postgres:// scheme, the file-backed SQLite store otherwise.
func NewManager(cfg *config.Config) (*Manager, error) {
	var dialector gorm.Dialector
	if cfg.IsPostgres() {
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseURL,
			PreferSimpleProtocol: true,
		})
	} else {
		dialector = sqlite.Open(cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db, cfg: cfg}, nil
}

// Migrate applies pending migrations from the embedded migration files.
// It is a no-op when the schema is already current.
func (m *Manager) Migrate() error {
	logger.Get().Info("Running database migrations...")

	mig, err := newMigrate(m.cfg)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// NewMigrate builds a migrate instance for the configured database, used by
// Manager.Migrate and the migrate CLI.
func NewMigrate(cfg *config.Config) (*migrate.Migrate, error) {
	return newMigrate(cfg)
}

func newMigrate(cfg *config.Config) (*migrate.Migrate, error) {
	backend, url := "sqlite", "sqlite3://"+cfg.DatabaseURL
	if cfg.IsPostgres() {
		backend, url = "postgres", cfg.DatabaseURL
	}

	src, err := iofs.New(migrationsFS, "migrations/"+backend)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}
