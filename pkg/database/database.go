package database

import (
	"fmt"
	"time"

	"github.com/Kusalkumar06/eventia/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// NewSQLiteDB opens a single-writer SQLite database. Writers are serialized
// through one connection so conditional updates never see SQLITE_BUSY.
func NewSQLiteDB(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", path)
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Event{},
		&models.Registration{},
		&models.Activity{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// The counter guard lives in SQL as well so no code path can break it.
	if db.Dialector.Name() == "postgres" {
		err := db.Exec(`
			DO $$ BEGIN
				ALTER TABLE events ADD CONSTRAINT chk_events_registrations_count
				CHECK (registrations_count >= 0 AND (max_registrations IS NULL OR registrations_count <= max_registrations));
			EXCEPTION WHEN duplicate_object THEN NULL;
			END $$;
		`).Error
		if err != nil {
			return fmt.Errorf("add registrations_count constraint: %w", err)
		}
	}
	return nil
}
