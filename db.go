package main

import (
	"fmt"

	"authkit/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// openDB connects to Postgres and, unless disabled via DB_AUTO_MIGRATE,
// migrates the users table.
func openDB(cfg *Config) (*gorm.DB, error) {
	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set; a Postgres DSN is required")
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&models.User{}); err != nil {
			return nil, fmt.Errorf("migrate users: %w", err)
		}
	}
	return db, nil
}
