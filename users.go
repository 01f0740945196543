package main

import (
	"context"
	"errors"
	"strings"

	"authkit/models"

	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when a username resolves to no user record.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when a registration collides with an
	// existing username.
	ErrDuplicateUser = errors.New("user already exists")
)

// Directory is the read path into the user table (plus the create used by
// registration). Every lookup is a fresh query; nothing is cached.
type Directory interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type gormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory returns a Directory backed by the given gorm handle.
func NewGormDirectory(db *gorm.DB) Directory {
	return &gormDirectory{db: db}
}

func (d *gormDirectory) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := d.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (d *gormDirectory) Create(ctx context.Context, user *models.User) error {
	if err := d.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateUser
		}
		return err
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
