package models

import (
	"time"
)

// User is the single persisted account record: a unique username plus the
// bcrypt hash of its password.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `json:"username" gorm:"size:255;not null;unique"`
	PasswordHash string    `json:"-" gorm:"size:128;not null"`
}

// TableName keeps the table name stable regardless of gorm pluralization rules.
func (User) TableName() string {
	return "users"
}
