package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a customer identity created on first OTP verification.
type User struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email       string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	Name        *string    `gorm:"column:name"`
	Phone       *string    `gorm:"column:phone"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
