package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
)

// CareerApplication represents a job application submitted through the
// public careers form.
type CareerApplication struct {
	ID         uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string                  `gorm:"column:name;not null"`
	Email      string                  `gorm:"column:email;not null"`
	Phone      string                  `gorm:"column:phone;not null"`
	Role       string                  `gorm:"column:role;not null"`
	Experience *string                 `gorm:"column:experience"`
	Message    *string                 `gorm:"column:message"`
	ResumeURL  string                  `gorm:"column:resume_url;not null"`
	Status     enums.ApplicationStatus `gorm:"column:status;not null;default:'received'"`
	CreatedAt  time.Time               `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt  time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
