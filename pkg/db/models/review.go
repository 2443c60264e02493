package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
)

// Review represents a customer review awaiting or past moderation.
type Review struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BookingID      *uuid.UUID         `gorm:"column:booking_id;type:uuid;index"`
	UserID         *uuid.UUID         `gorm:"column:user_id;type:uuid;index"`
	Rating         int                `gorm:"column:rating;not null"`
	EmployeeName   string             `gorm:"column:employee_name;not null"`
	ServiceDetails string             `gorm:"column:service_details;not null"`
	Status         enums.ReviewStatus `gorm:"column:status;not null;default:'pending'"`
	ImageURLs      pq.StringArray     `gorm:"column:image_urls;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
