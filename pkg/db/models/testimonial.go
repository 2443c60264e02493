package models

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial represents a curated customer quote shown on the landing page.
type Testimonial struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Author    string    `gorm:"column:author;not null"`
	Quote     string    `gorm:"column:quote;not null"`
	Rating    int       `gorm:"column:rating;not null;default:5"`
	ImageURL  *string   `gorm:"column:image_url"`
	Published bool      `gorm:"column:published;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
