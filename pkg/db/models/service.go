package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service represents a bookable catalog service. Each of the three
// sub-service prices is nullable; a missing price means that sub-service is
// not offered and contributes nothing to cart totals.
type Service struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SubcategoryID     uuid.UUID        `gorm:"column:subcategory_id;type:uuid;not null;index"`
	Name              string           `gorm:"column:name;not null"`
	Description       *string          `gorm:"column:description"`
	ImageURL          *string          `gorm:"column:image_url"`
	InstallationPrice *decimal.Decimal `gorm:"column:installation_price;type:numeric(10,2)"`
	DismantlingPrice  *decimal.Decimal `gorm:"column:dismantling_price;type:numeric(10,2)"`
	RepairPrice       *decimal.Decimal `gorm:"column:repair_price;type:numeric(10,2)"`
	Rating            *float64         `gorm:"column:rating;type:numeric(3,2)"`
	Active            bool             `gorm:"column:active;not null;default:true"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
