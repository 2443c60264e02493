package catalog

import (
	"time"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryDTO is the API shape for a catalog category.
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ImageURL  *string   `json:"image_url,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubcategoryDTO is the API shape for a catalog subcategory.
type SubcategoryDTO struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	ImageURL   *string   `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ServiceDTO is the API shape for a bookable service. Absent prices mean the
// sub-service is not offered.
type ServiceDTO struct {
	ID                uuid.UUID        `json:"id"`
	SubcategoryID     uuid.UUID        `json:"subcategory_id"`
	Name              string           `json:"name"`
	Description       *string          `json:"description,omitempty"`
	ImageURL          *string          `json:"image_url,omitempty"`
	InstallationPrice *decimal.Decimal `json:"installation_price,omitempty"`
	DismantlingPrice  *decimal.Decimal `json:"dismantling_price,omitempty"`
	RepairPrice       *decimal.Decimal `json:"repair_price,omitempty"`
	Rating            *float64         `json:"rating,omitempty"`
	Active            bool             `json:"active"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func toCategoryDTO(category *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:        category.ID,
		Name:      category.Name,
		ImageURL:  category.ImageURL,
		Position:  category.Position,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

func toSubcategoryDTO(subcategory *models.Subcategory) SubcategoryDTO {
	return SubcategoryDTO{
		ID:         subcategory.ID,
		CategoryID: subcategory.CategoryID,
		Name:       subcategory.Name,
		ImageURL:   subcategory.ImageURL,
		CreatedAt:  subcategory.CreatedAt,
		UpdatedAt:  subcategory.UpdatedAt,
	}
}

func toServiceDTO(service *models.Service) ServiceDTO {
	return ServiceDTO{
		ID:                service.ID,
		SubcategoryID:     service.SubcategoryID,
		Name:              service.Name,
		Description:       service.Description,
		ImageURL:          service.ImageURL,
		InstallationPrice: service.InstallationPrice,
		DismantlingPrice:  service.DismantlingPrice,
		RepairPrice:       service.RepairPrice,
		Rating:            service.Rating,
		Active:            service.Active,
		CreatedAt:         service.CreatedAt,
		UpdatedAt:         service.UpdatedAt,
	}
}
