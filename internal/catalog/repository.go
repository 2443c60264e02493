package catalog

import (
	"context"
	"errors"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListCategories returns all categories ordered by their display position.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).
		Order("position ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindCategoryByID loads a single category row.
func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, err
	}
	return &category, nil
}

// ListSubcategoriesByCategory returns the subcategories under a category,
// ordered by name.
func (r *Repository) ListSubcategoriesByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

// FindSubcategoryByID loads a single subcategory row.
func (r *Repository) FindSubcategoryByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	var subcategory models.Subcategory
	if err := r.db.WithContext(ctx).First(&subcategory, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subcategory not found")
		}
		return nil, err
	}
	return &subcategory, nil
}

// ListServicesBySubcategory returns services under a subcategory. When
// activeOnly is set, hidden services are excluded, which is what the public
// catalog endpoints want.
func (r *Repository) ListServicesBySubcategory(ctx context.Context, subcategoryID uuid.UUID, activeOnly bool) ([]models.Service, error) {
	query := r.db.WithContext(ctx).Where("subcategory_id = ?", subcategoryID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var services []models.Service
	if err := query.Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// FindServiceByID loads a single service row.
func (r *Repository) FindServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, err
	}
	return &service, nil
}

// CreateCategory inserts a new category row.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreateSubcategory inserts a new subcategory row.
func (r *Repository) CreateSubcategory(ctx context.Context, subcategory *models.Subcategory) (*models.Subcategory, error) {
	if err := r.db.WithContext(ctx).Create(subcategory).Error; err != nil {
		return nil, err
	}
	return subcategory, nil
}

// CreateService inserts a new service row.
func (r *Repository) CreateService(ctx context.Context, service *models.Service) (*models.Service, error) {
	if err := r.db.WithContext(ctx).Create(service).Error; err != nil {
		return nil, err
	}
	return service, nil
}

// UpdateService persists the full service row.
func (r *Repository) UpdateService(ctx context.Context, service *models.Service) (*models.Service, error) {
	if err := r.db.WithContext(ctx).Save(service).Error; err != nil {
		return nil, err
	}
	return service, nil
}

// SetServiceActive flips the visibility flag on an existing service. A zero
// rows-affected result means the service does not exist and is reported as
// NotFound so the caller can roll back its optimistic state.
func (r *Repository) SetServiceActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Update("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
	}
	return nil
}
