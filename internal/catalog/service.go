package catalog

import (
	"context"
	"strings"

	"github.com/anupamtiwari/homecraft-backend/pkg/db"
	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service exposes catalog reads for the storefront and catalog management
// for the back office.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]SubcategoryDTO, error)
	ListServices(ctx context.Context, subcategoryID uuid.UUID) ([]ServiceDTO, error)
	GetService(ctx context.Context, serviceID uuid.UUID) (*ServiceDTO, error)

	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	CreateSubcategory(ctx context.Context, input CreateSubcategoryInput) (*SubcategoryDTO, error)
	CreateService(ctx context.Context, input CreateServiceInput) (*ServiceDTO, error)
	UpdateService(ctx context.Context, serviceID uuid.UUID, input UpdateServiceInput) (*ServiceDTO, error)
	SetServiceActive(ctx context.Context, serviceID uuid.UUID, active bool) error
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Name     string
	ImageURL *string
	Position int
}

// CreateSubcategoryInput holds the validated payload to create a subcategory.
type CreateSubcategoryInput struct {
	CategoryID uuid.UUID
	Name       string
	ImageURL   *string
}

// CreateServiceInput holds the validated payload to create a service. Each
// price is optional; a nil price means that sub-service is not offered.
type CreateServiceInput struct {
	SubcategoryID     uuid.UUID
	Name              string
	Description       *string
	ImageURL          *string
	InstallationPrice *decimal.Decimal
	DismantlingPrice  *decimal.Decimal
	RepairPrice       *decimal.Decimal
	Active            bool
}

// UpdateServiceInput holds optional mutation values for a service. A nil
// field leaves the column untouched; the price fields use a double pointer so
// an explicit null can clear a price.
type UpdateServiceInput struct {
	Name              *string
	Description       *string
	ImageURL          *string
	InstallationPrice **decimal.Decimal
	DismantlingPrice  **decimal.Decimal
	RepairPrice       **decimal.Decimal
	Active            *bool
}

type repository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListSubcategoriesByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error)
	FindSubcategoryByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error)
	ListServicesBySubcategory(ctx context.Context, subcategoryID uuid.UUID, activeOnly bool) ([]models.Service, error)
	FindServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	CreateSubcategory(ctx context.Context, subcategory *models.Subcategory) (*models.Subcategory, error)
	CreateService(ctx context.Context, service *models.Service) (*models.Service, error)
	UpdateService(ctx context.Context, service *models.Service) (*models.Service, error)
	SetServiceActive(ctx context.Context, id uuid.UUID, active bool) error
}

type service struct {
	repo repository
}

// NewService builds the catalog service on top of the repository.
func NewService(repo repository) Service {
	return &service{repo: repo}
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list categories")
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, toCategoryDTO(&categories[i]))
	}
	return dtos, nil
}

func (s *service) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]SubcategoryDTO, error) {
	if _, err := s.repo.FindCategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}

	subcategories, err := s.repo.ListSubcategoriesByCategory(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list subcategories")
	}

	dtos := make([]SubcategoryDTO, 0, len(subcategories))
	for i := range subcategories {
		dtos = append(dtos, toSubcategoryDTO(&subcategories[i]))
	}
	return dtos, nil
}

func (s *service) ListServices(ctx context.Context, subcategoryID uuid.UUID) ([]ServiceDTO, error) {
	if _, err := s.repo.FindSubcategoryByID(ctx, subcategoryID); err != nil {
		return nil, err
	}

	services, err := s.repo.ListServicesBySubcategory(ctx, subcategoryID, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list services")
	}

	dtos := make([]ServiceDTO, 0, len(services))
	for i := range services {
		dtos = append(dtos, toServiceDTO(&services[i]))
	}
	return dtos, nil
}

func (s *service) GetService(ctx context.Context, serviceID uuid.UUID) (*ServiceDTO, error) {
	svc, err := s.repo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
	}
	dto := toServiceDTO(svc)
	return &dto, nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	if input.Position < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category position cannot be negative")
	}

	category, err := s.repo.CreateCategory(ctx, &models.Category{
		Name:     name,
		ImageURL: input.ImageURL,
		Position: input.Position,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "categories_name_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a category with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create category")
	}

	dto := toCategoryDTO(category)
	return &dto, nil
}

func (s *service) CreateSubcategory(ctx context.Context, input CreateSubcategoryInput) (*SubcategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subcategory name is required")
	}
	if _, err := s.repo.FindCategoryByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	subcategory, err := s.repo.CreateSubcategory(ctx, &models.Subcategory{
		CategoryID: input.CategoryID,
		Name:       name,
		ImageURL:   input.ImageURL,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create subcategory")
	}

	dto := toSubcategoryDTO(subcategory)
	return &dto, nil
}

func (s *service) CreateService(ctx context.Context, input CreateServiceInput) (*ServiceDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service name is required")
	}
	if err := validatePrices(input.InstallationPrice, input.DismantlingPrice, input.RepairPrice); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindSubcategoryByID(ctx, input.SubcategoryID); err != nil {
		return nil, err
	}

	svc, err := s.repo.CreateService(ctx, &models.Service{
		SubcategoryID:     input.SubcategoryID,
		Name:              name,
		Description:       input.Description,
		ImageURL:          input.ImageURL,
		InstallationPrice: input.InstallationPrice,
		DismantlingPrice:  input.DismantlingPrice,
		RepairPrice:       input.RepairPrice,
		Active:            input.Active,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create service")
	}

	dto := toServiceDTO(svc)
	return &dto, nil
}

func (s *service) UpdateService(ctx context.Context, serviceID uuid.UUID, input UpdateServiceInput) (*ServiceDTO, error) {
	svc, err := s.repo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "service name cannot be empty")
		}
		svc.Name = name
	}
	if input.Description != nil {
		svc.Description = input.Description
	}
	if input.ImageURL != nil {
		svc.ImageURL = input.ImageURL
	}
	if input.InstallationPrice != nil {
		svc.InstallationPrice = *input.InstallationPrice
	}
	if input.DismantlingPrice != nil {
		svc.DismantlingPrice = *input.DismantlingPrice
	}
	if input.RepairPrice != nil {
		svc.RepairPrice = *input.RepairPrice
	}
	if input.Active != nil {
		svc.Active = *input.Active
	}

	if err := validatePrices(svc.InstallationPrice, svc.DismantlingPrice, svc.RepairPrice); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateService(ctx, svc)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update service")
	}

	dto := toServiceDTO(updated)
	return &dto, nil
}

func (s *service) SetServiceActive(ctx context.Context, serviceID uuid.UUID, active bool) error {
	return s.repo.SetServiceActive(ctx, serviceID, active)
}

func validatePrices(prices ...*decimal.Decimal) error {
	names := []string{"installation_price", "dismantling_price", "repair_price"}
	for i, price := range prices {
		if price == nil {
			continue
		}
		if price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, names[i]+" cannot be negative")
		}
	}
	return nil
}
