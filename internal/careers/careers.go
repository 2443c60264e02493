package careers

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/pagination"
)

// Service exposes the public application form and the admin review queue.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*ApplicationDTO, error)
	AdminList(ctx context.Context, status string, params pagination.Params) (*ListResult, error)
	UpdateStatus(ctx context.Context, applicationID uuid.UUID, status string) error
}

// SubmitInput is the validated payload from the careers form. ResumeURL is
// the public URL returned by the upload endpoint.
type SubmitInput struct {
	Name       string
	Email      string
	Phone      string
	Role       string
	Experience string
	Message    string
	ResumeURL  string
}

// ApplicationDTO is the API shape for a career application.
type ApplicationDTO struct {
	ID         uuid.UUID               `json:"id"`
	Name       string                  `json:"name"`
	Email      string                  `json:"email"`
	Phone      string                  `json:"phone"`
	Role       string                  `json:"role"`
	Experience *string                 `json:"experience,omitempty"`
	Message    *string                 `json:"message,omitempty"`
	ResumeURL  string                  `json:"resume_url"`
	Status     enums.ApplicationStatus `json:"status"`
	CreatedAt  time.Time               `json:"created_at"`
}

// ListResult is one page of applications plus the cursor for the next page.
type ListResult struct {
	Applications []ApplicationDTO `json:"applications"`
	NextCursor   string           `json:"next_cursor,omitempty"`
}

// Repository defines career application persistence.
type Repository interface {
	Create(ctx context.Context, application *models.CareerApplication) (*models.CareerApplication, error)
	List(ctx context.Context, status *enums.ApplicationStatus, params pagination.Params) ([]models.CareerApplication, *pagination.Cursor, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ApplicationStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, application *models.CareerApplication) (*models.CareerApplication, error) {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		return nil, err
	}
	return application, nil
}

func (r *repository) List(ctx context.Context, status *enums.ApplicationStatus, params pagination.Params) ([]models.CareerApplication, *pagination.Cursor, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pagination cursor")
	}
	buffered := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.CareerApplication{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var applications []models.CareerApplication
	if err := query.Order("created_at DESC, id DESC").Limit(buffered).Find(&applications).Error; err != nil {
		return nil, nil, err
	}

	if len(applications) > normalized {
		next := applications[normalized]
		applications = applications[:normalized]
		return applications, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return applications, nil, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ApplicationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.CareerApplication{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
	}
	return nil
}

type service struct {
	repo Repository
}

// NewService builds the careers service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*ApplicationDTO, error) {
	if err := validateSubmission(input); err != nil {
		return nil, err
	}

	application, err := s.repo.Create(ctx, &models.CareerApplication{
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:      strings.TrimSpace(input.Phone),
		Role:       strings.TrimSpace(input.Role),
		Experience: optional(input.Experience),
		Message:    optional(input.Message),
		ResumeURL:  strings.TrimSpace(input.ResumeURL),
		Status:     enums.ApplicationStatusReceived,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to save application")
	}

	dto := toApplicationDTO(application)
	return &dto, nil
}

func (s *service) AdminList(ctx context.Context, status string, params pagination.Params) (*ListResult, error) {
	var filter *enums.ApplicationStatus
	if strings.TrimSpace(status) != "" {
		parsed, err := enums.ParseApplicationStatus(status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown application status filter")
		}
		filter = &parsed
	}

	rows, next, err := s.repo.List(ctx, filter, params)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list applications")
	}

	result := &ListResult{Applications: make([]ApplicationDTO, 0, len(rows))}
	for i := range rows {
		result.Applications = append(result.Applications, toApplicationDTO(&rows[i]))
	}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) UpdateStatus(ctx context.Context, applicationID uuid.UUID, status string) error {
	parsed, err := enums.ParseApplicationStatus(status)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown application status")
	}
	return s.repo.UpdateStatus(ctx, applicationID, parsed)
}

func validateSubmission(input SubmitInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(input.Email)); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	phone := strings.TrimSpace(input.Phone)
	if len(phone) != 10 || strings.Trim(phone, "0123456789") != "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone must be a 10-digit number")
	}
	if strings.TrimSpace(input.Role) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "role is required")
	}
	resume := strings.TrimSpace(input.ResumeURL)
	if resume == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "resume upload is required")
	}
	if !strings.HasPrefix(resume, "https://") {
		return pkgerrors.New(pkgerrors.CodeValidation, "resume url must be https")
	}
	return nil
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func toApplicationDTO(application *models.CareerApplication) ApplicationDTO {
	return ApplicationDTO{
		ID:         application.ID,
		Name:       application.Name,
		Email:      application.Email,
		Phone:      application.Phone,
		Role:       application.Role,
		Experience: application.Experience,
		Message:    application.Message,
		ResumeURL:  application.ResumeURL,
		Status:     application.Status,
		CreatedAt:  application.CreatedAt,
	}
}
