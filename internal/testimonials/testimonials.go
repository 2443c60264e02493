package testimonials

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
)

// Service exposes the public testimonial strip and its curation.
type Service interface {
	ListPublished(ctx context.Context) ([]TestimonialDTO, error)
	AdminList(ctx context.Context) ([]TestimonialDTO, error)
	Create(ctx context.Context, input CreateInput) (*TestimonialDTO, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateInput is the validated payload for a new testimonial.
type CreateInput struct {
	Author   string
	Quote    string
	Rating   int
	ImageURL *string
}

// TestimonialDTO is the API shape for a testimonial.
type TestimonialDTO struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating"`
	ImageURL  *string   `json:"image_url,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines testimonial persistence.
type Repository interface {
	Create(ctx context.Context, testimonial *models.Testimonial) (*models.Testimonial, error)
	List(ctx context.Context, publishedOnly bool) ([]models.Testimonial, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, testimonial *models.Testimonial) (*models.Testimonial, error) {
	if err := r.db.WithContext(ctx).Create(testimonial).Error; err != nil {
		return nil, err
	}
	return testimonial, nil
}

func (r *repository) List(ctx context.Context, publishedOnly bool) ([]models.Testimonial, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var testimonials []models.Testimonial
	if err := query.Find(&testimonials).Error; err != nil {
		return nil, err
	}
	return testimonials, nil
}

func (r *repository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Testimonial{}).
		Where("id = ?", id).
		Update("published", published)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "testimonial not found")
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Testimonial{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "testimonial not found")
	}
	return nil
}

type service struct {
	repo Repository
}

// NewService builds the testimonial service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListPublished(ctx context.Context) ([]TestimonialDTO, error) {
	return s.list(ctx, true)
}

func (s *service) AdminList(ctx context.Context) ([]TestimonialDTO, error) {
	return s.list(ctx, false)
}

func (s *service) list(ctx context.Context, publishedOnly bool) ([]TestimonialDTO, error) {
	rows, err := s.repo.List(ctx, publishedOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list testimonials")
	}

	dtos := make([]TestimonialDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, toTestimonialDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*TestimonialDTO, error) {
	author := strings.TrimSpace(input.Author)
	quote := strings.TrimSpace(input.Quote)
	if author == "" || quote == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "author and quote are required")
	}
	rating := input.Rating
	if rating == 0 {
		rating = 5
	}
	if rating < 1 || rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	testimonial, err := s.repo.Create(ctx, &models.Testimonial{
		Author:   author,
		Quote:    quote,
		Rating:   rating,
		ImageURL: input.ImageURL,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create testimonial")
	}

	dto := toTestimonialDTO(testimonial)
	return &dto, nil
}

func (s *service) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	return s.repo.SetPublished(ctx, id, published)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func toTestimonialDTO(testimonial *models.Testimonial) TestimonialDTO {
	return TestimonialDTO{
		ID:        testimonial.ID,
		Author:    testimonial.Author,
		Quote:     testimonial.Quote,
		Rating:    testimonial.Rating,
		ImageURL:  testimonial.ImageURL,
		Published: testimonial.Published,
		CreatedAt: testimonial.CreatedAt,
	}
}

