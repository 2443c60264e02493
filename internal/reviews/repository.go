package reviews

import (
	"context"
	"errors"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines review persistence.
type Repository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*models.Review, error)
	ListByStatus(ctx context.Context, status enums.ReviewStatus, params pagination.Params) ([]models.Review, *pagination.Cursor, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Review, error)
	ListAll(ctx context.Context, params pagination.Params) ([]models.Review, *pagination.Cursor, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ReviewStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return nil, err
	}
	return &review, nil
}

func (r *repository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "booking_id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return nil, err
	}
	return &review, nil
}

func (r *repository) ListByStatus(ctx context.Context, status enums.ReviewStatus, params pagination.Params) ([]models.Review, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).Model(&models.Review{}).Where("status = ?", status)
	return r.page(query, params)
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *repository) ListAll(ctx context.Context, params pagination.Params) ([]models.Review, *pagination.Cursor, error) {
	return r.page(r.db.WithContext(ctx).Model(&models.Review{}), params)
}

func (r *repository) page(query *gorm.DB, params pagination.Params) ([]models.Review, *pagination.Cursor, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pagination cursor")
	}
	buffered := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var reviews []models.Review
	if err := query.Order("created_at DESC, id DESC").Limit(buffered).Find(&reviews).Error; err != nil {
		return nil, nil, err
	}

	if len(reviews) > normalized {
		next := reviews[normalized]
		reviews = reviews[:normalized]
		return reviews, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return reviews, nil, nil
}

// UpdateStatus writes the moderation decision only when the row exists. Zero
// affected rows reports NotFound so the optimistic admin client rolls back.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ReviewStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
	}
	return nil
}
