package reviews

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/pagination"
)

const maxReviewImages = 5

// Service exposes review creation, public listing and moderation.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*ReviewDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]ReviewDTO, error)
	ListApproved(ctx context.Context, params pagination.Params) (*ListResult, error)

	AdminList(ctx context.Context, status string, params pagination.Params) (*ListResult, error)
	Moderate(ctx context.Context, reviewID uuid.UUID, decision string) error
}

// CreateInput is the validated payload for a new review.
type CreateInput struct {
	BookingID      uuid.UUID
	Rating         int
	ServiceDetails string
	ImageURLs      []string
}

// ListResult is one page of reviews plus the cursor for the next page.
type ListResult struct {
	Reviews    []ReviewDTO `json:"reviews"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// ReviewDTO is the API shape for a review.
type ReviewDTO struct {
	ID             uuid.UUID          `json:"id"`
	BookingID      *uuid.UUID         `json:"booking_id,omitempty"`
	Rating         int                `json:"rating"`
	EmployeeName   string             `json:"employee_name"`
	ServiceDetails string             `json:"service_details"`
	Status         enums.ReviewStatus `json:"status"`
	ImageURLs      []string           `json:"image_urls"`
	CreatedAt      time.Time          `json:"created_at"`
}

type bookingReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
}

type service struct {
	repo     Repository
	bookings bookingReader
}

// NewService builds the review service.
func NewService(repo Repository, bookings bookingReader) Service {
	return &service{repo: repo, bookings: bookings}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*ReviewDTO, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if len(input.ImageURLs) > maxReviewImages {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a review can carry at most 5 images")
	}

	booking, err := s.bookings.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID == nil || *booking.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	if booking.Status != enums.BookingStatusWorkDone {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reviews are only accepted for completed bookings")
	}

	if _, err := s.repo.FindByBookingID(ctx, input.BookingID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "this booking already has a review")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		return nil, err
	}

	details := strings.TrimSpace(input.ServiceDetails)
	if details == "" {
		details = booking.ServiceName
	}

	bookingID := input.BookingID
	ownerID := userID
	review, err := s.repo.Create(ctx, &models.Review{
		BookingID:      &bookingID,
		UserID:         &ownerID,
		Rating:         input.Rating,
		EmployeeName:   employeeName(booking),
		ServiceDetails: details,
		Status:         enums.ReviewStatusPending,
		ImageURLs:      pq.StringArray(input.ImageURLs),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create review")
	}

	dto := toReviewDTO(review)
	return &dto, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]ReviewDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list reviews")
	}

	dtos := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, toReviewDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *service) ListApproved(ctx context.Context, params pagination.Params) (*ListResult, error) {
	rows, next, err := s.repo.ListByStatus(ctx, enums.ReviewStatusApproved, params)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list reviews")
	}
	return toListResult(rows, next), nil
}

func (s *service) AdminList(ctx context.Context, status string, params pagination.Params) (*ListResult, error) {
	if strings.TrimSpace(status) == "" {
		rows, next, err := s.repo.ListAll(ctx, params)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil {
				return nil, err
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list reviews")
		}
		return toListResult(rows, next), nil
	}

	parsed, err := enums.ParseReviewStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown review status filter")
	}
	rows, next, err := s.repo.ListByStatus(ctx, parsed, params)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list reviews")
	}
	return toListResult(rows, next), nil
}

// Moderate applies an approve/reject decision. Pending is not a valid
// decision; a review goes back to pending only by being recreated.
func (s *service) Moderate(ctx context.Context, reviewID uuid.UUID, decision string) error {
	parsed, err := enums.ParseReviewStatus(decision)
	if err != nil || parsed == enums.ReviewStatusPending {
		return pkgerrors.New(pkgerrors.CodeValidation, "decision must be approved or rejected")
	}
	return s.repo.UpdateStatus(ctx, reviewID, parsed)
}

func employeeName(booking *models.Booking) string {
	if booking.EmployeeName != nil {
		return *booking.EmployeeName
	}
	return ""
}

func toReviewDTO(review *models.Review) ReviewDTO {
	return ReviewDTO{
		ID:             review.ID,
		BookingID:      review.BookingID,
		Rating:         review.Rating,
		EmployeeName:   review.EmployeeName,
		ServiceDetails: review.ServiceDetails,
		Status:         review.Status,
		ImageURLs:      []string(review.ImageURLs),
		CreatedAt:      review.CreatedAt,
	}
}

func toListResult(rows []models.Review, next *pagination.Cursor) *ListResult {
	result := &ListResult{Reviews: make([]ReviewDTO, 0, len(rows))}
	for i := range rows {
		result.Reviews = append(result.Reviews, toReviewDTO(&rows[i]))
	}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result
}
