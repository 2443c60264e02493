package reviews

import (
	"context"
	"testing"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/pagination"
	"github.com/google/uuid"
)

type stubRepo struct {
	reviews    map[uuid.UUID]*models.Review
	lastStatus enums.ReviewStatus
}

func newStubRepo() *stubRepo {
	return &stubRepo{reviews: map[uuid.UUID]*models.Review{}}
}

func (s *stubRepo) Create(_ context.Context, review *models.Review) (*models.Review, error) {
	review.ID = uuid.New()
	s.reviews[review.ID] = review
	return review, nil
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Review, error) {
	if r, ok := s.reviews[id]; ok {
		return r, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
}

func (s *stubRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*models.Review, error) {
	for _, r := range s.reviews {
		if r.BookingID != nil && *r.BookingID == bookingID {
			return r, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
}

func (s *stubRepo) ListByStatus(_ context.Context, status enums.ReviewStatus, _ pagination.Params) ([]models.Review, *pagination.Cursor, error) {
	var out []models.Review
	for _, r := range s.reviews {
		if r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil, nil
}

func (s *stubRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Review, error) {
	var out []models.Review
	for _, r := range s.reviews {
		if r.UserID != nil && *r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubRepo) ListAll(context.Context, pagination.Params) ([]models.Review, *pagination.Cursor, error) {
	var out []models.Review
	for _, r := range s.reviews {
		out = append(out, *r)
	}
	return out, nil, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.ReviewStatus) error {
	r, ok := s.reviews[id]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
	}
	r.Status = status
	s.lastStatus = status
	return nil
}

type stubBookings struct {
	bookings map[uuid.UUID]*models.Booking
}

func (s *stubBookings) FindByID(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	if b, ok := s.bookings[id]; ok {
		return b, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
}

func workDoneBooking(userID uuid.UUID) *models.Booking {
	name := "Ravi Kumar"
	return &models.Booking{
		ID:           uuid.New(),
		UserID:       &userID,
		ServiceName:  "Wardrobe Installation",
		Status:       enums.BookingStatusWorkDone,
		EmployeeName: &name,
	}
}

func TestCreateReviewHappyPath(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	userID := uuid.New()
	booking := workDoneBooking(userID)
	svc := NewService(repo, &stubBookings{bookings: map[uuid.UUID]*models.Booking{booking.ID: booking}})

	dto, err := svc.Create(context.Background(), userID, CreateInput{
		BookingID: booking.ID,
		Rating:    5,
		ImageURLs: []string{"https://storage.googleapis.com/hc/r1.jpg"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dto.Status != enums.ReviewStatusPending {
		t.Fatalf("expected pending review, got %s", dto.Status)
	}
	if dto.EmployeeName != "Ravi Kumar" {
		t.Fatalf("expected employee name from booking, got %q", dto.EmployeeName)
	}
	if dto.ServiceDetails != "Wardrobe Installation" {
		t.Fatalf("expected service details from booking, got %q", dto.ServiceDetails)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	userID := uuid.New()
	booking := workDoneBooking(userID)
	svc := NewService(repo, &stubBookings{bookings: map[uuid.UUID]*models.Booking{booking.ID: booking}})

	_, err := svc.Create(context.Background(), userID, CreateInput{BookingID: booking.ID, Rating: 0})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for rating 0, got %v", err)
	}

	_, err = svc.Create(context.Background(), userID, CreateInput{
		BookingID: booking.ID,
		Rating:    4,
		ImageURLs: make([]string, 6),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for too many images, got %v", err)
	}
}

func TestCreateReviewRequiresWorkDone(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	userID := uuid.New()
	booking := workDoneBooking(userID)
	booking.Status = enums.BookingStatusConfirmed
	svc := NewService(repo, &stubBookings{bookings: map[uuid.UUID]*models.Booking{booking.ID: booking}})

	_, err := svc.Create(context.Background(), userID, CreateInput{BookingID: booking.ID, Rating: 4})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unfinished booking, got %v", err)
	}
}

func TestCreateReviewRejectsForeignBooking(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	booking := workDoneBooking(uuid.New())
	svc := NewService(repo, &stubBookings{bookings: map[uuid.UUID]*models.Booking{booking.ID: booking}})

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{BookingID: booking.ID, Rating: 4})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for another user's booking, got %v", err)
	}
}

func TestCreateReviewDuplicateBooking(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	userID := uuid.New()
	booking := workDoneBooking(userID)
	svc := NewService(repo, &stubBookings{bookings: map[uuid.UUID]*models.Booking{booking.ID: booking}})

	if _, err := svc.Create(context.Background(), userID, CreateInput{BookingID: booking.ID, Rating: 4}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	_, err := svc.Create(context.Background(), userID, CreateInput{BookingID: booking.ID, Rating: 5})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate review, got %v", err)
	}
}

func TestModerate(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	userID := uuid.New()
	booking := workDoneBooking(userID)
	svc := NewService(repo, &stubBookings{bookings: map[uuid.UUID]*models.Booking{booking.ID: booking}})

	dto, err := svc.Create(context.Background(), userID, CreateInput{BookingID: booking.ID, Rating: 4})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	if err := svc.Moderate(context.Background(), dto.ID, "approved"); err != nil {
		t.Fatalf("moderate: %v", err)
	}
	if repo.lastStatus != enums.ReviewStatusApproved {
		t.Fatalf("expected approved, got %s", repo.lastStatus)
	}

	err = svc.Moderate(context.Background(), dto.ID, "pending")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for pending decision, got %v", err)
	}

	err = svc.Moderate(context.Background(), uuid.New(), "rejected")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing review, got %v", err)
	}
}

func TestListApprovedFiltersPending(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	userID := uuid.New()
	booking := workDoneBooking(userID)
	svc := NewService(repo, &stubBookings{bookings: map[uuid.UUID]*models.Booking{booking.ID: booking}})

	dto, err := svc.Create(context.Background(), userID, CreateInput{BookingID: booking.ID, Rating: 4})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	result, err := svc.ListApproved(context.Background(), pagination.Params{})
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}
	if len(result.Reviews) != 0 {
		t.Fatalf("expected pending review hidden, got %d rows", len(result.Reviews))
	}

	if err := svc.Moderate(context.Background(), dto.ID, "approved"); err != nil {
		t.Fatalf("moderate: %v", err)
	}

	result, err = svc.ListApproved(context.Background(), pagination.Params{})
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}
	if len(result.Reviews) != 1 {
		t.Fatalf("expected one approved review, got %d", len(result.Reviews))
	}
}
