package bookings

import (
	"context"
	"testing"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubRepo struct {
	bookings map[uuid.UUID]*models.Booking

	lastFilters  ListFilters
	lastStatus   enums.BookingStatus
	lastEmployee [2]string
}

func newStubRepo() *stubRepo {
	return &stubRepo{bookings: map[uuid.UUID]*models.Booking{}}
}

func (s *stubRepo) WithTx(*gorm.DB) Repository { return s }

func (s *stubRepo) InsertBookings(_ context.Context, rows []*models.Booking) error {
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		s.bookings[row.ID] = row
	}
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	if b, ok := s.bookings[id]; ok {
		return b, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
}

func (s *stubRepo) ListByUser(_ context.Context, userID uuid.UUID, _ pagination.Params) ([]models.Booking, *pagination.Cursor, error) {
	var out []models.Booking
	for _, b := range s.bookings {
		if b.UserID != nil && *b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil, nil
}

func (s *stubRepo) ListAll(_ context.Context, filters ListFilters, _ pagination.Params) ([]models.Booking, *pagination.Cursor, error) {
	s.lastFilters = filters
	var out []models.Booking
	for _, b := range s.bookings {
		if filters.Status != nil && b.Status != *filters.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.BookingStatus) error {
	b, ok := s.bookings[id]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	b.Status = status
	s.lastStatus = status
	return nil
}

func (s *stubRepo) MarkArrivingToday(_ context.Context, date string) (int64, error) {
	var affected int64
	for _, b := range s.bookings {
		if b.Status == enums.BookingStatusConfirmed && b.Date == date {
			b.Status = enums.BookingStatusArrivingToday
			affected++
		}
	}
	return affected, nil
}

func (s *stubRepo) AssignEmployee(_ context.Context, id uuid.UUID, name, phone string) error {
	if _, ok := s.bookings[id]; !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	s.lastEmployee = [2]string{name, phone}
	return nil
}

func seedBooking(repo *stubRepo, userID *uuid.UUID) *models.Booking {
	booking := &models.Booking{
		ID:           uuid.New(),
		OrderNo:      "HC-1001",
		UserID:       userID,
		ServiceName:  "Wardrobe Installation",
		ServiceTypes: []string{"installation"},
		Quantity:     1,
		TotalPaise:   50000,
		Status:       enums.BookingStatusPending,
	}
	repo.bookings[booking.ID] = booking
	return booking
}

func TestGetMineHidesOtherUsersBookings(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	owner := uuid.New()
	booking := seedBooking(repo, &owner)
	svc := NewService(repo)

	if _, err := svc.GetMine(context.Background(), owner, booking.ID); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}

	_, err := svc.GetMine(context.Background(), uuid.New(), booking.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for non-owner, got %v", err)
	}
}

func TestGetMineGuestBooking(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	booking := seedBooking(repo, nil)
	svc := NewService(repo)

	_, err := svc.GetMine(context.Background(), uuid.New(), booking.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for booking without owner, got %v", err)
	}
}

func TestAdminListStatusFilter(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	owner := uuid.New()
	seedBooking(repo, &owner)
	svc := NewService(repo)

	if _, err := svc.AdminList(context.Background(), AdminListInput{Status: "shipped"}); err == nil {
		t.Fatal("expected validation error for unknown status")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error code, got %v", err)
	}

	result, err := svc.AdminList(context.Background(), AdminListInput{Status: "Arriving Today"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilters.Status == nil || *repo.lastFilters.Status != enums.BookingStatusArrivingToday {
		t.Fatalf("expected status filter passed through, got %+v", repo.lastFilters)
	}
	if len(result.Bookings) != 0 {
		t.Fatalf("expected no Arriving Today bookings, got %d", len(result.Bookings))
	}
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	owner := uuid.New()
	booking := seedBooking(repo, &owner)
	svc := NewService(repo)

	if err := svc.UpdateStatus(context.Background(), booking.ID, "Work Done"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastStatus != enums.BookingStatusWorkDone {
		t.Fatalf("expected Work Done, got %s", repo.lastStatus)
	}

	err := svc.UpdateStatus(context.Background(), booking.ID, "Cancelled")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}

	err = svc.UpdateStatus(context.Background(), uuid.New(), "Confirmed")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing booking, got %v", err)
	}
}

func TestAssignEmployeeValidation(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	owner := uuid.New()
	booking := seedBooking(repo, &owner)
	svc := NewService(repo)

	err := svc.AssignEmployee(context.Background(), booking.ID, "  ", "9876543210")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}

	err = svc.AssignEmployee(context.Background(), booking.ID, "Ravi", "12345")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for short phone, got %v", err)
	}

	if err := svc.AssignEmployee(context.Background(), booking.ID, " Ravi Kumar ", "9876543210"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastEmployee != [2]string{"Ravi Kumar", "9876543210"} {
		t.Fatalf("expected trimmed assignment, got %v", repo.lastEmployee)
	}
}
