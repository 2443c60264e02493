package bookings

import (
	"context"
	"strings"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/pagination"
	"github.com/google/uuid"
)

// Service exposes booking reads for customers and booking management for the
// back office. Rows are only ever created by checkout; nothing here inserts.
type Service interface {
	ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResult, error)
	GetMine(ctx context.Context, userID, bookingID uuid.UUID) (*BookingDTO, error)

	AdminList(ctx context.Context, input AdminListInput) (*ListResult, error)
	AdminGet(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status string) error
	AssignEmployee(ctx context.Context, bookingID uuid.UUID, name, phone string) error
}

// AdminListInput carries the raw filter values from the admin listing
// endpoint; status is validated against the known lifecycle values.
type AdminListInput struct {
	Status     string
	Date       string
	Pagination pagination.Params
}

// ListResult is one page of bookings plus the cursor for the next page.
type ListResult struct {
	Bookings   []BookingDTO `json:"bookings"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

type service struct {
	repo Repository
}

// NewService builds the booking service on top of the repository.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResult, error) {
	rows, next, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list bookings")
	}
	return toListResult(rows, next), nil
}

func (s *service) GetMine(ctx context.Context, userID, bookingID uuid.UUID) (*BookingDTO, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	// Hide other customers' bookings instead of revealing they exist.
	if booking.UserID == nil || *booking.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	dto := toBookingDTO(booking)
	return &dto, nil
}

func (s *service) AdminList(ctx context.Context, input AdminListInput) (*ListResult, error) {
	filters := ListFilters{}
	if strings.TrimSpace(input.Status) != "" {
		status, err := enums.ParseBookingStatus(input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown booking status filter")
		}
		filters.Status = &status
	}
	if strings.TrimSpace(input.Date) != "" {
		date := strings.TrimSpace(input.Date)
		filters.Date = &date
	}

	rows, next, err := s.repo.ListAll(ctx, filters, input.Pagination)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list bookings")
	}
	return toListResult(rows, next), nil
}

func (s *service) AdminGet(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	dto := toBookingDTO(booking)
	return &dto, nil
}

func (s *service) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status string) error {
	parsed, err := enums.ParseBookingStatus(status)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown booking status")
	}
	return s.repo.UpdateStatus(ctx, bookingID, parsed)
}

func (s *service) AssignEmployee(ctx context.Context, bookingID uuid.UUID, name, phone string) error {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "employee name is required")
	}
	if len(phone) != 10 || strings.Trim(phone, "0123456789") != "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "employee phone must be a 10-digit number")
	}
	return s.repo.AssignEmployee(ctx, bookingID, name, phone)
}

func toListResult(rows []models.Booking, next *pagination.Cursor) *ListResult {
	result := &ListResult{Bookings: make([]BookingDTO, 0, len(rows))}
	for i := range rows {
		result.Bookings = append(result.Bookings, toBookingDTO(&rows[i]))
	}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result
}
