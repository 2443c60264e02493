package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilters holds the optional admin listing filters.
type ListFilters struct {
	Status *enums.BookingStatus
	Date   *string
}

// Repository defines booking persistence. Checkout binds it to its own
// transaction via WithTx; everything else runs on the root connection.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	InsertBookings(ctx context.Context, bookings []*models.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Booking, *pagination.Cursor, error)
	ListAll(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Booking, *pagination.Cursor, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) error
	AssignEmployee(ctx context.Context, id uuid.UUID, name, phone string) error
	MarkArrivingToday(ctx context.Context, date string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// InsertBookings persists one row per cart line. The insert must report the
// same row count as the batch; anything less fails the whole operation.
func (r *repository) InsertBookings(ctx context.Context, bookings []*models.Booking) error {
	if len(bookings) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no booking rows to insert")
	}

	result := r.db.WithContext(ctx).Create(bookings)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(bookings)) {
		return pkgerrors.New(pkgerrors.CodeInternal,
			fmt.Sprintf("booking insert wrote %d of %d rows", result.RowsAffected, len(bookings)))
	}
	return nil
}

// FindByID loads a single booking row.
func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, err
	}
	return &booking, nil
}

// ListByUser returns the caller's bookings newest first with cursor pagination.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Booking, *pagination.Cursor, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pagination cursor")
	}

	query := r.db.WithContext(ctx).Model(&models.Booking{}).Where("user_id = ?", userID)
	return r.page(query, cursor, params.Limit)
}

// ListAll returns bookings for the back office, optionally filtered by
// status and service date.
func (r *repository) ListAll(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Booking, *pagination.Cursor, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pagination cursor")
	}

	query := r.db.WithContext(ctx).Model(&models.Booking{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Date != nil {
		query = query.Where("date = ?", *filters.Date)
	}
	return r.page(query, cursor, params.Limit)
}

func (r *repository) page(query *gorm.DB, cursor *pagination.Cursor, limit int) ([]models.Booking, *pagination.Cursor, error) {
	buffered := pagination.LimitWithBuffer(limit)
	normalized := pagination.NormalizeLimit(limit)
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var bookings []models.Booking
	if err := query.Order("created_at DESC, id DESC").Limit(buffered).Find(&bookings).Error; err != nil {
		return nil, nil, err
	}

	if len(bookings) > normalized {
		next := bookings[normalized]
		bookings = bookings[:normalized]
		return bookings, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return bookings, nil, nil
}

// UpdateStatus writes the new status only when the row exists. Zero affected
// rows reports NotFound so the optimistic admin client rolls back.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	return nil
}

// MarkArrivingToday promotes every confirmed booking scheduled for the given
// day. Returns the number of rows touched so the scheduler can log it.
func (r *repository) MarkArrivingToday(ctx context.Context, date string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ? AND date = ?", enums.BookingStatusConfirmed, date).
		Update("status", enums.BookingStatusArrivingToday)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// AssignEmployee records the crew member handling the booking, with the same
// write-if-present contract as UpdateStatus.
func (r *repository) AssignEmployee(ctx context.Context, id uuid.UUID, name, phone string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"employee_name":  name,
			"employee_phone": phone,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	return nil
}
