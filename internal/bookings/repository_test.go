package bookings

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("HOMECRAFT_DB_DSN")
	if dsn == "" {
		t.Skip("HOMECRAFT_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func mustInsertBooking(t *testing.T, repo Repository, userID *uuid.UUID, orderNo string) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		OrderNo:        orderNo,
		PaymentOrderID: fmt.Sprintf("order_%s", uuid.NewString()),
		UserID:         userID,
		CustomerName:   "Repo Tester",
		ServiceName:    "Wardrobe Installation",
		ServiceTypes:   pq.StringArray{"installation"},
		Quantity:       1,
		Date:           "2026-09-01",
		BookingTime:    "10:00",
		TotalPaise:     50000,
		Status:         enums.BookingStatusPending,
		Mobile:         "9876543210",
		FlatNo:         "12B",
		Street:         "MG Road",
		City:           "Pune",
		State:          "MH",
		Pincode:        "411001",
	}
	if err := repo.InsertBookings(context.Background(), []*models.Booking{booking}); err != nil {
		t.Fatalf("insert booking: %v", err)
	}
	return booking
}

func TestRepositoryListByUserPagination(t *testing.T) {
	conn := openTestDB(t)

	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(conn).WithTx(tx)
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		mustInsertBooking(t, repo, &userID, fmt.Sprintf("HC-%d", i))
	}
	mustInsertBooking(t, repo, nil, "HC-guest")

	rows, next, err := repo.ListByUser(context.Background(), userID, pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if next == nil {
		t.Fatal("expected a next cursor")
	}

	rest, final, err := repo.ListByUser(context.Background(), userID, pagination.Params{
		Limit:  2,
		Cursor: pagination.EncodeCursor(*next),
	})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(rest) != 1 {
		t.Fatalf("expected 1 row on second page, got %d", len(rest))
	}
	if final != nil {
		t.Fatal("expected no cursor on the last page")
	}
}

func TestRepositoryStatusWriteIfPresent(t *testing.T) {
	conn := openTestDB(t)

	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(conn).WithTx(tx)
	userID := uuid.New()
	booking := mustInsertBooking(t, repo, &userID, "HC-status")

	if err := repo.UpdateStatus(context.Background(), booking.ID, enums.BookingStatusConfirmed); err != nil {
		t.Fatalf("update status: %v", err)
	}

	err := repo.UpdateStatus(context.Background(), uuid.New(), enums.BookingStatusConfirmed)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	err = repo.AssignEmployee(context.Background(), uuid.New(), "Ravi", "9876543210")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRepositoryAdminFilters(t *testing.T) {
	conn := openTestDB(t)

	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(conn).WithTx(tx)
	userID := uuid.New()
	booking := mustInsertBooking(t, repo, &userID, "HC-filter")

	if err := repo.UpdateStatus(context.Background(), booking.ID, enums.BookingStatusWorkDone); err != nil {
		t.Fatalf("update status: %v", err)
	}

	status := enums.BookingStatusWorkDone
	rows, _, err := repo.ListAll(context.Background(), ListFilters{Status: &status}, pagination.Params{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}

	found := false
	for _, row := range rows {
		if row.ID == booking.ID {
			found = true
		}
		if row.Status != enums.BookingStatusWorkDone {
			t.Fatalf("filter leaked status %s", row.Status)
		}
	}
	if !found {
		t.Fatal("expected the Work Done booking in the filtered listing")
	}
}

func TestRepositoryMarkArrivingToday(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(conn).WithTx(tx)
	userID := uuid.New()

	today := mustInsertBooking(t, repo, &userID, "HC-arriving")
	if err := repo.UpdateStatus(context.Background(), today.ID, enums.BookingStatusConfirmed); err != nil {
		t.Fatalf("confirm booking: %v", err)
	}

	// Pending bookings and bookings on other days must stay untouched.
	pending := mustInsertBooking(t, repo, &userID, "HC-arriving-pending")
	otherDay := mustInsertBooking(t, repo, &userID, "HC-arriving-later")
	if err := repo.UpdateStatus(context.Background(), otherDay.ID, enums.BookingStatusConfirmed); err != nil {
		t.Fatalf("confirm booking: %v", err)
	}
	if err := tx.Model(&models.Booking{}).Where("id = ?", otherDay.ID).
		Update("date", "2026-09-15").Error; err != nil {
		t.Fatalf("move booking date: %v", err)
	}

	affected, err := repo.MarkArrivingToday(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("mark arriving today: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}

	got, err := repo.FindByID(context.Background(), today.ID)
	if err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if got.Status != enums.BookingStatusArrivingToday {
		t.Fatalf("unexpected status %s", got.Status)
	}

	unchanged, err := repo.FindByID(context.Background(), pending.ID)
	if err != nil {
		t.Fatalf("reload pending booking: %v", err)
	}
	if unchanged.Status != enums.BookingStatusPending {
		t.Fatalf("pending booking should not move, got %s", unchanged.Status)
	}
}
