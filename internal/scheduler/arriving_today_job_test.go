package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anupamtiwari/homecraft-backend/pkg/logger"
)

type stubPromoter struct {
	gotDate  string
	affected int64
	err      error
}

func (s *stubPromoter) MarkArrivingToday(_ context.Context, date string) (int64, error) {
	s.gotDate = date
	return s.affected, s.err
}

func TestArrivingTodayJobUsesConfiguredLocation(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "scheduler-test"})
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	promoter := &stubPromoter{affected: 2}
	// 20:00 UTC on Sept 1st is already Sept 2nd in IST.
	fixed := time.Date(2026, time.September, 1, 20, 0, 0, 0, time.UTC)
	job, err := NewArrivingTodayJob(ArrivingTodayJobParams{
		Logger:   logg,
		Bookings: promoter,
		Location: kolkata,
		Now:      func() time.Time { return fixed },
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run job: %v", err)
	}
	if promoter.gotDate != "2026-09-02" {
		t.Fatalf("expected IST date 2026-09-02, got %s", promoter.gotDate)
	}
}

func TestArrivingTodayJobPropagatesRepositoryError(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "scheduler-test"})
	promoter := &stubPromoter{err: errors.New("db down")}
	job, err := NewArrivingTodayJob(ArrivingTodayJobParams{
		Logger:   logg,
		Bookings: promoter,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected the repository error to surface")
	}
}

func TestNewArrivingTodayJobRequiresBookings(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "scheduler-test"})
	if _, err := NewArrivingTodayJob(ArrivingTodayJobParams{Logger: logg}); err == nil {
		t.Fatal("expected error for missing booking repository")
	}
}
