package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/anupamtiwari/homecraft-backend/pkg/logger"
)

const bookingDateLayout = "2006-01-02"

// bookingPromoter is the slice of the booking repository the job needs.
type bookingPromoter interface {
	MarkArrivingToday(ctx context.Context, date string) (int64, error)
}

// ArrivingTodayJobParams configure the booking-day promotion job.
type ArrivingTodayJobParams struct {
	Logger   *logger.Logger
	Bookings bookingPromoter
	Location *time.Location
	Now      func() time.Time
}

// NewArrivingTodayJob builds the job that moves confirmed bookings scheduled
// for the current day to the Arriving Today status. The update is a single
// conditional write, so re-running within the same day is a no-op.
func NewArrivingTodayJob(params ArrivingTodayJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Bookings == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	loc := params.Location
	if loc == nil {
		loc = time.Local
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &arrivingTodayJob{
		logg:     params.Logger,
		bookings: params.Bookings,
		loc:      loc,
		now:      now,
	}, nil
}

type arrivingTodayJob struct {
	logg     *logger.Logger
	bookings bookingPromoter
	loc      *time.Location
	now      func() time.Time
}

func (j *arrivingTodayJob) Name() string { return "booking-arriving-today" }

func (j *arrivingTodayJob) Run(ctx context.Context) error {
	day := j.now().In(j.loc).Format(bookingDateLayout)
	affected, err := j.bookings.MarkArrivingToday(ctx, day)
	if err != nil {
		return fmt.Errorf("promote bookings for %s: %w", day, err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"date": day, "count": affected})
	j.logg.Info(logCtx, "arriving today promotion complete")
	return nil
}
