package enums

import "fmt"

// BookingStatus tracks the lifecycle of a service booking.
type BookingStatus string

const (
	BookingStatusPending       BookingStatus = "Pending"
	BookingStatusConfirmed     BookingStatus = "Confirmed"
	BookingStatusArrivingToday BookingStatus = "Arriving Today"
	BookingStatusWorkDone      BookingStatus = "Work Done"
)

var validBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusArrivingToday,
	BookingStatusWorkDone,
}

// String implements fmt.Stringer.
func (b BookingStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BookingStatus.
func (b BookingStatus) IsValid() bool {
	for _, candidate := range validBookingStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBookingStatus converts raw input into a BookingStatus.
func ParseBookingStatus(value string) (BookingStatus, error) {
	for _, candidate := range validBookingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking status %q", value)
}
