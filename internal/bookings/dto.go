package bookings

import (
	"time"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	"github.com/anupamtiwari/homecraft-backend/pkg/types"
	"github.com/google/uuid"
)

// BookingDTO is the API shape for a booking. The flattened address columns
// are folded back into the structured address used at checkout.
type BookingDTO struct {
	ID             uuid.UUID           `json:"id"`
	OrderNo        string              `json:"order_no"`
	PaymentOrderID string              `json:"payment_order_id"`
	PaymentID      *string             `json:"payment_id,omitempty"`
	ServiceID      *uuid.UUID          `json:"service_id,omitempty"`
	ServiceName    string              `json:"service_name"`
	ServiceTypes   []string            `json:"service_types"`
	Quantity       int                 `json:"quantity"`
	Date           string              `json:"date"`
	BookingTime    string              `json:"booking_time"`
	TotalPaise     int64               `json:"total_paise"`
	Status         enums.BookingStatus `json:"status"`
	Address        types.AddressFields `json:"address"`
	EmployeeName   *string             `json:"employee_name,omitempty"`
	EmployeePhone  *string             `json:"employee_phone,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func toBookingDTO(booking *models.Booking) BookingDTO {
	return BookingDTO{
		ID:             booking.ID,
		OrderNo:        booking.OrderNo,
		PaymentOrderID: booking.PaymentOrderID,
		PaymentID:      booking.PaymentID,
		ServiceID:      booking.ServiceID,
		ServiceName:    booking.ServiceName,
		ServiceTypes:   []string(booking.ServiceTypes),
		Quantity:       booking.Quantity,
		Date:           booking.Date,
		BookingTime:    booking.BookingTime,
		TotalPaise:     booking.TotalPaise,
		Status:         booking.Status,
		Address: types.AddressFields{
			CustomerName: booking.CustomerName,
			Mobile:       booking.Mobile,
			FlatNo:       booking.FlatNo,
			Floor:        deref(booking.Floor),
			BuildingName: deref(booking.BuildingName),
			Street:       booking.Street,
			AreaZone:     deref(booking.AreaZone),
			Landmark:     deref(booking.Landmark),
			City:         booking.City,
			State:        booking.State,
			Pincode:      booking.Pincode,
		},
		EmployeeName:  booking.EmployeeName,
		EmployeePhone: booking.EmployeePhone,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
