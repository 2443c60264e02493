package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
)

// Booking represents one cart line persisted after a confirmed payment.
// Lines from a single checkout share an order number and payment ids.
// The delivery address is flattened into columns so admin filtering stays
// plain SQL.
type Booking struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNo        string              `gorm:"column:order_no;not null;index"`
	PaymentOrderID string              `gorm:"column:payment_order_id;not null;index"`
	PaymentID      *string             `gorm:"column:payment_id"`
	UserID         *uuid.UUID          `gorm:"column:user_id;type:uuid;index"`
	CustomerName   string              `gorm:"column:customer_name;not null"`
	ServiceID      *uuid.UUID          `gorm:"column:service_id;type:uuid"`
	ServiceName    string              `gorm:"column:service_name;not null"`
	ServiceTypes   pq.StringArray      `gorm:"column:service_types;type:text[];not null"`
	Quantity       int                 `gorm:"column:quantity;not null;default:1"`
	Date           string              `gorm:"column:date;not null"`
	BookingTime    string              `gorm:"column:booking_time;not null"`
	TotalPaise     int64               `gorm:"column:total_paise;not null"`
	Status         enums.BookingStatus `gorm:"column:status;not null;default:'Pending'"`
	Mobile         string              `gorm:"column:mobile;not null"`
	FlatNo         string              `gorm:"column:flat_no;not null"`
	Floor          *string             `gorm:"column:floor"`
	BuildingName   *string             `gorm:"column:building_name"`
	Street         string              `gorm:"column:street;not null"`
	AreaZone       *string             `gorm:"column:area_zone"`
	Landmark       *string             `gorm:"column:landmark"`
	City           string              `gorm:"column:city;not null"`
	State          string              `gorm:"column:state;not null"`
	Pincode        string              `gorm:"column:pincode;not null"`
	EmployeeName   *string             `gorm:"column:employee_name"`
	EmployeePhone  *string             `gorm:"column:employee_phone"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
