package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/anupamtiwari/homecraft-backend/internal/bookings"
	"github.com/anupamtiwari/homecraft-backend/internal/cart"
	"github.com/anupamtiwari/homecraft-backend/internal/pricing"
	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/logger"
	"github.com/anupamtiwari/homecraft-backend/pkg/razorpay"
	"github.com/anupamtiwari/homecraft-backend/pkg/types"
)

// Service orchestrates the two-step checkout: create a payment-gateway order
// for the cart total, then persist one booking row per cart line once the
// payment is confirmed.
type Service interface {
	CreateOrder(ctx context.Context, cartToken string, input CreateOrderInput) (*OrderDTO, error)
	Confirm(ctx context.Context, cartToken string, input ConfirmInput) (*ConfirmResult, error)
}

// Schedule is the requested service slot, carried onto every booking row.
type Schedule struct {
	Date        string `json:"date"`
	BookingTime string `json:"booking_time"`
}

// CreateOrderInput is the validated payload for the order-creation step.
type CreateOrderInput struct {
	Address  types.AddressFields
	Schedule Schedule
}

// ConfirmInput is the validated payload for the confirmation step. Signature
// may be empty when the gateway runs without webhook secrets in dev.
type ConfirmInput struct {
	Address   types.AddressFields
	Schedule  Schedule
	OrderID   string
	PaymentID string
	Signature string
}

// OrderDTO echoes the gateway order the client needs to open the payment
// widget.
type OrderDTO struct {
	OrderID     string `json:"order_id"`
	AmountPaise int64  `json:"amount_paise"`
	Currency    string `json:"currency"`
	KeyID       string `json:"key_id"`
}

// ConfirmResult reports the persisted order.
type ConfirmResult struct {
	OrderNo    string      `json:"order_no"`
	BookingIDs []uuid.UUID `json:"booking_ids"`
}

type gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*razorpay.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
	Currency() string
}

type cartAccess interface {
	Load(ctx context.Context, token string) ([]cart.Line, error)
	Clear(ctx context.Context, token string) error
}

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userResolver interface {
	UserIDFromContext(ctx context.Context) *uuid.UUID
}

type service struct {
	carts    cartAccess
	gateway  gateway
	repo     bookings.Repository
	db       transactor
	users    userResolver
	logg     *logger.Logger
	now      func() time.Time
	orderNum func(time.Time) string
}

// Options configures the checkout orchestrator.
type Options struct {
	Carts   cartAccess
	Gateway gateway
	Repo    bookings.Repository
	DB      transactor
	Users   userResolver
	Logger  *logger.Logger
	Now     func() time.Time
}

// NewService wires the checkout orchestrator.
func NewService(opts Options) (Service, error) {
	if opts.Carts == nil || opts.Gateway == nil || opts.Repo == nil || opts.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotConfigured, "checkout requires cart store, gateway, repository and db")
	}
	if opts.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotConfigured, "checkout requires a logger")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		carts:    opts.Carts,
		gateway:  opts.Gateway,
		repo:     opts.Repo,
		db:       opts.DB,
		users:    opts.Users,
		logg:     opts.Logger,
		now:      now,
		orderNum: defaultOrderNo,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, cartToken string, input CreateOrderInput) (*OrderDTO, error) {
	lines, err := s.validatedCart(ctx, cartToken, input.Address, input.Schedule)
	if err != nil {
		return nil, err
	}

	amountPaise, err := cartAmountPaise(lines)
	if err != nil {
		return nil, err
	}

	receipt := s.orderNum(s.now())
	order, err := s.gateway.CreateOrder(ctx, amountPaise, receipt)
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]interface{}{
		"gateway_order_id": order.ID,
		"amount_paise":     order.Amount,
	}), "payment order created")

	return &OrderDTO{
		OrderID:     order.ID,
		AmountPaise: order.Amount,
		Currency:    s.gateway.Currency(),
		KeyID:       s.gateway.KeyID(),
	}, nil
}

func (s *service) Confirm(ctx context.Context, cartToken string, input ConfirmInput) (*ConfirmResult, error) {
	if strings.TrimSpace(input.OrderID) == "" || strings.TrimSpace(input.PaymentID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment order id and payment id are required")
	}

	lines, err := s.validatedCart(ctx, cartToken, input.Address, input.Schedule)
	if err != nil {
		return nil, err
	}

	if input.Signature != "" && !s.gateway.VerifySignature(input.OrderID, input.PaymentID, input.Signature) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment signature mismatch")
	}

	var userID *uuid.UUID
	if s.users != nil {
		userID = s.users.UserIDFromContext(ctx)
	}

	now := s.now()
	orderNo := s.orderNum(now)
	rows, err := bookingRows(orderNo, userID, lines, input)
	if err != nil {
		return nil, err
	}

	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).InsertBookings(ctx, rows)
	})
	if txErr != nil {
		if typed := pkgerrors.As(txErr); typed != nil {
			return nil, txErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "failed to persist bookings")
	}

	// The cart is cleared only after the transaction committed; a failed
	// clear must not undo a paid order, so it is logged and swallowed.
	if err := s.carts.Clear(ctx, cartToken); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "order_no", orderNo), "failed to clear cart after checkout")
	}

	result := &ConfirmResult{OrderNo: orderNo, BookingIDs: make([]uuid.UUID, 0, len(rows))}
	for _, row := range rows {
		result.BookingIDs = append(result.BookingIDs, row.ID)
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]interface{}{
		"order_no": orderNo,
		"rows":     len(rows),
	}), "checkout confirmed")

	return result, nil
}

// validatedCart runs the pre-gateway checks shared by both steps: the cart
// must be non-empty, the address must validate, the schedule must be present
// and every line must still have a billable selection. All failures are
// collected so the caller sees the full picture in one round trip.
func (s *service) validatedCart(ctx context.Context, cartToken string, address types.AddressFields, schedule Schedule) ([]cart.Line, error) {
	if strings.TrimSpace(cartToken) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	lines, err := s.carts.Load(ctx, cartToken)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	fieldErrs := address.Validate()
	if strings.TrimSpace(schedule.Date) == "" {
		fieldErrs["date"] = "date is required"
	}
	if strings.TrimSpace(schedule.BookingTime) == "" {
		fieldErrs["booking_time"] = "booking time is required"
	}

	var lineErr error
	for _, line := range lines {
		if len(line.SelectedServices) == 0 {
			lineErr = multierr.Append(lineErr,
				fmt.Errorf("line %s has no selected sub-services", line.ServiceID))
		}
		if line.Quantity < 1 {
			lineErr = multierr.Append(lineErr,
				fmt.Errorf("line %s has quantity below one", line.ServiceID))
		}
	}

	if len(fieldErrs) > 0 || lineErr != nil {
		details := map[string]interface{}{}
		for field, msg := range fieldErrs {
			details[field] = msg
		}
		for i, err := range multierr.Errors(lineErr) {
			details[fmt.Sprintf("line_%d", i)] = err.Error()
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout payload is invalid").WithDetails(details)
	}

	return lines, nil
}

func cartAmountPaise(lines []cart.Line) (int64, error) {
	pricingLines := make([]pricing.Line, 0, len(lines))
	for _, line := range lines {
		pricingLines = append(pricingLines, line.PricingLine())
	}
	return pricing.ToPaise(pricing.CartTotal(pricingLines))
}

func bookingRows(orderNo string, userID *uuid.UUID, lines []cart.Line, input ConfirmInput) ([]*models.Booking, error) {
	rows := make([]*models.Booking, 0, len(lines))
	for _, line := range lines {
		linePaise, err := pricing.ToPaise(pricing.LineTotal(line.PricingLine()))
		if err != nil {
			return nil, err
		}

		serviceID := line.ServiceID
		paymentID := input.PaymentID
		rows = append(rows, &models.Booking{
			OrderNo:        orderNo,
			PaymentOrderID: input.OrderID,
			PaymentID:      &paymentID,
			UserID:         userID,
			CustomerName:   input.Address.CustomerName,
			ServiceID:      &serviceID,
			ServiceName:    line.ServiceName,
			ServiceTypes:   serviceTypeStrings(line.SelectedServices),
			Quantity:       line.Quantity,
			Date:           input.Schedule.Date,
			BookingTime:    input.Schedule.BookingTime,
			TotalPaise:     linePaise,
			Status:         enums.BookingStatusPending,
			Mobile:         input.Address.Mobile,
			FlatNo:         input.Address.FlatNo,
			Floor:          optional(input.Address.Floor),
			BuildingName:   optional(input.Address.BuildingName),
			Street:         input.Address.Street,
			AreaZone:       optional(input.Address.AreaZone),
			Landmark:       optional(input.Address.Landmark),
			City:           input.Address.City,
			State:          input.Address.State,
			Pincode:        input.Address.Pincode,
		})
	}
	return rows, nil
}

func serviceTypeStrings(selected []enums.ServiceType) pq.StringArray {
	out := make(pq.StringArray, 0, len(selected))
	for _, st := range selected {
		out = append(out, st.String())
	}
	return out
}

func optional(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func defaultOrderNo(now time.Time) string {
	return fmt.Sprintf("HC-%s-%s", now.UTC().Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}
