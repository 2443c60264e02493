package controllers

import (
	"net/http"
	"strings"

	"github.com/anupamtiwari/homecraft-backend/api/responses"
	"github.com/anupamtiwari/homecraft-backend/api/validators"
	checkoutsvc "github.com/anupamtiwari/homecraft-backend/internal/checkout"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/logger"
	"github.com/anupamtiwari/homecraft-backend/pkg/types"
)

type checkoutOrderRequest struct {
	Address     types.AddressFields `json:"address"`
	Date        string              `json:"date"`
	BookingTime string              `json:"booking_time"`
}

type checkoutConfirmRequest struct {
	Address           types.AddressFields `json:"address"`
	Date              string              `json:"date"`
	BookingTime       string              `json:"booking_time"`
	RazorpayOrderID   string              `json:"razorpay_order_id"`
	RazorpayPaymentID string              `json:"razorpay_payment_id"`
	RazorpaySignature string              `json:"razorpay_signature"`
}

type paymentsKeyProvider interface {
	KeyID() string
	Currency() string
}

// CheckoutOrder validates the cart and opens a gateway order for it.
func CheckoutOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := requiredCartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CreateOrder(r.Context(), token, checkoutsvc.CreateOrderInput{
			Address:  payload.Address,
			Schedule: checkoutsvc.Schedule{Date: payload.Date, BookingTime: payload.BookingTime},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// CheckoutConfirm verifies the payment and persists one booking per cart line.
func CheckoutConfirm(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := requiredCartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutConfirmRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Confirm(r.Context(), token, checkoutsvc.ConfirmInput{
			Address:   payload.Address,
			Schedule:  checkoutsvc.Schedule{Date: payload.Date, BookingTime: payload.BookingTime},
			OrderID:   payload.RazorpayOrderID,
			PaymentID: payload.RazorpayPaymentID,
			Signature: payload.RazorpaySignature,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// PaymentsKey exposes the publishable gateway key the widget needs.
func PaymentsKey(gateway paymentsKeyProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gateway == nil || gateway.KeyID() == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotConfigured, "payment gateway unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{
			"key_id":   gateway.KeyID(),
			"currency": gateway.Currency(),
		})
	}
}

func requiredCartToken(r *http.Request) (string, error) {
	token := strings.TrimSpace(r.Header.Get(cartTokenHeader))
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	return token, nil
}
