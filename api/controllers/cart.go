package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/anupamtiwari/homecraft-backend/api/responses"
	"github.com/anupamtiwari/homecraft-backend/api/validators"
	cartsvc "github.com/anupamtiwari/homecraft-backend/internal/cart"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/logger"
)

const cartTokenHeader = "X-Cart-Token"

type cartAddRequest struct {
	ServiceID        uuid.UUID `json:"service_id" validate:"required"`
	SelectedServices []string  `json:"selected_services" validate:"required,min=1"`
	Quantity         int       `json:"quantity" validate:"required,min=1"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartFetch returns the cart for the caller's token; a missing token yields
// an empty cart under a freshly minted token.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(r)
		w.Header().Set(cartTokenHeader, token)

		view, err := svc.Get(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartAdd adds a service line, replacing the line's selection and quantity
// when the service is already in the cart.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(r)
		w.Header().Set(cartTokenHeader, token)

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		selected, err := parseServiceTypes(payload.SelectedServices)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Add(r.Context(), token, cartsvc.AddInput{
			ServiceID:        payload.ServiceID,
			SelectedServices: selected,
			Quantity:         payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(r)
		w.Header().Set(cartTokenHeader, token)

		serviceID, err := pathUUID(r, "serviceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpdateQuantity(r.Context(), token, serviceID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(r)
		w.Header().Set(cartTokenHeader, token)

		serviceID, err := pathUUID(r, "serviceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Remove(r.Context(), token, serviceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func cartToken(r *http.Request) string {
	token := strings.TrimSpace(r.Header.Get(cartTokenHeader))
	if token == "" {
		return uuid.NewString()
	}
	return token
}

func parseServiceTypes(values []string) ([]enums.ServiceType, error) {
	parsed := make([]enums.ServiceType, 0, len(values))
	for _, value := range values {
		st := enums.ServiceType(strings.ToLower(strings.TrimSpace(value)))
		if !st.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown service type").WithDetails(map[string]any{"service_type": value})
		}
		parsed = append(parsed, st)
	}
	return parsed, nil
}
