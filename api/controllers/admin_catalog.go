package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/anupamtiwari/homecraft-backend/api/responses"
	"github.com/anupamtiwari/homecraft-backend/api/validators"
	"github.com/anupamtiwari/homecraft-backend/internal/catalog"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/logger"
)

type categoryCreateRequest struct {
	Name     string  `json:"name" validate:"required"`
	ImageURL *string `json:"image_url"`
	Position int     `json:"position" validate:"min=0"`
}

type subcategoryCreateRequest struct {
	CategoryID uuid.UUID `json:"category_id" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	ImageURL   *string   `json:"image_url"`
}

type serviceCreateRequest struct {
	SubcategoryID     uuid.UUID        `json:"subcategory_id" validate:"required"`
	Name              string           `json:"name" validate:"required"`
	Description       *string          `json:"description"`
	ImageURL          *string          `json:"image_url"`
	InstallationPrice *decimal.Decimal `json:"installation_price"`
	DismantlingPrice  *decimal.Decimal `json:"dismantling_price"`
	RepairPrice       *decimal.Decimal `json:"repair_price"`
	Active            *bool            `json:"active"`
}

// serviceUpdateRequest keeps the price fields as single pointers; a raw
// field-presence pass upgrades them to double pointers so an explicit null
// clears the price while an absent field leaves it alone.
type serviceUpdateRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	ImageURL          *string          `json:"image_url"`
	InstallationPrice *decimal.Decimal `json:"installation_price"`
	DismantlingPrice  *decimal.Decimal `json:"dismantling_price"`
	RepairPrice       *decimal.Decimal `json:"repair_price"`
	Active            *bool            `json:"active"`
}

type serviceActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

func AdminCategoryCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload categoryCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), catalog.CreateCategoryInput{
			Name:     payload.Name,
			ImageURL: payload.ImageURL,
			Position: payload.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

func AdminSubcategoryCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload subcategoryCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		subcategory, err := svc.CreateSubcategory(r.Context(), catalog.CreateSubcategoryInput{
			CategoryID: payload.CategoryID,
			Name:       payload.Name,
			ImageURL:   payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, subcategory)
	}
}

func AdminServiceCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload serviceCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		active := true
		if payload.Active != nil {
			active = *payload.Active
		}

		service, err := svc.CreateService(r.Context(), catalog.CreateServiceInput{
			SubcategoryID:     payload.SubcategoryID,
			Name:              payload.Name,
			Description:       payload.Description,
			ImageURL:          payload.ImageURL,
			InstallationPrice: payload.InstallationPrice,
			DismantlingPrice:  payload.DismantlingPrice,
			RepairPrice:       payload.RepairPrice,
			Active:            active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, service)
	}
}

func AdminServiceUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, err := pathUUID(r, "serviceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request body"))
			return
		}

		var payload serviceUpdateRequest
		if err := json.Unmarshal(body, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}

		var present map[string]json.RawMessage
		if err := json.Unmarshal(body, &present); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}

		input := catalog.UpdateServiceInput{
			Name:        payload.Name,
			Description: payload.Description,
			ImageURL:    payload.ImageURL,
			Active:      payload.Active,
		}
		if _, ok := present["installation_price"]; ok {
			input.InstallationPrice = &payload.InstallationPrice
		}
		if _, ok := present["dismantling_price"]; ok {
			input.DismantlingPrice = &payload.DismantlingPrice
		}
		if _, ok := present["repair_price"]; ok {
			input.RepairPrice = &payload.RepairPrice
		}

		service, err := svc.UpdateService(r.Context(), serviceID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, service)
	}
}

func AdminServiceSetActive(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, err := pathUUID(r, "serviceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload serviceActiveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetServiceActive(r.Context(), serviceID, *payload.Active); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": serviceID, "active": *payload.Active})
	}
}
