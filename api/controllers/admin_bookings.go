package controllers

import (
	"net/http"

	"github.com/anupamtiwari/homecraft-backend/api/responses"
	"github.com/anupamtiwari/homecraft-backend/api/validators"
	"github.com/anupamtiwari/homecraft-backend/internal/bookings"
	"github.com/anupamtiwari/homecraft-backend/pkg/logger"
)

type bookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type bookingAssignRequest struct {
	EmployeeName  string `json:"employee_name" validate:"required"`
	EmployeePhone string `json:"employee_phone" validate:"required"`
}

// AdminBookingsList serves the back-office booking queue with optional
// status and date filters.
func AdminBookingsList(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AdminList(r.Context(), bookings.AdminListInput{
			Status:     r.URL.Query().Get("status"),
			Date:       r.URL.Query().Get("date"),
			Pagination: params,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminBookingDetail(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID, err := pathUUID(r, "bookingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.AdminGet(r.Context(), bookingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, booking)
	}
}

func AdminBookingStatus(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID, err := pathUUID(r, "bookingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload bookingStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateStatus(r.Context(), bookingID, payload.Status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": bookingID, "status": payload.Status})
	}
}

func AdminBookingAssign(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID, err := pathUUID(r, "bookingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload bookingAssignRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AssignEmployee(r.Context(), bookingID, payload.EmployeeName, payload.EmployeePhone); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": bookingID, "employee_name": payload.EmployeeName})
	}
}
