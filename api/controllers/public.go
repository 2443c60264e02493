package controllers

import (
	"net/http"

	"github.com/anupamtiwari/homecraft-backend/api/responses"
	"github.com/anupamtiwari/homecraft-backend/api/validators"
	"github.com/anupamtiwari/homecraft-backend/internal/careers"
	"github.com/anupamtiwari/homecraft-backend/internal/enquiry"
	"github.com/anupamtiwari/homecraft-backend/internal/testimonials"
	"github.com/anupamtiwari/homecraft-backend/pkg/logger"
)

type careersApplyRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Role       string `json:"role" validate:"required"`
	Experience string `json:"experience"`
	Message    string `json:"message"`
	ResumeURL  string `json:"resume_url" validate:"required"`
}

type enquiryRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

// TestimonialsList serves the published testimonials for the landing page.
func TestimonialsList(svc testimonials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListPublished(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// CareersApply accepts a job application from the public careers form.
func CareersApply(svc careers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload careersApplyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		application, err := svc.Submit(r.Context(), careers.SubmitInput{
			Name:       payload.Name,
			Email:      payload.Email,
			Phone:      payload.Phone,
			Role:       payload.Role,
			Experience: payload.Experience,
			Message:    payload.Message,
			ResumeURL:  payload.ResumeURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, application)
	}
}

// EnquirySubmit forwards a contact-form message to the support inbox.
func EnquirySubmit(svc enquiry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload enquiryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Submit(r.Context(), enquiry.SubmitInput{
			Name:    payload.Name,
			Email:   payload.Email,
			Phone:   payload.Phone,
			Message: payload.Message,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}
