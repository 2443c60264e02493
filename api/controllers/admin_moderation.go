package controllers

import (
	"net/http"

	"github.com/anupamtiwari/homecraft-backend/api/responses"
	"github.com/anupamtiwari/homecraft-backend/api/validators"
	"github.com/anupamtiwari/homecraft-backend/internal/careers"
	"github.com/anupamtiwari/homecraft-backend/internal/reviews"
	"github.com/anupamtiwari/homecraft-backend/internal/testimonials"
	"github.com/anupamtiwari/homecraft-backend/pkg/logger"
)

type reviewModerateRequest struct {
	Decision string `json:"decision" validate:"required"`
}

type careerStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type testimonialCreateRequest struct {
	Author   string  `json:"author" validate:"required"`
	Quote    string  `json:"quote" validate:"required"`
	Rating   int     `json:"rating" validate:"min=0,max=5"`
	ImageURL *string `json:"image_url"`
}

type testimonialPublishRequest struct {
	Published *bool `json:"published" validate:"required"`
}

func AdminReviewsList(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AdminList(r.Context(), r.URL.Query().Get("status"), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminReviewModerate(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, err := pathUUID(r, "reviewId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload reviewModerateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Moderate(r.Context(), reviewID, payload.Decision); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": reviewID, "status": payload.Decision})
	}
}

func AdminCareersList(svc careers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AdminList(r.Context(), r.URL.Query().Get("status"), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminCareerStatus(svc careers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationID, err := pathUUID(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload careerStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateStatus(r.Context(), applicationID, payload.Status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": applicationID, "status": payload.Status})
	}
}

func AdminTestimonialsList(svc testimonials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.AdminList(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func AdminTestimonialCreate(svc testimonials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload testimonialCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		testimonial, err := svc.Create(r.Context(), testimonials.CreateInput{
			Author:   payload.Author,
			Quote:    payload.Quote,
			Rating:   payload.Rating,
			ImageURL: payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, testimonial)
	}
}

func AdminTestimonialPublish(svc testimonials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonialID, err := pathUUID(r, "testimonialId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload testimonialPublishRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetPublished(r.Context(), testimonialID, *payload.Published); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": testimonialID, "published": *payload.Published})
	}
}

func AdminTestimonialDelete(svc testimonials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonialID, err := pathUUID(r, "testimonialId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), testimonialID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": testimonialID, "deleted": true})
	}
}
