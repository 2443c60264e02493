package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anupamtiwari/homecraft-backend/api/controllers"
	"github.com/anupamtiwari/homecraft-backend/api/middleware"
	authsvc "github.com/anupamtiwari/homecraft-backend/internal/auth"
	"github.com/anupamtiwari/homecraft-backend/internal/bookings"
	"github.com/anupamtiwari/homecraft-backend/internal/careers"
	cartsvc "github.com/anupamtiwari/homecraft-backend/internal/cart"
	"github.com/anupamtiwari/homecraft-backend/internal/catalog"
	checkoutsvc "github.com/anupamtiwari/homecraft-backend/internal/checkout"
	"github.com/anupamtiwari/homecraft-backend/internal/enquiry"
	"github.com/anupamtiwari/homecraft-backend/internal/reviews"
	"github.com/anupamtiwari/homecraft-backend/internal/testimonials"
	"github.com/anupamtiwari/homecraft-backend/internal/uploads"
	"github.com/anupamtiwari/homecraft-backend/pkg/auth/session"
	"github.com/anupamtiwari/homecraft-backend/pkg/config"
	"github.com/anupamtiwari/homecraft-backend/pkg/db"
	"github.com/anupamtiwari/homecraft-backend/pkg/logger"
	"github.com/anupamtiwari/homecraft-backend/pkg/metrics"
	"github.com/anupamtiwari/homecraft-backend/pkg/redis"
	"github.com/anupamtiwari/homecraft-backend/pkg/storage/gcs"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

type gatewayInfo interface {
	KeyID() string
	Currency() string
}

// Deps collects everything the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           db.Pinger
	Redis        *redis.Client
	GCS          gcs.Pinger
	Sessions     sessionManager
	HTTPMetrics  *metrics.HTTPMetrics
	Gateway      gatewayInfo
	Auth         authsvc.Service
	Catalog      catalog.Service
	Cart         cartsvc.Service
	Checkout     checkoutsvc.Service
	Bookings     bookings.Service
	Reviews      reviews.Service
	Careers      careers.Service
	Testimonials testimonials.Service
	Enquiry      enquiry.Service
	Uploads      uploads.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		0,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis, deps.GCS))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public storefront surface.
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", controllers.CatalogCategories(deps.Catalog, logg))
			r.Get("/categories/{categoryId}/subcategories", controllers.CatalogSubcategories(deps.Catalog, logg))
			r.Get("/subcategories/{subcategoryId}/services", controllers.CatalogServices(deps.Catalog, logg))
			r.Get("/services/{serviceId}", controllers.CatalogServiceDetail(deps.Catalog, logg))
		})

		r.Get("/testimonials", controllers.TestimonialsList(deps.Testimonials, logg))
		r.Get("/reviews", controllers.ReviewsApproved(deps.Reviews, logg))
		r.With(middleware.Idempotency(deps.Redis, logg)).Post("/enquiry", controllers.EnquirySubmit(deps.Enquiry, logg))
		r.With(middleware.Idempotency(deps.Redis, logg)).Post("/careers/apply", controllers.CareersApply(deps.Careers, logg))

		r.Get("/payments/key", controllers.PaymentsKey(deps.Gateway, logg))

		// The cart is keyed by an opaque client token, not a login.
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Cart, logg))
			r.Post("/items", controllers.CartAdd(deps.Cart, logg))
			r.Patch("/items/{serviceId}", controllers.CartUpdateQuantity(deps.Cart, logg))
			r.Delete("/items/{serviceId}", controllers.CartRemove(deps.Cart, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/email-exists", controllers.AuthEmailExists(deps.Auth, logg))
			r.Post("/otp/send", controllers.AuthSendOTP(deps.Auth, logg))
			r.Post("/otp/verify", controllers.AuthVerifyOTP(deps.Auth, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
				Post("/admin/login", controllers.AuthAdminLogin(deps.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.Auth, cfg.JWT, logg))
		})

		// Checkout works for guests and logged-in customers alike; the
		// optional bearer token just attributes the bookings to a user.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))
			r.Post("/checkout/order", controllers.CheckoutOrder(deps.Checkout, logg))
			r.Post("/checkout/confirm", controllers.CheckoutConfirm(deps.Checkout, logg))
		})

		// Authenticated customer surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Post("/auth/logout", controllers.AuthLogout(deps.Auth, logg))
			r.Get("/auth/me", controllers.AuthMe(deps.Auth, logg))
			r.Get("/bookings", controllers.BookingsList(deps.Bookings, logg))
			r.Get("/bookings/{bookingId}", controllers.BookingDetail(deps.Bookings, logg))
			r.Get("/reviews/mine", controllers.ReviewsMine(deps.Reviews, logg))
			r.With(middleware.Idempotency(deps.Redis, logg)).
				Post("/reviews", controllers.ReviewCreate(deps.Reviews, logg))
			r.Post("/uploads", controllers.UploadFile(deps.Uploads, cfg.Uploads.MaxUploadMB, logg))
		})
	})

	// Back office.
	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole("admin", logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Post("/categories", controllers.AdminCategoryCreate(deps.Catalog, logg))
			r.Post("/subcategories", controllers.AdminSubcategoryCreate(deps.Catalog, logg))
			r.Post("/services", controllers.AdminServiceCreate(deps.Catalog, logg))
			r.Patch("/services/{serviceId}", controllers.AdminServiceUpdate(deps.Catalog, logg))
			r.Put("/services/{serviceId}/active", controllers.AdminServiceSetActive(deps.Catalog, logg))
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", controllers.AdminBookingsList(deps.Bookings, logg))
			r.Get("/{bookingId}", controllers.AdminBookingDetail(deps.Bookings, logg))
			r.Put("/{bookingId}/status", controllers.AdminBookingStatus(deps.Bookings, logg))
			r.Put("/{bookingId}/assign", controllers.AdminBookingAssign(deps.Bookings, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", controllers.AdminReviewsList(deps.Reviews, logg))
			r.Post("/{reviewId}/moderate", controllers.AdminReviewModerate(deps.Reviews, logg))
		})

		r.Route("/careers", func(r chi.Router) {
			r.Get("/", controllers.AdminCareersList(deps.Careers, logg))
			r.Put("/{applicationId}/status", controllers.AdminCareerStatus(deps.Careers, logg))
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", controllers.AdminTestimonialsList(deps.Testimonials, logg))
			r.Post("/", controllers.AdminTestimonialCreate(deps.Testimonials, logg))
			r.Put("/{testimonialId}/publish", controllers.AdminTestimonialPublish(deps.Testimonials, logg))
			r.Delete("/{testimonialId}", controllers.AdminTestimonialDelete(deps.Testimonials, logg))
		})

		r.Post("/uploads", controllers.UploadFile(deps.Uploads, cfg.Uploads.MaxUploadMB, logg))
	})

	return r
}
