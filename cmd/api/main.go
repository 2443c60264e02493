package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/anupamtiwari/homecraft-backend/api/middleware"
	"github.com/anupamtiwari/homecraft-backend/api/routes"
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
	"github.com/anupamtiwari/homecraft-backend/internal/users"
	"github.com/anupamtiwari/homecraft-backend/pkg/auth/session"
	"github.com/anupamtiwari/homecraft-backend/pkg/config"
	"github.com/anupamtiwari/homecraft-backend/pkg/db"
	"github.com/anupamtiwari/homecraft-backend/pkg/email"
	"github.com/anupamtiwari/homecraft-backend/pkg/logger"
	"github.com/anupamtiwari/homecraft-backend/pkg/metrics"
	"github.com/anupamtiwari/homecraft-backend/pkg/migrate"
	"github.com/anupamtiwari/homecraft-backend/pkg/razorpay"
	"github.com/anupamtiwari/homecraft-backend/pkg/redis"
	"github.com/anupamtiwari/homecraft-backend/pkg/storage/gcs"
)

// contextUserResolver lets checkout attribute bookings to the optional
// authenticated caller without importing the middleware package.
type contextUserResolver struct{}

func (contextUserResolver) UserIDFromContext(ctx context.Context) *uuid.UUID {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap gcs", err)
		os.Exit(1)
	}
	defer func() {
		if err := gcsClient.Close(); err != nil {
			logg.Error(ctx, "error closing gcs client", err)
		}
	}()

	gateway, err := razorpay.NewClient(ctx, cfg.Razorpay, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap razorpay", err)
		os.Exit(1)
	}

	mailer, err := email.NewClient(ctx, cfg.Sendgrid, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap email", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	bookingRepo := bookings.NewRepository(dbClient.DB())
	reviewRepo := reviews.NewRepository(dbClient.DB())
	careerRepo := careers.NewRepository(dbClient.DB())
	testimonialRepo := testimonials.NewRepository(dbClient.DB())

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		Users:          userRepo,
		Store:          redisClient,
		Mailer:         mailer,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		OTPConfig:      cfg.OTP,
		RateLimits:     cfg.AuthRateLimit,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewStore(redisClient, cfg.Cart.TTL)
	if err != nil {
		logg.Error(ctx, "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cartsvc.NewService(cartStore, catalogRepo, cfg.Cart.MaxLines)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.Options{
		Carts:   cartStore,
		Gateway: gateway,
		Repo:    bookingRepo,
		DB:      dbClient,
		Users:   contextUserResolver{},
		Logger:  logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	uploadService, err := uploads.NewService(gcsClient, cfg.Uploads)
	if err != nil {
		logg.Error(ctx, "failed to create upload service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	router := routes.NewRouter(routes.Deps{
		Config:       cfg,
		Logger:       logg,
		DB:           dbClient,
		Redis:        redisClient,
		GCS:          gcsClient,
		Sessions:     sessionManager,
		HTTPMetrics:  httpMetrics,
		Gateway:      gateway,
		Auth:         authService,
		Catalog:      catalog.NewService(catalogRepo),
		Cart:         cartService,
		Checkout:     checkoutService,
		Bookings:     bookings.NewService(bookingRepo),
		Reviews:      reviews.NewService(reviewRepo, bookingRepo),
		Careers:      careers.NewService(careerRepo),
		Testimonials: testimonials.NewService(testimonialRepo),
		Enquiry:      enquiry.NewService(mailer),
		Uploads:      uploadService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(startCtx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(startCtx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
