package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"trailreg/config"
	"trailreg/internal/adapters/auth"
	"trailreg/internal/adapters/email"
	"trailreg/internal/bookingcode"
	deliveryhttp "trailreg/internal/delivery/http"
	"trailreg/internal/delivery/http/controllers"
	"trailreg/internal/delivery/http/middleware"
	"trailreg/internal/repository/postgres"
	"trailreg/internal/services"
)

// @title Trail Running Registration API
// @version 1.0
// @description Registration backend for trail-running events: public event
// @description listing and registration, booking-code lookup, and the admin
// @description panel's participant and payment management.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger is configured from cfg, so this has to go to stderr.
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)
	adminRepo := postgres.NewAdminUserRepository(db)

	// Adapters
	tokens := auth.NewJWTCodec(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(10)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())
	registrationSvc := services.NewRegistrationService(eventRepo, participantRepo, bookingcode.New(), emailSvc, logger)
	paymentSvc := services.NewPaymentService(eventRepo, participantRepo, logger)
	participantSvc := services.NewParticipantService(participantRepo)
	eventSvc := services.NewEventService(eventRepo)
	authSvc := services.NewAuthService(adminRepo, hasher, tokens, tokens)

	// Controllers
	registrationCtl := controllers.NewRegistrationController(logger, registrationSvc, participantSvc)
	participantCtl := controllers.NewParticipantController(logger, participantSvc, paymentSvc)
	eventCtl := controllers.NewEventController(logger, eventSvc)
	authCtl := controllers.NewAuthController(logger, authSvc, cfg.IsProduction())

	mux := deliveryhttp.NewRouter(registrationCtl, participantCtl, eventCtl, authCtl, tokens, logger)
	handler := middleware.CORS(cfg.CORSAllowedOrigins,
		middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
