package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"trailreg/internal/delivery/http/controllers"
	"trailreg/internal/delivery/http/middleware"
	"trailreg/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Event reads, registration, and booking-code lookup are public; everything
// else sits behind the admin session.
func NewRouter(
	registration *controllers.RegistrationController,
	participants *controllers.ParticipantController,
	events *controllers.EventController,
	auth *controllers.AuthController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	admin := middleware.RequireAuth(verifier, logger)

	// Public
	mux.HandleFunc("GET /api/events", events.ListAll)
	mux.HandleFunc("GET /api/events/upcoming", events.ListUpcoming)
	mux.HandleFunc("GET /api/events/{eventID}", events.GetByID)
	mux.HandleFunc("POST /api/participants", registration.Register)
	mux.HandleFunc("GET /api/participants/code/{code}", registration.GetByBookingCode)

	// Auth
	mux.HandleFunc("POST /api/auth", auth.Login)
	mux.HandleFunc("GET /api/auth", admin(auth.Check))
	mux.HandleFunc("DELETE /api/auth", auth.Logout)

	// Admin
	mux.HandleFunc("GET /api/participants", admin(participants.List))
	mux.HandleFunc("PUT /api/participants/{participantID}/payment", admin(participants.UpdatePayment))
	mux.HandleFunc("POST /api/events", admin(events.Create))
	mux.HandleFunc("PUT /api/events/{eventID}", admin(events.Update))
	mux.HandleFunc("DELETE /api/events/{eventID}", admin(events.Delete))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
