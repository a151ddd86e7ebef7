package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"trailreg/internal/delivery/http/helpers"
	"trailreg/internal/delivery/http/middleware"
	"trailreg/internal/domain"
	"trailreg/internal/services"
)

// LoginRequest is the request body for POST /api/auth.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if l.Email == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

type AuthController struct {
	Logger *slog.Logger
	Auth   domain.AuthService

	// SecureCookies marks the session cookie Secure; enabled in production.
	SecureCookies bool
}

func NewAuthController(logger *slog.Logger, auth domain.AuthService, secureCookies bool) *AuthController {
	return &AuthController{
		Logger:        logger,
		Auth:          auth,
		SecureCookies: secureCookies,
	}
}

// Login godoc
// @Summary Log in as admin
// @Description Checks credentials and sets the auth_token HttpOnly session cookie (24h expiry). The session is also returned in the body.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} helpers.APIResponse "data contains the admin session"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse
// @Router /api/auth [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	session, token, err := c.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		c.Logger.InfoContext(r.Context(), "login rejected", "err", err)
		helpers.WriteDomainError(w, c.Logger, err)
		return
	}
	http.SetCookie(w, c.sessionCookie(token, services.SessionExpiry))
	helpers.WriteJSONSuccess(w, http.StatusOK, "login successful", session)
}

// Check godoc
// @Summary Check the current admin session
// @Description Verifies the session token from the auth_token cookie (or Bearer header) and returns the session it encodes.
// @Tags auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} helpers.APIResponse "data contains the admin session"
// @Failure 401 {object} helpers.APIResponse
// @Router /api/auth [get]
func (c *AuthController) Check(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "session valid", session)
}

// Logout godoc
// @Summary Log out
// @Description Clears the auth_token session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /api/auth [delete]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	expired := c.sessionCookie("", -time.Hour)
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	helpers.WriteJSONSuccess(w, http.StatusOK, "logged out", nil)
}

func (c *AuthController) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
