package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trailreg/internal/domain"
)

// Admin sessions last a day, matching the auth cookie max-age.
const SessionExpiry = 24 * time.Hour

type authService struct {
	adminRepo domain.AdminUserRepository
	hasher    domain.PasswordHasher
	issuer    domain.TokenIssuer
	verifier  domain.TokenVerifier
}

// NewAuthService creates the admin authentication service.
func NewAuthService(
	adminRepo domain.AdminUserRepository,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	verifier domain.TokenVerifier,
) domain.AuthService {
	return &authService{
		adminRepo: adminRepo,
		hasher:    hasher,
		issuer:    issuer,
		verifier:  verifier,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.AdminSession, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domain.NewValidationError("email and password are required")
	}

	user, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get admin user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	session := domain.AdminSession{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Username: user.Username,
		Role:     "admin",
	}
	token, err := s.issuer.Issue(session, SessionExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return &session, token, nil
}

func (s *authService) Check(ctx context.Context, token string) (*domain.AdminSession, error) {
	session, err := s.verifier.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return session, nil
}
