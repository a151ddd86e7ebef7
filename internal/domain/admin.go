package domain

import (
	"context"
	"time"
)

// AdminUser represents a staff account for the admin panel.
// swagger:model AdminUser
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminSession is the authenticated-session payload surfaced to the admin UI.
type AdminSession struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// PasswordHasher verifies a plaintext password against a stored hash.
type PasswordHasher interface {
	Compare(hash, password string) error
	Hash(password string) (string, error)
}

// TokenIssuer issues session tokens (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(session AdminSession, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the session it encodes.
type TokenVerifier interface {
	Verify(token string) (*AdminSession, error)
}

// AdminUserRepository defines storage operations for admin accounts.
type AdminUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
}

// AuthService authenticates staff and verifies session tokens.
type AuthService interface {
	// Login checks credentials and returns the session plus a signed token.
	Login(ctx context.Context, email, password string) (*AdminSession, string, error)
	// Check verifies a previously issued token.
	Check(ctx context.Context, token string) (*AdminSession, error)
}
