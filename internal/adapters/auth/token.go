package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"trailreg/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type jwtCodec struct {
	secret []byte
}

// NewJWTCodec returns a codec that signs and verifies admin session tokens
// with HS256 using the given secret. It satisfies both domain.TokenIssuer
// and domain.TokenVerifier.
func NewJWTCodec(secret string) *jwtCodec {
	return &jwtCodec{secret: []byte(secret)}
}

func (c *jwtCodec) Issue(session domain.AdminSession, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email:    session.Email,
		Name:     session.Name,
		Username: session.Username,
		Role:     session.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (c *jwtCodec) Verify(tokenString string) (*domain.AdminSession, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return &domain.AdminSession{
		ID:       claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
