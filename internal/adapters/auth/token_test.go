package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailreg/internal/domain"
)

func TestJWTCodec_IssueAndVerify(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	session := domain.AdminSession{
		ID:       "user-123",
		Email:    "admin@example.com",
		Name:     "Race Admin",
		Username: "raceadmin",
		Role:     "admin",
	}
	token, err := codec.Issue(session, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, session, *got)
}

func TestJWTCodec_Verify_wrong_secret(t *testing.T) {
	token, err := NewJWTCodec("secret-a").Issue(domain.AdminSession{ID: "user-123"}, time.Hour)
	require.NoError(t, err)

	_, err = NewJWTCodec("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestJWTCodec_Verify_expired(t *testing.T) {
	codec := NewJWTCodec("test-secret")
	token, err := codec.Issue(domain.AdminSession{ID: "user-123"}, -time.Minute)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.Error(t, err)
}

func TestJWTCodec_Verify_rejects_unsigned(t *testing.T) {
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"},
		Role:             "admin",
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTCodec("test-secret").Verify(unsigned)
	assert.Error(t, err)
}
