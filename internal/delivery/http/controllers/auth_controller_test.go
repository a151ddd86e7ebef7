package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailreg/internal/delivery/http/middleware"
	"trailreg/internal/domain"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	session *domain.AdminSession
	token   string
	err     error
}

func (f *fakeAuthService) Login(_ context.Context, email, password string) (*domain.AdminSession, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.session, f.token, nil
}

func (f *fakeAuthService) Check(_ context.Context, token string) (*domain.AdminSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func sessionCookieFrom(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.AuthCookieName {
			return c
		}
	}
	return nil
}

func TestAuthController_Login_SetsCookie(t *testing.T) {
	auth := &fakeAuthService{
		session: &domain.AdminSession{ID: "u-1", Email: "staff@example.com", Role: "admin"},
		token:   "signed-token",
	}
	c := NewAuthController(testLogger, auth, true)

	raw := []byte(`{"email":"staff@example.com","password":"s3cret-pass"}`)
	req := httptest.NewRequest(http.MethodPost, "http://test/api/auth", bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	c.Login(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	cookie := sessionCookieFrom(rr)
	require.NotNil(t, cookie, "auth_token cookie must be set")
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 24*60*60, cookie.MaxAge)

	envelope := decodeEnvelope(t, rr)
	assert.True(t, envelope.Success)
}

func TestAuthController_Login_BadCredentials(t *testing.T) {
	c := NewAuthController(testLogger, &fakeAuthService{err: domain.ErrInvalidCredentials}, false)

	raw := []byte(`{"email":"staff@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "http://test/api/auth", bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	c.Login(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Nil(t, sessionCookieFrom(rr))
}

func TestAuthController_Login_MissingFields(t *testing.T) {
	c := NewAuthController(testLogger, &fakeAuthService{}, false)

	raw := []byte(`{"email":"","password":""}`)
	req := httptest.NewRequest(http.MethodPost, "http://test/api/auth", bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	c.Login(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthController_Check(t *testing.T) {
	c := NewAuthController(testLogger, &fakeAuthService{}, false)

	session := &domain.AdminSession{ID: "u-1", Email: "staff@example.com", Role: "admin"}
	req := httptest.NewRequest(http.MethodGet, "http://test/api/auth", nil)
	req = req.WithContext(middleware.SetSession(req.Context(), session))
	rr := httptest.NewRecorder()
	c.Check(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.True(t, envelope.Success)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	assert.Contains(t, string(data), "staff@example.com")
}

func TestAuthController_Check_NoSession(t *testing.T) {
	c := NewAuthController(testLogger, &fakeAuthService{}, false)

	req := httptest.NewRequest(http.MethodGet, "http://test/api/auth", nil)
	rr := httptest.NewRecorder()
	c.Check(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthController_Logout_ClearsCookie(t *testing.T) {
	c := NewAuthController(testLogger, &fakeAuthService{}, false)

	req := httptest.NewRequest(http.MethodDelete, "http://test/api/auth", nil)
	rr := httptest.NewRecorder()
	c.Logout(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	cookie := sessionCookieFrom(rr)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
