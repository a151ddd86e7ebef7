package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"trailreg/internal/domain"
)

type fakeAdminRepo struct {
	users map[string]*domain.AdminUser
	err   error
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

type fakeHasher struct{}

func (fakeHasher) Compare(hash, password string) error {
	if hash == "hash:"+password {
		return nil
	}
	return errors.New("mismatch")
}

func (fakeHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

type fakeTokenCodec struct {
	issueErr error
	sessions map[string]*domain.AdminSession
}

func (f *fakeTokenCodec) Issue(session domain.AdminSession, expiry time.Duration) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "token-" + session.ID, nil
}

func (f *fakeTokenCodec) Verify(token string) (*domain.AdminSession, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, errors.New("bad token")
	}
	return s, nil
}

func adminFixture() (*fakeAdminRepo, *fakeTokenCodec) {
	repo := &fakeAdminRepo{
		users: map[string]*domain.AdminUser{
			"staff@example.com": {
				ID:           "u-1",
				Email:        "staff@example.com",
				Name:         "Staff",
				Username:     "staff",
				PasswordHash: "hash:s3cret-pass",
			},
		},
	}
	codec := &fakeTokenCodec{
		sessions: map[string]*domain.AdminSession{
			"token-u-1": {ID: "u-1", Email: "staff@example.com", Role: "admin"},
		},
	}
	return repo, codec
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
		wantVali bool
	}{
		{name: "success", email: "staff@example.com", password: "s3cret-pass"},
		{name: "email is normalized", email: "  STAFF@Example.com ", password: "s3cret-pass"},
		{name: "unknown email", email: "nobody@example.com", password: "s3cret-pass", wantErr: domain.ErrInvalidCredentials},
		{name: "wrong password", email: "staff@example.com", password: "nope", wantErr: domain.ErrInvalidCredentials},
		{name: "missing fields", email: "", password: "", wantVali: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, codec := adminFixture()
			svc := NewAuthService(repo, fakeHasher{}, codec, codec)

			session, token, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantVali {
				var ve *domain.ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if token != "token-u-1" {
				t.Errorf("unexpected token %q", token)
			}
			if session.Role != "admin" || session.Email != "staff@example.com" {
				t.Errorf("unexpected session %+v", session)
			}
		})
	}
}

func TestAuthService_Check(t *testing.T) {
	repo, codec := adminFixture()
	svc := NewAuthService(repo, fakeHasher{}, codec, codec)
	ctx := context.Background()

	session, err := svc.Check(ctx, "token-u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ID != "u-1" {
		t.Errorf("unexpected session %+v", session)
	}

	if _, err := svc.Check(ctx, "forged"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
