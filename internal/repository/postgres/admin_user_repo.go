package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"trailreg/internal/domain"
)

type adminUserRepository struct {
	DB *sql.DB
}

func NewAdminUserRepository(db *sql.DB) domain.AdminUserRepository {
	return &adminUserRepository{
		DB: db,
	}
}

func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	query := `
		SELECT id, email, name, username, password_hash, created_at, updated_at
		FROM admin_users
		WHERE email = $1
	`
	u := &domain.AdminUser{}
	err := r.DB.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(
		&u.ID, &u.Email, &u.Name, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
