// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/frohlich71/creator-builds-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByName(ctx context.Context, name string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SearchByName(
		ctx context.Context,
		query string,
		limit int,
	) ([]Summary, error)
	ListAll(ctx context.Context) ([]Summary, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRefreshTokenHash(ctx context.Context, id string, hash *string) error
	SetEmailVerified(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const selectUserQuery = `
	SELECT
		id, name, email, password_hash, nickname, website, instagram,
		x_handle, youtube, profile_image, telephone, refresh_token_hash,
		is_email_verified, email_verification_token,
		email_verification_expiry, created_at, updated_at
	FROM users`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (
			id, name, email, password_hash, nickname, website, instagram,
			x_handle, youtube, profile_image, telephone,
			email_verification_token, email_verification_expiry
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Nickname,
		user.Website,
		user.Instagram,
		user.X,
		user.Youtube,
		user.ProfileImage,
		user.Telephone,
		user.EmailVerificationToken,
		user.EmailVerificationExp,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := selectUserQuery + `
	WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByName(
	ctx context.Context,
	name string,
) (*User, error) {
	query := selectUserQuery + `
	WHERE name = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by name: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by name: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := selectUserQuery + `
	WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) SearchByName(
	ctx context.Context,
	query string,
	limit int,
) ([]Summary, error) {
	q := `
		SELECT id, name, email, profile_image
		FROM users
		WHERE name ILIKE $1
		ORDER BY name
		LIMIT $2`

	summaries := []Summary{}
	pattern := "%" + escapeLike(query) + "%"
	if err := r.db.SelectContext(ctx, &summaries, q, pattern, limit); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	return summaries, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Summary, error) {
	query := `
		SELECT id, name, email, profile_image
		FROM users
		ORDER BY name`

	summaries := []Summary{}
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return summaries, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, nickname = $4, website = $5,
		    instagram = $6, x_handle = $7, youtube = $8, profile_image = $9,
		    telephone = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &user.UpdatedAt, query,
		user.ID,
		user.Name,
		user.Email,
		user.Nickname,
		user.Website,
		user.Instagram,
		user.X,
		user.Youtube,
		user.ProfileImage,
		user.Telephone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("update user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) UpdateRefreshTokenHash(
	ctx context.Context,
	id string,
	hash *string,
) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, hash)
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update refresh token: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SetEmailVerified(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET is_email_verified = true,
		    email_verification_token = NULL,
		    email_verification_expiry = NULL,
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("set email verified: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set email verified: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set email verified: %w", core.ErrNotFound)
	}

	return nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
