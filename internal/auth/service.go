// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/frohlich71/creator-builds-api/internal/config"
	"github.com/frohlich71/creator-builds-api/internal/core"
)

// UserProvider is the slice of the user service the session service
// depends on.
type UserProvider interface {
	FindCredentials(ctx context.Context, username string) (*UserInfo, error)
	StoreRefreshTokenHash(ctx context.Context, userID, hash string) error
}

type Service struct {
	users  UserProvider
	tokens *TokenManager
	config config.JWTConfig
}

func NewService(
	users UserProvider,
	tokens *TokenManager,
	cfg config.JWTConfig,
) *Service {
	return &Service{users: users, tokens: tokens, config: cfg}
}

// ValidateUser checks a username/password pair and returns the user
// projection, or nil when anything fails. Password verification runs
// against a dummy hash even for unknown usernames so response timing does
// not leak which part was wrong.
func (s *Service) ValidateUser(
	ctx context.Context,
	username, password string,
) (*UserInfo, error) {
	user, err := s.users.FindCredentials(ctx, username)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("validate user: %w", err)
	}

	var storedHash *string
	if user != nil {
		storedHash = &user.PasswordHash
	}

	valid, err := core.VerifyPasswordTimingSafe(password, storedHash)
	if err != nil || !valid {
		return nil, nil
	}

	return user, nil
}

// issuePair creates an access/refresh token pair and overwrites the
// user's single refresh slot with the new token's hash. Whatever refresh
// token was stored before stops working immediately.
func (s *Service) issuePair(
	ctx context.Context,
	user *UserInfo,
) (*TokenResponse, error) {
	accessToken, err := s.tokens.CreateAccessToken(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	refreshToken, err := s.tokens.CreateRefreshToken(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	hash := core.HashToken(refreshToken)
	if err := s.users.StoreRefreshTokenHash(ctx, user.ID, hash); err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.config.AccessTokenExpire.Seconds()),
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Nickname:     user.Nickname,
		ProfileImage: user.ProfileImage,
	}, nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*TokenResponse, error) {
	user, err := s.ValidateUser(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, core.ForbiddenError("invalid credentials")
	}

	return s.issuePair(ctx, user)
}

// Refresh rotates the token pair. The presented refresh token must both
// verify against the refresh secret and match the hash stored on the user
// row; a token superseded by a later login or refresh fails the second
// check.
func (s *Service) Refresh(
	ctx context.Context,
	refreshToken string,
) (*TokenResponse, error) {
	claims, err := s.tokens.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, core.ForbiddenError("invalid refresh token")
	}

	user, err := s.users.FindCredentials(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ForbiddenError("invalid refresh token")
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	if user.RefreshTokenHash == nil ||
		!core.CompareTokenHash(refreshToken, *user.RefreshTokenHash) {
		return nil, core.ForbiddenError("invalid refresh token")
	}

	return s.issuePair(ctx, user)
}
