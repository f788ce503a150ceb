// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/frohlich71/creator-builds-api/internal/config"
	"github.com/frohlich71/creator-builds-api/internal/core"
	"github.com/frohlich71/creator-builds-api/internal/middleware"
)

// TokenManager signs and verifies the access/refresh token pair. Access
// and refresh tokens use separate HMAC secrets, so one can never be
// presented in place of the other.
type TokenManager struct {
	accessKey  jwk.Key
	refreshKey jwk.Key
	config     config.JWTConfig
}

func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	accessKey, err := importSecret(cfg.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("access secret: %w", err)
	}

	refreshKey, err := importSecret(cfg.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("refresh secret: %w", err)
	}

	return &TokenManager{
		accessKey:  accessKey,
		refreshKey: refreshKey,
		config:     cfg,
	}, nil
}

func importSecret(secret string) (jwk.Key, error) {
	key, err := jwk.Import([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("import key: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return key, nil
}

func (m *TokenManager) buildToken(
	userID, username, tokenType string,
	ttl time.Duration,
) (string, error) {
	now := time.Now()

	key := m.accessKey
	if tokenType == "refresh" {
		key = m.refreshKey
	}

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(userID).
		IssuedAt(now).
		Expiration(now.Add(ttl)).
		NotBefore(now).
		Claim("username", username).
		Claim("type", tokenType).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

func (m *TokenManager) CreateAccessToken(
	userID, username string,
) (string, error) {
	return m.buildToken(userID, username, "access", m.config.AccessTokenExpire)
}

func (m *TokenManager) CreateRefreshToken(
	userID, username string,
) (string, error) {
	return m.buildToken(
		userID,
		username,
		"refresh",
		m.config.RefreshTokenExpire,
	)
}

func (m *TokenManager) verify(
	tokenString, tokenType string,
	key jwk.Key,
) (*middleware.AccessTokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	var claimedType string
	if err := token.Get("type", &claimedType); err != nil ||
		claimedType != tokenType {
		return nil, fmt.Errorf(
			"verify token: invalid token type: %w",
			core.ErrTokenInvalid,
		)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	var username string
	if err := token.Get("username", &username); err != nil || username == "" {
		return nil, fmt.Errorf(
			"verify token: missing username claim: %w",
			core.ErrTokenInvalid,
		)
	}

	return &middleware.AccessTokenClaims{
		UserID:   subject,
		Username: username,
	}, nil
}

func (m *TokenManager) VerifyAccessToken(
	ctx context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	return m.verify(tokenString, "access", m.accessKey)
}

func (m *TokenManager) VerifyRefreshToken(
	ctx context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	return m.verify(tokenString, "refresh", m.refreshKey)
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}

var _ middleware.TokenVerifier = (*TokenManager)(nil)
