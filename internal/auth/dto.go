// AngelaMos | 2026
// dto.go

package auth

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserInfo is the credential projection the session service needs from the
// user store. The password hash never leaves this package.
type UserInfo struct {
	ID               string
	Name             string
	Email            string
	Nickname         string
	ProfileImage     *string
	PasswordHash     string
	RefreshTokenHash *string
}

type TokenResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    int     `json:"expires_in"`
	UserID       string  `json:"userId"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Nickname     string  `json:"nickname"`
	ProfileImage *string `json:"profileImage,omitempty"`
}
