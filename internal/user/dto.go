// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Name         string  `json:"name"         validate:"required,min=1,max=100"`
	Email        string  `json:"email"        validate:"required,email,max=255"`
	Password     string  `json:"password"     validate:"required,min=8,max=128"`
	Nickname     string  `json:"nickname"     validate:"required,min=1,max=100"`
	Website      *string `json:"website,omitempty"      validate:"omitempty,max=255"`
	Instagram    *string `json:"instagram,omitempty"    validate:"omitempty,max=100"`
	X            *string `json:"x,omitempty"            validate:"omitempty,max=100"`
	Youtube      *string `json:"youtube,omitempty"      validate:"omitempty,max=100"`
	ProfileImage *string `json:"profileImage,omitempty" validate:"omitempty,max=512"`
	Telephone    *string `json:"telephone,omitempty"    validate:"omitempty,max=32"`
}

type UpdateUserRequest struct {
	Name         *string `json:"name,omitempty"      validate:"omitempty,min=1,max=100"`
	Email        *string `json:"email,omitempty"     validate:"omitempty,email,max=255"`
	Password     *string `json:"password,omitempty"  validate:"omitempty,min=8,max=128"`
	Nickname     *string `json:"nickname,omitempty"  validate:"omitempty,min=1,max=100"`
	Website      *string `json:"website,omitempty"   validate:"omitempty,max=255"`
	Instagram    *string `json:"instagram,omitempty" validate:"omitempty,max=100"`
	X            *string `json:"x,omitempty"         validate:"omitempty,max=100"`
	Youtube      *string `json:"youtube,omitempty"   validate:"omitempty,max=100"`
	ProfileImage *string `json:"profileImage,omitempty" validate:"omitempty,max=512"`
	Telephone    *string `json:"telephone,omitempty" validate:"omitempty,max=32"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6"`
}

type UserResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Nickname        string    `json:"nickname"`
	Website         *string   `json:"website,omitempty"`
	Instagram       *string   `json:"instagram,omitempty"`
	X               *string   `json:"x,omitempty"`
	Youtube         *string   `json:"youtube,omitempty"`
	ProfileImage    *string   `json:"profileImage,omitempty"`
	Telephone       *string   `json:"telephone,omitempty"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	Setups          any       `json:"setups,omitempty"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Nickname:        u.Nickname,
		Website:         u.Website,
		Instagram:       u.Instagram,
		X:               u.X,
		Youtube:         u.Youtube,
		ProfileImage:    u.ProfileImage,
		Telephone:       u.Telephone,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
	}
}
