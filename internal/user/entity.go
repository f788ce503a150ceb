// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID                     string     `db:"id"`
	Name                   string     `db:"name"`
	Email                  string     `db:"email"`
	PasswordHash           string     `db:"password_hash"`
	Nickname               string     `db:"nickname"`
	Website                *string    `db:"website"`
	Instagram              *string    `db:"instagram"`
	X                      *string    `db:"x_handle"`
	Youtube                *string    `db:"youtube"`
	ProfileImage           *string    `db:"profile_image"`
	Telephone              *string    `db:"telephone"`
	RefreshTokenHash       *string    `db:"refresh_token_hash"`
	IsEmailVerified        bool       `db:"is_email_verified"`
	EmailVerificationToken *string    `db:"email_verification_token"`
	EmailVerificationExp   *time.Time `db:"email_verification_expiry"`
	CreatedAt              time.Time  `db:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at"`
}

// Summary is the projection returned by name search: just enough to
// render a mention/autocomplete entry.
type Summary struct {
	ID           string  `db:"id"            json:"id"`
	Name         string  `db:"name"          json:"name"`
	Email        string  `db:"email"         json:"email"`
	ProfileImage *string `db:"profile_image" json:"profileImage"`
}

func (u *User) VerificationExpired(now time.Time) bool {
	return u.EmailVerificationExp == nil || now.After(*u.EmailVerificationExp)
}
