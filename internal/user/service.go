// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frohlich71/creator-builds-api/internal/auth"
	"github.com/frohlich71/creator-builds-api/internal/core"
	"github.com/frohlich71/creator-builds-api/internal/setup"
)

const verificationTTL = 24 * time.Hour

// Mailer is the slice of the email service registration needs. Delivery
// failures are logged and swallowed: a dead mail provider must not block
// sign-ups.
type Mailer interface {
	SendWelcome(ctx context.Context, name, email string) error
	SendVerification(
		ctx context.Context,
		name, email, code string,
	) error
	SendPasswordChanged(ctx context.Context, name, email string) error
}

// SetupSource lists a user's setups so profile reads can embed them.
type SetupSource interface {
	FindByUserID(
		ctx context.Context,
		userID string,
	) ([]setup.SetupDetail, error)
}

type Service struct {
	repo   Repository
	mailer Mailer
	setups SetupSource
}

func NewService(repo Repository, mailer Mailer) *Service {
	return &Service{repo: repo, mailer: mailer}
}

// SetSetupSource breaks the user<->setup construction cycle: the setup
// service needs an owner resolver before this service can list setups.
func (s *Service) SetSetupSource(setups SetupSource) {
	s.setups = setups
}

func (s *Service) Register(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	if existing, err := s.repo.GetByName(ctx, req.Name); err == nil &&
		existing != nil {
		return nil, fmt.Errorf("register: name taken: %w", core.ErrDuplicateKey)
	} else if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil &&
		existing != nil {
		return nil, fmt.Errorf("register: email taken: %w", core.ErrDuplicateKey)
	} else if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	code, err := core.GenerateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	expiry := time.Now().Add(verificationTTL)

	u := &User{
		ID:                     uuid.New().String(),
		Name:                   req.Name,
		Email:                  req.Email,
		PasswordHash:           passwordHash,
		Nickname:               req.Nickname,
		Website:                req.Website,
		Instagram:              req.Instagram,
		X:                      req.X,
		Youtube:                req.Youtube,
		ProfileImage:           req.ProfileImage,
		Telephone:              req.Telephone,
		EmailVerificationToken: &code,
		EmailVerificationExp:   &expiry,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcome(ctx, u.Name, u.Email); err != nil {
			slog.Warn("welcome email failed", "user", u.Name, "error", err)
		}
		if err := s.mailer.SendVerification(ctx, u.Name, u.Email, code); err != nil {
			slog.Warn("verification email failed", "user", u.Name, "error", err)
		}
	}

	return u, nil
}

// GetProfileByName returns the user with their setups attached. The setup
// list is derived by query every time, never stored on the user row.
func (s *Service) GetProfileByName(
	ctx context.Context,
	name string,
) (*UserResponse, error) {
	u, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(u)

	if s.setups != nil {
		setups, err := s.setups.FindByUserID(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("load setups: %w", err)
		}
		resp.Setups = setups
	}

	return &resp, nil
}

// List returns a summary of every registered user.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Search(
	ctx context.Context,
	query string,
	limit int,
) ([]Summary, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.SearchByName(ctx, query, limit)
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != u.Name {
		existing, err := s.repo.GetByName(ctx, *req.Name)
		if err == nil && existing != nil && existing.ID != id {
			return nil, fmt.Errorf(
				"update profile: name taken: %w",
				core.ErrDuplicateKey,
			)
		}
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		u.Name = *req.Name
	}

	if req.Email != nil && *req.Email != u.Email {
		existing, err := s.repo.GetByEmail(ctx, *req.Email)
		if err == nil && existing != nil && existing.ID != id {
			return nil, fmt.Errorf(
				"update profile: email taken: %w",
				core.ErrDuplicateKey,
			)
		}
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		u.Email = *req.Email
	}

	if req.Nickname != nil {
		u.Nickname = *req.Nickname
	}
	if req.Website != nil {
		u.Website = req.Website
	}
	if req.Instagram != nil {
		u.Instagram = req.Instagram
	}
	if req.X != nil {
		u.X = req.X
	}
	if req.Youtube != nil {
		u.Youtube = req.Youtube
	}
	if req.ProfileImage != nil {
		u.ProfileImage = req.ProfileImage
	}
	if req.Telephone != nil {
		u.Telephone = req.Telephone
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	if req.Password != nil {
		newHash, err := core.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		if err := s.repo.UpdatePassword(ctx, id, newHash); err != nil {
			return nil, err
		}
		if s.mailer != nil {
			err := s.mailer.SendPasswordChanged(ctx, u.Name, u.Email)
			if err != nil {
				slog.Warn("password changed email failed",
					"user", u.Name, "error", err)
			}
		}
	}

	return u, nil
}

func (s *Service) VerifyEmail(ctx context.Context, email, code string) error {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if u.IsEmailVerified {
		return nil
	}

	if u.EmailVerificationToken == nil || *u.EmailVerificationToken != code {
		return fmt.Errorf("verify email: bad code: %w", core.ErrInvalidInput)
	}

	if u.VerificationExpired(time.Now()) {
		return fmt.Errorf("verify email: code expired: %w", core.ErrInvalidInput)
	}

	return s.repo.SetEmailVerified(ctx, u.ID)
}

// ResolveOwner satisfies setup.OwnerProvider.
func (s *Service) ResolveOwner(
	ctx context.Context,
	name string,
) (*setup.Owner, error) {
	u, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return &setup.Owner{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

// OwnerByID satisfies setup.OwnerProvider.
func (s *Service) OwnerByID(
	ctx context.Context,
	id string,
) (*setup.Owner, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &setup.Owner{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

// FindCredentials satisfies auth.UserProvider.
func (s *Service) FindCredentials(
	ctx context.Context,
	username string,
) (*auth.UserInfo, error) {
	u, err := s.repo.GetByName(ctx, username)
	if err != nil {
		return nil, err
	}

	return &auth.UserInfo{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Nickname:         u.Nickname,
		ProfileImage:     u.ProfileImage,
		PasswordHash:     u.PasswordHash,
		RefreshTokenHash: u.RefreshTokenHash,
	}, nil
}

// StoreRefreshTokenHash satisfies auth.UserProvider.
func (s *Service) StoreRefreshTokenHash(
	ctx context.Context,
	userID, hash string,
) error {
	return s.repo.UpdateRefreshTokenHash(ctx, userID, &hash)
}

var (
	_ auth.UserProvider   = (*Service)(nil)
	_ setup.OwnerProvider = (*Service)(nil)
)
