// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/frohlich71/creator-builds-api/internal/core"
	"github.com/frohlich71/creator-builds-api/internal/setup"
)

type fakeRepo struct {
	byID map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*User)}
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range r.byID {
		if existing.Name == u.Name || existing.Email == u.Email {
			return core.ErrDuplicateKey
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	copied := *u
	r.byID[u.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) GetByName(_ context.Context, name string) (*User, error) {
	for _, u := range r.byID {
		if u.Name == name {
			copied := *u
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) GetByEmail(
	_ context.Context,
	email string,
) (*User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) SearchByName(
	_ context.Context,
	query string,
	limit int,
) ([]Summary, error) {
	var out []Summary
	for _, u := range r.byID {
		if len(out) >= limit {
			break
		}
		if strings.Contains(
			strings.ToLower(u.Name),
			strings.ToLower(query),
		) {
			out = append(out, Summary{ID: u.ID, Name: u.Name, Email: u.Email})
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]Summary, error) {
	out := []Summary{}
	for _, u := range r.byID {
		out = append(out, Summary{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, u *User) error {
	stored, ok := r.byID[u.ID]
	if !ok {
		return core.ErrNotFound
	}
	hash := stored.PasswordHash
	copied := *u
	copied.PasswordHash = hash
	r.byID[u.ID] = &copied
	return nil
}

func (r *fakeRepo) UpdatePassword(
	_ context.Context,
	id, passwordHash string,
) error {
	u, ok := r.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeRepo) UpdateRefreshTokenHash(
	_ context.Context,
	id string,
	hash *string,
) error {
	u, ok := r.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	u.RefreshTokenHash = hash
	return nil
}

func (r *fakeRepo) SetEmailVerified(_ context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	u.IsEmailVerified = true
	u.EmailVerificationToken = nil
	return nil
}

type recordingMailer struct {
	welcomes        []string
	verifications   []string
	passwordChanges []string
	fail            bool
}

func (m *recordingMailer) SendWelcome(
	_ context.Context,
	_, email string,
) error {
	if m.fail {
		return errors.New("mail provider down")
	}
	m.welcomes = append(m.welcomes, email)
	return nil
}

func (m *recordingMailer) SendVerification(
	_ context.Context,
	_, email, _ string,
) error {
	if m.fail {
		return errors.New("mail provider down")
	}
	m.verifications = append(m.verifications, email)
	return nil
}

func (m *recordingMailer) SendPasswordChanged(
	_ context.Context,
	_, email string,
) error {
	if m.fail {
		return errors.New("mail provider down")
	}
	m.passwordChanges = append(m.passwordChanges, email)
	return nil
}

type fakeSetups struct {
	byOwner map[string][]setup.SetupDetail
}

func (f *fakeSetups) FindByUserID(
	_ context.Context,
	userID string,
) ([]setup.SetupDetail, error) {
	return f.byOwner[userID], nil
}

func validRequest() CreateUserRequest {
	return CreateUserRequest{
		Name:     "alice",
		Email:    "alice@x.com",
		Password: "pw123456",
		Nickname: "Alice",
	}
}

func TestRegisterHashesPasswordAndSendsEmail(t *testing.T) {
	repo := newFakeRepo()
	mailer := &recordingMailer{}
	svc := NewService(repo, mailer)

	u, err := svc.Register(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if u.PasswordHash == "pw123456" || u.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}

	ok, err := core.VerifyPassword("pw123456", u.PasswordHash)
	if err != nil || !ok {
		t.Errorf("stored hash must verify the original password: %v", err)
	}

	if u.IsEmailVerified {
		t.Error("new accounts start unverified")
	}
	if u.EmailVerificationToken == nil ||
		len(*u.EmailVerificationToken) != 6 {
		t.Error("a 6-digit verification code must be generated")
	}

	if len(mailer.welcomes) != 1 || len(mailer.verifications) != 1 {
		t.Error("welcome and verification emails must be sent")
	}
}

func TestRegisterSucceedsWhenEmailFails(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &recordingMailer{fail: true})

	if _, err := svc.Register(context.Background(), validRequest()); err != nil {
		t.Fatalf("registration must survive mail failures, got %v", err)
	}
	if len(repo.byID) != 1 {
		t.Error("user must be persisted despite mail failure")
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	svc := NewService(newFakeRepo(), &recordingMailer{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRequest()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	dup := validRequest()
	dup.Email = "other@x.com"
	_, err := svc.Register(ctx, dup)
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepo(), &recordingMailer{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRequest()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	dup := validRequest()
	dup.Name = "alice2"
	_, err := svc.Register(ctx, dup)
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}
}

func TestGetProfileByNameAttachesSetups(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &recordingMailer{})
	ctx := context.Background()

	u, err := svc.Register(ctx, validRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	svc.SetSetupSource(&fakeSetups{byOwner: map[string][]setup.SetupDetail{
		u.ID: {{ID: "s1", Name: "Desk Setup", OwnerID: u.ID}},
	}})

	resp, err := svc.GetProfileByName(ctx, "alice")
	if err != nil {
		t.Fatalf("GetProfileByName: %v", err)
	}

	setups, ok := resp.Setups.([]setup.SetupDetail)
	if !ok || len(setups) != 1 {
		t.Fatalf("setups = %#v, want one attached setup", resp.Setups)
	}
	if setups[0].Name != "Desk Setup" {
		t.Errorf("setup name = %q, want Desk Setup", setups[0].Name)
	}
}

func TestVerifyEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &recordingMailer{})
	ctx := context.Background()

	u, err := svc.Register(ctx, validRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	code := *u.EmailVerificationToken

	if err := svc.VerifyEmail(ctx, "alice@x.com", "000000"); err == nil {
		t.Error("wrong code must be rejected")
	}

	if err := svc.VerifyEmail(ctx, "alice@x.com", code); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}

	stored, _ := repo.GetByEmail(ctx, "alice@x.com")
	if !stored.IsEmailVerified {
		t.Error("user must be marked verified")
	}

	// Verifying twice is a no-op, not an error.
	if err := svc.VerifyEmail(ctx, "alice@x.com", code); err != nil {
		t.Errorf("repeat verification should be tolerated, got %v", err)
	}
}

func TestUpdateProfileRejectsTakenName(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &recordingMailer{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRequest()); err != nil {
		t.Fatalf("register alice: %v", err)
	}

	second := validRequest()
	second.Name = "bob"
	second.Email = "bob@x.com"
	bob, err := svc.Register(ctx, second)
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}

	taken := "alice"
	_, err = svc.UpdateProfile(ctx, bob.ID, UpdateUserRequest{Name: &taken})
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}
}

func TestUpdateProfilePasswordChangeSendsNotification(t *testing.T) {
	repo := newFakeRepo()
	mailer := &recordingMailer{}
	svc := NewService(repo, mailer)
	ctx := context.Background()

	u, err := svc.Register(ctx, validRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	newPassword := "newpw12345"
	if _, err := svc.UpdateProfile(ctx, u.ID,
		UpdateUserRequest{Password: &newPassword}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	if len(mailer.passwordChanges) != 1 {
		t.Fatalf("password change notifications = %d, want 1",
			len(mailer.passwordChanges))
	}
	if mailer.passwordChanges[0] != "alice@x.com" {
		t.Errorf("notification sent to %q", mailer.passwordChanges[0])
	}

	stored, _ := repo.GetByID(ctx, u.ID)
	ok, err := core.VerifyPassword(newPassword, stored.PasswordHash)
	if err != nil || !ok {
		t.Errorf("stored hash must verify the new password: %v", err)
	}
}

func TestUpdateProfileWithoutPasswordSendsNothing(t *testing.T) {
	repo := newFakeRepo()
	mailer := &recordingMailer{}
	svc := NewService(repo, mailer)
	ctx := context.Background()

	u, err := svc.Register(ctx, validRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	nickname := "Al"
	if _, err := svc.UpdateProfile(ctx, u.ID,
		UpdateUserRequest{Nickname: &nickname}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	if len(mailer.passwordChanges) != 0 {
		t.Error("profile edits without a password change must not notify")
	}
}

func TestUpdateProfilePasswordSurvivesMailFailure(t *testing.T) {
	repo := newFakeRepo()
	mailer := &recordingMailer{}
	svc := NewService(repo, mailer)
	ctx := context.Background()

	u, err := svc.Register(ctx, validRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	mailer.fail = true
	newPassword := "newpw12345"
	if _, err := svc.UpdateProfile(ctx, u.ID,
		UpdateUserRequest{Password: &newPassword}); err != nil {
		t.Fatalf("password change must survive mail failure, got %v", err)
	}

	stored, _ := repo.GetByID(ctx, u.ID)
	ok, err := core.VerifyPassword(newPassword, stored.PasswordHash)
	if err != nil || !ok {
		t.Errorf("new password must be stored despite mail failure: %v", err)
	}
}

func TestListReturnsAllUsers(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &recordingMailer{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRequest()); err != nil {
		t.Fatalf("register alice: %v", err)
	}
	second := validRequest()
	second.Name = "bob"
	second.Email = "bob@x.com"
	if _, err := svc.Register(ctx, second); err != nil {
		t.Fatalf("register bob: %v", err)
	}

	users, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("users = %d, want 2", len(users))
	}
}

func TestFindCredentialsProjection(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &recordingMailer{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRequest()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	info, err := svc.FindCredentials(ctx, "alice")
	if err != nil {
		t.Fatalf("FindCredentials: %v", err)
	}
	if info.PasswordHash == "" {
		t.Error("credential projection must carry the password hash")
	}
	if info.Email != "alice@x.com" || info.Nickname != "Alice" {
		t.Errorf("projection = %+v", info)
	}
}
