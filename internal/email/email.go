// AngelaMos | 2026
// email.go

package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/frohlich71/creator-builds-api/internal/config"
)

// Sender delivers transactional email. Services depend on this interface
// so tests can swap in a noop.
type Sender interface {
	SendWelcome(ctx context.Context, name, email string) error
	SendVerification(ctx context.Context, name, email, code string) error
	SendPasswordChanged(ctx context.Context, name, email string) error
}

type resendSender struct {
	client      *resend.Client
	from        string
	frontendURL string
}

// New returns a Resend-backed sender, or a noop when no API key is
// configured so local development works without credentials.
func New(cfg config.EmailConfig) Sender {
	if cfg.ResendAPIKey == "" {
		return Noop{}
	}

	return &resendSender{
		client:      resend.NewClient(cfg.ResendAPIKey),
		from:        cfg.FromAddress,
		frontendURL: cfg.FrontendURL,
	}
}

func (s *resendSender) send(
	ctx context.Context,
	to, subject, html string,
) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}

func (s *resendSender) SendWelcome(
	ctx context.Context,
	name, email string,
) error {
	html := fmt.Sprintf(`
		<h1>Welcome, %s!</h1>
		<p>Your account is ready. Head over to
		<a href="%s">your dashboard</a> to build your first setup.</p>`,
		name, s.frontendURL,
	)

	return s.send(ctx, email, "Welcome to Creator Builds", html)
}

func (s *resendSender) SendVerification(
	ctx context.Context,
	name, email, code string,
) error {
	link := fmt.Sprintf("%s/verify-email?email=%s&code=%s",
		s.frontendURL, email, code)

	html := fmt.Sprintf(`
		<h1>Verify your email</h1>
		<p>Hi %s, your verification code is <strong>%s</strong>.</p>
		<p>You can also <a href="%s">verify with one click</a>.
		The code expires in 24 hours.</p>`,
		name, code, link,
	)

	return s.send(ctx, email, "Verify your email address", html)
}

func (s *resendSender) SendPasswordChanged(
	ctx context.Context,
	name, email string,
) error {
	html := fmt.Sprintf(`
		<h1>Password changed</h1>
		<p>Hi %s, your password was just changed. If this wasn't you,
		contact support immediately.</p>`,
		name,
	)

	return s.send(ctx, email, "Your password was changed", html)
}

// Noop discards all email. Used in tests and when Resend is unconfigured.
type Noop struct{}

func (Noop) SendWelcome(context.Context, string, string) error { return nil }

func (Noop) SendVerification(
	context.Context,
	string, string, string,
) error {
	return nil
}

func (Noop) SendPasswordChanged(context.Context, string, string) error {
	return nil
}
