// Package email delivers account notifications through Resend. In development
// mode nothing leaves the process; mails are logged instead so the flows can
// be exercised without an API key.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

type Mailer struct {
	client *resend.Client
	from   string
	appURL string
	dev    bool
	log    zerolog.Logger
}

func NewMailer(apiKey, from, appURL string, dev bool, log zerolog.Logger) *Mailer {
	var client *resend.Client
	if apiKey != "" && !dev {
		client = resend.NewClient(apiKey)
	}
	return &Mailer{
		client: client,
		from:   from,
		appURL: appURL,
		dev:    dev,
		log:    log,
	}
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password/%s", m.appURL, token)
	body := fmt.Sprintf(
		"Forgot your password? Submit a PATCH request with your new password and passwordConfirm to: %s\nIf you didn't forget your password, please ignore this email!",
		resetURL,
	)

	if m.dev {
		m.log.Info().
			Str("to", to).
			Str("url", resetURL).
			Msg("password reset email (dev mode, not sent)")
		return nil
	}

	if m.client == nil {
		return fmt.Errorf("mailer not configured (missing RESEND_API_KEY)")
	}

	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Your password reset token (valid for 1 hour)",
		Text:    body,
	})
	if err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}
	return nil
}
