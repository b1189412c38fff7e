// Package email sends transactional email through Resend.
package email

import (
	"fmt"

	"github.com/deppfellow/starwars-api/internal/config"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// sender is the part of resend.EmailsSvc the client needs.
type sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type Client struct {
	emails sender
	from   string
	logger *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		emails: resend.NewClient(cfg.Integration.ResendAPIKey).Emails,
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
}

func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	body, err := RenderTemplate(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	sent, err := c.emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().Str("email_id", sent.Id).Str("template", string(templateName)).Msg("email sent")

	return nil
}
