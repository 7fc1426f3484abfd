// Package email provides the email client for sending transactional emails.
package email

import (
	"fmt"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/email/templates"
	"github.com/anja687gutierrez-jpg/goiconicway/pkg/config"
	"github.com/resendlabs/resend-go"
)

// Service defines the interface for sending emails, allowing for mock implementations in tests.
type Service interface {
	SendGuideDeliveryEmail(toEmail, firstName, guideURL string) error
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewService creates a new email service client, returning the Service interface.
func NewService() (Service, error) {
	if config.ResendAPIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	return &ResendClient{
		client: resend.NewClient(config.ResendAPIKey),
		from:   config.EmailFromAddress,
	}, nil
}

// SendGuideDeliveryEmail composes and sends the travel guide delivery email.
func (c *ResendClient) SendGuideDeliveryEmail(toEmail, firstName, guideURL string) error {
	content := templates.GetGuideEmailContent(templates.GuideEmailProps{
		FirstName: firstName,
		GuideURL:  guideURL,
	})

	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Preheader: "Your free Route 66 travel guide",
		Content:   content,
	})

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{toEmail},
		Subject: "Your Route 66 travel guide",
		Html:    htmlContent,
	}

	_, err := c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send guide delivery email via Resend: %w", err)
	}

	return nil
}
