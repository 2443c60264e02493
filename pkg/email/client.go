package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/anupamtiwari/homecraft-backend/pkg/config"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/logger"
)

var (
	errAPIKeyRequired = errors.New("sendgrid api key is required")
	errSenderRequired = errors.New("sendgrid from email is required")
	errLoggerRequired = errors.New("sendgrid logger is required")
)

type sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Enquiry is a contact-form submission forwarded to the operations inbox.
type Enquiry struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Client wraps SendGrid with the configured sender identity.
type Client struct {
	send         sender
	fromEmail    string
	fromName     string
	enquiryInbox string
	logger       *logger.Logger
}

// NewClient initializes the SendGrid wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.SendgridConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}
	fromEmail := strings.TrimSpace(cfg.FromEmail)
	if fromEmail == "" {
		return nil, errSenderRequired
	}

	c := &Client{
		send:         sendgrid.NewSendClient(apiKey),
		fromEmail:    fromEmail,
		fromName:     strings.TrimSpace(cfg.FromName),
		enquiryInbox: strings.TrimSpace(cfg.EnquiryInbox),
		logger:       logg,
	}

	logg.Info(ctx, "sendgrid client initialized")
	return c, nil
}

// SendOTP mails a login code to the given address.
func (c *Client) SendOTP(ctx context.Context, toEmail, code string) error {
	subject := "Your Homecraft login code"
	plain := fmt.Sprintf("Your one-time login code is %s. It expires in a few minutes. If you did not request it, ignore this email.", code)
	html := fmt.Sprintf("<p>Your one-time login code is <strong>%s</strong>.</p><p>It expires in a few minutes. If you did not request it, ignore this email.</p>", code)

	return c.deliver(ctx, toEmail, "", subject, plain, html)
}

// SendEnquiry forwards a contact-form submission to the configured inbox.
func (c *Client) SendEnquiry(ctx context.Context, enquiry Enquiry) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "email client not initialized")
	}
	if c.enquiryInbox == "" {
		return pkgerrors.New(pkgerrors.CodeNotConfigured, "enquiry inbox is not configured")
	}

	subject := fmt.Sprintf("New enquiry from %s", enquiry.Name)
	plain := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s", enquiry.Name, enquiry.Email, enquiry.Phone, enquiry.Message)
	html := fmt.Sprintf("<p><strong>Name:</strong> %s<br><strong>Email:</strong> %s<br><strong>Phone:</strong> %s</p><p>%s</p>", enquiry.Name, enquiry.Email, enquiry.Phone, enquiry.Message)

	return c.deliver(ctx, c.enquiryInbox, "", subject, plain, html)
}

func (c *Client) deliver(ctx context.Context, toEmail, toName, subject, plain, html string) error {
	if c == nil || c.send == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "email client not initialized")
	}
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient email is required")
	}

	from := mail.NewEmail(c.fromName, c.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	resp, err := c.send.SendWithContext(ctx, message)
	if err != nil {
		c.logger.Error(ctx, "sendgrid delivery failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "email provider rejected the message")
	}
	if resp != nil && resp.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid status %d", resp.StatusCode)
		c.logger.Error(ctx, "sendgrid delivery failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "email provider rejected the message")
	}

	return nil
}
