package enquiry

import (
	"context"
	"net/mail"
	"strings"

	"github.com/anupamtiwari/homecraft-backend/pkg/email"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
)

const maxMessageLength = 2000

// Service forwards contact-form submissions to the operations inbox.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) error
}

// SubmitInput is the raw contact-form payload.
type SubmitInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type mailer interface {
	SendEnquiry(ctx context.Context, enquiry email.Enquiry) error
}

type service struct {
	mailer mailer
}

// NewService builds the enquiry service on top of the mail client.
func NewService(mailer mailer) Service {
	return &service{mailer: mailer}
}

func (s *service) Submit(ctx context.Context, input SubmitInput) error {
	name := strings.TrimSpace(input.Name)
	address := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)

	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if _, err := mail.ParseAddress(address); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	if message == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}
	if len(message) > maxMessageLength {
		return pkgerrors.New(pkgerrors.CodeValidation, "message is too long")
	}
	phone := strings.TrimSpace(input.Phone)
	if phone != "" && (len(phone) != 10 || strings.Trim(phone, "0123456789") != "") {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone must be a 10-digit number")
	}

	return s.mailer.SendEnquiry(ctx, email.Enquiry{
		Name:    name,
		Email:   address,
		Phone:   phone,
		Message: message,
	})
}
