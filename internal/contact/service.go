// Package contact relays messages from the public contact form by email.
package contact

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/apperrors"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
)

// Message is a contact form submission.
type Message struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Sender delivers template parameters to the mail relay.
type Sender interface {
	Send(ctx context.Context, params map[string]string) error
}

type Service struct {
	sender   Sender
	toName   string
	validate *validator.Validate
}

// NewService creates a contact service; toName fills the template's
// recipient name.
func NewService(sender Sender, toName string) *Service {
	return &Service{
		sender:   sender,
		toName:   toName,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Send validates m and hands it to the relay.
func (s *Service) Send(ctx context.Context, m Message) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(m.Message)

	if err := s.validate.Struct(m); err != nil {
		return toValidationError(err)
	}

	err := s.sender.Send(ctx, map[string]string{
		"from_name":  m.Name,
		"from_email": m.Email,
		"message":    m.Message,
		"to_name":    s.toName,
	})
	if err != nil {
		return apperrors.Remote("send contact message", err)
	}

	logging.FromContext(ctx).Info("contact message relayed", zap.Int("length", len(m.Message)))
	return nil
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &apperrors.ValidationError{Message: "invalid message"}
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return &apperrors.ValidationError{Field: field, Message: "is required"}
	case "email":
		return &apperrors.ValidationError{Field: field, Message: "is not a valid email address"}
	case "max":
		return &apperrors.ValidationError{Field: field, Message: "is too long"}
	default:
		return &apperrors.ValidationError{Field: field, Message: "is invalid"}
	}
}
