// Package contact implements the storefront contact form.
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/juniperhq/storefront-backend/internal/config"
	"github.com/juniperhq/storefront-backend/internal/domain"
)

const (
	maxSubjectLen = 200
	maxMessageLen = 5000
)

// Message is a contact-form submission addressed to the support inbox.
type Message struct {
	From    string
	Name    string
	To      string
	Subject string
	Body    string
}

// mailer delivers contact messages. Delivery is synchronous from the
// service's point of view; queueing is the mailer's business.
type mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Service validates and forwards contact-form submissions.
type Service struct {
	log    *slog.Logger
	mailer mailer
	cfg    config.ContactConfig
}

// NewService creates a new contact service instance.
func NewService(logger *slog.Logger, mailer mailer, cfg config.ContactConfig) *Service {
	return &Service{
		log:    logger.With("service", "contact"),
		mailer: mailer,
		cfg:    cfg,
	}
}

// SubmitInput holds a contact-form submission.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Validate validates the submission.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if _, err := mail.ParseAddress(i.Email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid format"})
	}
	if i.Subject == "" {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "required"})
	} else if len(i.Subject) > maxSubjectLen {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "too long"})
	}
	if i.Message == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	} else if len(i.Message) > maxMessageLen {
		errs = append(errs, domain.FieldError{Field: "message", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Submit validates and forwards a contact-form submission to support.
func (s *Service) Submit(ctx context.Context, input SubmitInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)

	if err := input.Validate(); err != nil {
		return err
	}

	err := s.mailer.Send(ctx, Message{
		From:    input.Email,
		Name:    input.Name,
		To:      s.cfg.Recipient,
		Subject: input.Subject,
		Body:    input.Message,
	})
	if err != nil {
		return fmt.Errorf("contact.Submit: %w", err)
	}

	s.log.InfoContext(ctx, "contact message forwarded")
	return nil
}

// LogMailer writes contact messages to the log. It stands in for a real
// delivery backend in environments without one.
type LogMailer struct {
	Log *slog.Logger
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.Log.InfoContext(ctx, "contact message",
		slog.String("from", msg.From),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject))
	return nil
}
