package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/juniperhq/storefront-backend/internal/config"
	"github.com/juniperhq/storefront-backend/internal/domain"
)

type mailerMock struct {
	SendFunc func(ctx context.Context, msg Message) error
	sent     []Message
}

func (m *mailerMock) Send(ctx context.Context, msg Message) error {
	m.sent = append(m.sent, msg)
	if m.SendFunc == nil {
		return nil
	}
	return m.SendFunc(ctx, msg)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validInput() SubmitInput {
	return SubmitInput{
		Name:    "Customer",
		Email:   "customer@example.com",
		Subject: "Order question",
		Message: "Where is my package?",
	}
}

func TestService_Submit_HappyPath(t *testing.T) {
	t.Parallel()

	mailer := &mailerMock{}
	svc := NewService(testLogger(), mailer, config.ContactConfig{Recipient: "support@shop.test"})

	if err := svc.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("Submit: unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(mailer.sent))
	}
	if mailer.sent[0].To != "support@shop.test" {
		t.Errorf("recipient mismatch: got %q", mailer.sent[0].To)
	}
	if mailer.sent[0].From != "customer@example.com" {
		t.Errorf("sender mismatch: got %q", mailer.sent[0].From)
	}
}

func TestService_Submit_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*SubmitInput)
	}{
		{"empty name", func(i *SubmitInput) { i.Name = "" }},
		{"bad email", func(i *SubmitInput) { i.Email = "not-an-email" }},
		{"empty subject", func(i *SubmitInput) { i.Subject = "" }},
		{"empty message", func(i *SubmitInput) { i.Message = "" }},
	}

	mailer := &mailerMock{}
	svc := NewService(testLogger(), mailer, config.ContactConfig{Recipient: "support@shop.test"})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			err := svc.Submit(context.Background(), input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got: %v", err)
			}
		})
	}
	if len(mailer.sent) != 0 {
		t.Errorf("invalid submissions must not be sent, got %d", len(mailer.sent))
	}
}

func TestService_Submit_MailerFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("smtp unreachable")
	mailer := &mailerMock{
		SendFunc: func(ctx context.Context, msg Message) error { return boom },
	}
	svc := NewService(testLogger(), mailer, config.ContactConfig{Recipient: "support@shop.test"})

	err := svc.Submit(context.Background(), validInput())
	if !errors.Is(err, boom) {
		t.Fatalf("expected mailer error to surface, got: %v", err)
	}
}
