package services

import (
	"context"
	"fmt"

	"trailreg/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendRegistrationConfirmation sends the booking code and payment instructions
// using the "registration_confirmation" template.
func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if data == nil {
		return fmt.Errorf("registration confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("registration_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render registration_confirmation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send registration confirmation: %w", err)
	}
	return nil
}
