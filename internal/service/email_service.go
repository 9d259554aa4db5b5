package service

import (
	"fmt"

	"studyhub_backend/internal/config"
	"studyhub_backend/pkg/logger"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// EmailService sends transactional mail through SendGrid. With no API key
// configured it degrades to logging, so local development needs no account.
type EmailService struct {
	cfg config.EmailConfig
}

func NewEmailService(cfg config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) send(toName, toAddress, subject, plain, html string) error {
	if s.cfg.SendgridAPIKey == "" {
		logger.Log.Info("email skipped (no sendgrid key)",
			zap.String("to", toAddress),
			zap.String("subject", subject))
		return nil
	}

	from := sgmail.NewEmail(s.cfg.FromName, s.cfg.FromAddress)
	to := sgmail.NewEmail(toName, toAddress)
	message := sgmail.NewSingleEmail(from, subject, to, plain, html)

	client := sendgrid.NewSendClient(s.cfg.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (s *EmailService) SendWelcome(toAddress, name string) {
	subject := "Welcome to StudyHub"
	plain := fmt.Sprintf("Hi %s,\n\nYour StudyHub account is ready. Set up your subjects and start planning.\n", name)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your StudyHub account is ready. Set up your subjects and start planning.</p>", name)

	if err := s.send(name, toAddress, subject, plain, html); err != nil {
		logger.Log.Error("welcome email failed", zap.String("to", toAddress), zap.Error(err))
	}
}

// SendContactNotification forwards a contact-form submission to the support
// inbox.
func (s *EmailService) SendContactNotification(fromName, fromEmail, subject, body string) {
	if s.cfg.ContactInbox == "" {
		return
	}

	mailSubject := fmt.Sprintf("[Contact] %s", subject)
	plain := fmt.Sprintf("From: %s <%s>\n\n%s\n", fromName, fromEmail, body)
	html := fmt.Sprintf("<p><b>From:</b> %s &lt;%s&gt;</p><p>%s</p>", fromName, fromEmail, body)

	if err := s.send("StudyHub Support", s.cfg.ContactInbox, mailSubject, plain, html); err != nil {
		logger.Log.Error("contact notification failed", zap.String("from", fromEmail), zap.Error(err))
	}
}
