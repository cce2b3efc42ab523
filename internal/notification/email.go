package notification

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

// EmailService sends reminder and welcome emails through Resend. With no
// API key configured it logs instead of sending, so local development
// works without credentials.
type EmailService struct {
	client    *resend.Client
	fromEmail string
	appURL    string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("RESEND_API_KEY")
	fromEmail := os.Getenv("EMAIL_FROM")
	if fromEmail == "" {
		fromEmail = "TrackFlow <reminders@trackflow.app>"
	}
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:3000"
	}

	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	} else {
		log.Println("RESEND_API_KEY not set, emails will be logged instead of sent")
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		appURL:    appURL,
	}
}

func (s *EmailService) SendEmail(ctx context.Context, to, subject, html string) error {
	if s.client == nil {
		log.Printf("EMAIL (dev mode): to=%s subject=%q", to, subject)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("email delivery failed: %w", err)
	}
	return nil
}

func (s *EmailService) SendReminderEmail(ctx context.Context, to, message string) error {
	subject, html := reminderEmailTemplate(message, s.appURL)
	return s.SendEmail(ctx, to, subject, html)
}

func (s *EmailService) SendDailyReminderEmail(ctx context.Context, to string) error {
	subject, html := dailyReminderEmailTemplate(s.appURL)
	return s.SendEmail(ctx, to, subject, html)
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, to, name string) error {
	subject, html := welcomeEmailTemplate(name, s.appURL)
	return s.SendEmail(ctx, to, subject, html)
}
