package email

import (
	"bytes"
	"html/template"
	"log"
	"os"

	"github.com/pixmora/pixmora-backend/internal/config"
	"github.com/resendlabs/resend-go"
)

const welcomeTemplate = `<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Welcome to Pixmora, {{.Username}}!</h2>
    <p>Your account is ready. Create an edit session, pick a prompt from the
    gallery and start generating.</p>
    <p>— The Pixmora team</p>
  </body>
</html>`

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *log.Logger
}

// NewEmailService builds the Resend-backed mailer. Without an API key the
// service stays up but sends nothing, so local and test runs need no account.
func NewEmailService(cfg config.EmailConfig) *EmailService {
	svc := &EmailService{
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		logger:   log.New(os.Stdout, "EMAIL: ", log.LstdFlags),
	}
	if cfg.APIKey != "" {
		svc.client = resend.NewClient(cfg.APIKey)
	}
	return svc
}

func (s *EmailService) SendWelcomeEmail(email, username string) error {
	if s.client == nil {
		return nil
	}

	html, err := s.renderWelcome(username)
	if err != nil {
		s.logger.Printf("Error rendering welcome template for %s: %v", email, err)
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Welcome to Pixmora!",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Printf("Failed to send welcome email to %s: %v", email, err)
		return err
	}

	s.logger.Printf("Sent welcome email to %s (ID: %s)", email, resp.Id)
	return nil
}

func (s *EmailService) renderWelcome(username string) (string, error) {
	tmpl, err := template.New("welcome").Parse(welcomeTemplate)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]interface{}{"Username": username}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
