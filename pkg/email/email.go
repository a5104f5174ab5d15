package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"go-marketplace-backend/config"
)

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// WelcomeEmailData holds the data for registration emails
type WelcomeEmailData struct {
	FullName string
	Role     string
}

// ApplicationStatusEmailData holds the data for application status emails
type ApplicationStatusEmailData struct {
	FullName string
	JobTitle string
	Status   string
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	from := cfg.SMTPFromEmail
	if from == "" {
		from = cfg.SMTPUsername
	}
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: from,
		send:      smtp.SendMail,
	}
}

const layoutTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0f766e; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>{{.Title}}</h1></div>
        <div class="content">{{template "body" .Data}}</div>
        <div class="footer"><p>You are receiving this email because you have a GigMarket account.</p></div>
    </div>
</body>
</html>`

const welcomeBody = `{{define "body"}}
<p>Hi {{.FullName}},</p>
<p>Your {{.Role}} account is ready. Complete your profile to get discovered.</p>
{{end}}`

const applicationStatusBody = `{{define "body"}}
<p>Hi {{.FullName}},</p>
<p>Your application for <strong>{{.JobTitle}}</strong> is now <strong>{{.Status}}</strong>.</p>
{{end}}`

var (
	welcomeTmpl           = template.Must(template.Must(template.New("layout").Parse(layoutTemplate)).Parse(welcomeBody))
	applicationStatusTmpl = template.Must(template.Must(template.New("layout").Parse(layoutTemplate)).Parse(applicationStatusBody))
)

// RenderWelcome renders the registration email body
func RenderWelcome(data WelcomeEmailData) (string, error) {
	return render(welcomeTmpl, "Welcome to GigMarket", data)
}

// RenderApplicationStatus renders the application status email body
func RenderApplicationStatus(data ApplicationStatusEmailData) (string, error) {
	return render(applicationStatusTmpl, "Application update", data)
}

func render(tmpl *template.Template, title string, data any) (string, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, map[string]any{"Title": title, "Data": data}); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// SendWelcome sends the registration email
func (s *EmailService) SendWelcome(to string, data WelcomeEmailData) error {
	body, err := RenderWelcome(data)
	if err != nil {
		return err
	}
	return s.sendHTML(to, "Welcome to GigMarket", body)
}

// SendApplicationStatus notifies a worker that their application changed status
func (s *EmailService) SendApplicationStatus(to string, data ApplicationStatusEmailData) error {
	body, err := RenderApplicationStatus(data)
	if err != nil {
		return err
	}
	return s.sendHTML(to, fmt.Sprintf("Your application for %s", data.JobTitle), body)
}

func (s *EmailService) sendHTML(to, subject, body string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service not configured")
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		subject,
		body,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
