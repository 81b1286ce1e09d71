package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/nagrik-seva/app-docvault/internal/config"
	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/observability"
)

// Mailer delivers citizen-facing notification emails
type Mailer interface {
	SendOTP(to, code string) error
	SendDecision(to string, req *models.ChangeRequest) error
}

// NewMailer builds the SMTP mailer when a host is configured and a
// logging no-op otherwise, so local development needs no mail server.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return &noopMailer{}
	}
	return &smtpMailer{
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		host: cfg.SMTPHost,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.SMTPFrom,
	}
}

type smtpMailer struct {
	addr string
	host string
	user string
	pass string
	from string
}

func (m *smtpMailer) send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	return smtp.SendMail(m.addr, auth, m.from, []string{to}, []byte(msg))
}

func (m *smtpMailer) SendOTP(to, code string) error {
	body := fmt.Sprintf(
		"Your one-time password for the document portal is %s.\n\n"+
			"It expires in 5 minutes. Do not share this code with anyone.\n", code)
	return m.send(to, "Your login OTP", body)
}

func (m *smtpMailer) SendDecision(to string, req *models.ChangeRequest) error {
	verdict := "approved"
	if req.Status == models.StatusRejected {
		verdict = "rejected"
	}
	body := fmt.Sprintf(
		"Your change request %s has been %s.\n\n"+
			"Document: %s\nField: %s\n", req.ReferenceID, verdict, req.DocumentType, req.FieldToUpdate)
	if req.Comments != "" {
		body += fmt.Sprintf("Reviewer comments: %s\n", req.Comments)
	}
	return m.send(to, fmt.Sprintf("Change request %s %s", req.ReferenceID, verdict), body)
}

type noopMailer struct{}

func (n *noopMailer) SendOTP(to, code string) error {
	observability.Logger().Info("mail disabled, OTP not sent",
		zap.String("email", observability.MaskEmail(to)))
	return nil
}

func (n *noopMailer) SendDecision(to string, req *models.ChangeRequest) error {
	observability.Logger().Info("mail disabled, decision notice not sent",
		zap.String("email", observability.MaskEmail(to)),
		zap.String("reference_id", req.ReferenceID))
	return nil
}
