package mailer

import (
	"fmt"
	"log"
	"net/smtp"
)

// Mailer delivers transactional mail. Handlers depend on the interface so
// tests can swap in a recorder.
type Mailer interface {
	SendResetCode(to, code string) error
}

// SMTPMailer sends mail over plain SMTP with auth
type SMTPMailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewSMTPMailer(host, port, user, password, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, password: password, from: from}
}

// SendResetCode emails an 8-digit password reset code to the given address
func (m *SMTPMailer) SendResetCode(to, code string) error {
	subject := "Your security code"
	body := fmt.Sprintf(
		"Here is your 8-digit security code: %s\r\n\r\nThis code expires in 5 minutes.\r\n", code)
	msg := []byte(
		"From: " + m.from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"\r\n" + body)

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.user, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send reset code to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes mail to the process log instead of sending it. Used in
// development when no SMTP host is configured.
type LogMailer struct{}

func (LogMailer) SendResetCode(to, code string) error {
	log.Printf("[mailer] reset code for %s: %s", to, code)
	return nil
}
