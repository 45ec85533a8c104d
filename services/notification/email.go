package notification

import (
	"strbooking/config"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers guest emails over SMTP.
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMTPSender is the gomail-backed EmailSender.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender() *SMTPSender {
	cfg := config.AppConfig
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPFrom,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}
