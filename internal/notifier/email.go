package notifier

import (
	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

// Notifier delivers a rendered message to a destination address. The
// tracker depends only on this success/failure contract.
type Notifier interface {
	Notify(to, subject, htmlBody string) error
}

// EmailNotifier sends notifications over SMTP.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailNotifier(c SMTPConfig) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(c.Host, c.Port, c.User, c.Password),
		from:   c.From,
	}
}

func (n *EmailNotifier) Notify(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return errors.Wrapf(n.dialer.DialAndSend(m), "could not send email to %s", to)
}
