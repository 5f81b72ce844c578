package service

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/edsg/edsg/internal/config"
)

// Mailer delivers notification mail over plain SMTP. It satisfies the
// request usecase's Notifier port.
type Mailer struct {
	addr string
	from string
	auth smtp.Auth
}

func NewMailer(conf config.SMTP) *Mailer {
	var auth smtp.Auth
	if conf.Username != "" {
		host := conf.Addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", conf.Username, conf.Password, host)
	}
	return &Mailer{
		addr: conf.Addr,
		from: conf.From,
		auth: auth,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	if m.addr == "" {
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}
