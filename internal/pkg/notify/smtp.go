package notify

import (
	"context"

	"github.com/pkg/errors"
	"github.com/wneessen/go-mail"
)

type SMTP struct {
	From string

	client *mail.Client
}

func NewSMTP(host string, port int, username, password, from string) (*SMTP, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "notify: failed to create smtp client")
	}

	return &SMTP{From: from, client: client}, nil
}

func (s *SMTP) Send(ctx context.Context, msg *Message) error {
	m := mail.NewMsg()
	if err := m.From(s.From); err != nil {
		return errors.Wrap(err, "notify: invalid sender")
	}
	if err := m.To(msg.To); err != nil {
		return errors.Wrap(err, "notify: invalid recipient")
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	return errors.Wrap(s.client.DialAndSendWithContext(ctx, m), "notify: smtp delivery failed")
}
