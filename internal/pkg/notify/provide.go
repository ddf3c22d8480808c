package notify

import (
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/vila-abandonada/backend/internal/app/appconfig"
	"github.com/vila-abandonada/backend/internal/infra"
)

// New selects the Notifier matching conf.MailTransport.
func New(conf *appconfig.Config, js nats.JetStreamContext) (Notifier, error) {
	switch conf.MailTransport {
	case appconfig.MailTransportSMTP:
		return NewSMTP(conf.SMTPHost, conf.SMTPPort, conf.SMTPUsername, conf.SMTPPassword, conf.MailFrom)
	case appconfig.MailTransportNATS:
		if js == nil {
			return nil, errors.New("notify: nats transport selected but jetstream is unavailable")
		}
		return &Queue{JS: js, Subject: infra.MailSubjectQueue}, nil
	default:
		log.Warn().Str("evt.name", "notify.disabled").Msg("mail transport is none: notification mails will not be sent")
		return Nop{}, nil
	}
}
