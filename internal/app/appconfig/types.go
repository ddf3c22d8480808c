package appconfig

import (
	"fmt"
	"strings"
)

type MailTransport string

const (
	MailTransportNone MailTransport = "none"
	MailTransportSMTP MailTransport = "smtp"
	MailTransportNATS MailTransport = "nats"
)

func (m *MailTransport) Decode(value string) error {
	switch v := MailTransport(strings.ToLower(strings.TrimSpace(value))); v {
	case "":
		*m = MailTransportNone
	case MailTransportNone, MailTransportSMTP, MailTransportNATS:
		*m = v
	default:
		return fmt.Errorf("invalid mail transport %q: expect one of none, smtp, nats", value)
	}
	return nil
}
