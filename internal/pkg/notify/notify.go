// Package notify delivers transactional mails (waitlist confirmation, password reset).
// Delivery is best-effort: callers go through Deliver, which never returns an error.
package notify

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/vila-abandonada/backend/internal/pkg/observability"
)

var ErrDisabled = errors.New("notify: mail delivery is disabled")

type Message struct {
	// Template names the template the message was rendered from. Used for logs and metrics.
	Template string `msgpack:"template"`
	To       string `msgpack:"to"`
	Subject  string `msgpack:"subject"`
	Text     string `msgpack:"text"`
	HTML     string `msgpack:"html"`
	// QueuedAt is set when the message goes through the mail queue.
	QueuedAt time.Time `msgpack:"queued_at"`
}

type Notifier interface {
	Send(ctx context.Context, msg *Message) error
}

// Deliver sends msg through n and reports whether it left the process. Failures are
// logged and counted, never returned.
func Deliver(ctx context.Context, n Notifier, msg *Message) bool {
	err := n.Send(ctx, msg)
	if err != nil {
		outcome := "failed"
		if errors.Is(err, ErrDisabled) {
			outcome = "disabled"
		}
		observability.MailDelivery.WithLabelValues(msg.Template, outcome).Inc()
		log.Warn().
			Str("evt.name", "notify.deliver").
			Str("template", msg.Template).
			Err(err).
			Msg("failed to deliver mail")
		return false
	}

	observability.MailDelivery.WithLabelValues(msg.Template, "sent").Inc()
	log.Info().
		Str("evt.name", "notify.deliver").
		Str("template", msg.Template).
		Msg("mail delivered")
	return true
}

type Nop struct{}

func (Nop) Send(ctx context.Context, msg *Message) error {
	return ErrDisabled
}
