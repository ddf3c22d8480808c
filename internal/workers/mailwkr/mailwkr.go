// Package mailwkr delivers the mails queued on JetStream by notify.Queue.
package mailwkr

import (
	"context"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/vila-abandonada/backend/internal/app/appconfig"
	"github.com/vila-abandonada/backend/internal/app/appcontext"
	"github.com/vila-abandonada/backend/internal/infra"
	"github.com/vila-abandonada/backend/internal/pkg/jetstream"
	"github.com/vila-abandonada/backend/internal/pkg/notify"
	"github.com/vila-abandonada/backend/internal/pkg/observability"
)

const (
	QueueGroup = "vila-mailers"
	// MaxDeliver bounds redeliveries of a mail the SMTP server keeps refusing.
	MaxDeliver = 3
)

// ErrMalformed marks messages that will never decode; they are terminated instead of redelivered.
var ErrMalformed = errors.New("malformed queued mail")

type WorkerDeps struct {
	fx.In

	Config *appconfig.Config
	JS     nats.JetStreamContext
}

type Worker struct {
	Sender notify.Notifier
}

// Start subscribes the worker when mails are queued through NATS. The SMTP transport is
// built from the same SMTP settings the smtp mail transport uses.
func Start(lc fx.Lifecycle, deps WorkerDeps) error {
	if deps.Config.MailTransport != appconfig.MailTransportNATS || deps.JS == nil {
		return nil
	}
	// scripts and tests only publish
	if env := deps.Config.AppContext.Env; env == appcontext.EnvCLI || env == appcontext.EnvTest {
		return nil
	}

	sender, err := notify.NewSMTP(
		deps.Config.SMTPHost,
		deps.Config.SMTPPort,
		deps.Config.SMTPUsername,
		deps.Config.SMTPPassword,
		deps.Config.MailFrom,
	)
	if err != nil {
		return err
	}

	w := &Worker{Sender: sender}
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := w.Consume(ctx, deps.JS); err != nil && !errors.Is(err, context.Canceled) {
					log.Error().Err(err).Str("evt.name", "mailwkr.exit").Msg("mail worker stopped")
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})

	return nil
}

func (w *Worker) Consume(ctx context.Context, js nats.JetStreamContext) error {
	msgChan := make(chan *nats.Msg, 16)

	sub, err := js.ChanQueueSubscribe(infra.MailSubjectQueue, QueueGroup, msgChan,
		nats.ManualAck(),
		nats.AckWait(time.Second*30),
		nats.MaxDeliver(MaxDeliver),
		nats.MaxAckPending(64),
	)
	if err != nil {
		log.Err(err).Msg("failed to subscribe to " + infra.MailSubjectQueue)
		return err
	}
	defer func() {
		if err := sub.Unsubscribe(); err != nil {
			log.Warn().Err(err).Msg("failed to unsubscribe mail worker")
		}
	}()

	for {
		select {
		case msg := <-msgChan:
			w.process(ctx, msg)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Worker) process(ctx context.Context, msg *nats.Msg) {
	L := log.With().
		Str("evt.name", "mailwkr.process").
		Str("msg_id", jetstream.MessageID(msg)).
		Logger()

	err := w.Handle(ctx, msg.Data)
	switch {
	case err == nil:
		if err := msg.Ack(); err != nil {
			L.Error().Err(err).Msg("failed to ack")
		}
	case errors.Is(err, ErrMalformed):
		if err := msg.Term(); err != nil {
			L.Error().Err(err).Msg("failed to term")
		}
	default:
		L.Warn().Err(err).Msg("mail delivery failed, requesting redelivery")
		if err := msg.Nak(); err != nil {
			L.Error().Err(err).Msg("failed to nak")
		}
	}
}

// Handle decodes one queued mail and sends it.
func (w *Worker) Handle(ctx context.Context, data []byte) error {
	start := time.Now()
	defer func() {
		observability.MailConsumeDuration.WithLabelValues().Observe(time.Since(start).Seconds())
	}()

	msg, err := notify.DecodeQueued(data)
	if err != nil {
		log.Error().
			Err(err).
			Str("evt.name", "mailwkr.decode").
			Str("payload", spew.Sdump(data)).
			Msg("dropping malformed queued mail")
		return errors.Wrap(ErrMalformed, err.Error())
	}

	taskCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	if !notify.Deliver(taskCtx, w.Sender, msg) {
		return errors.Errorf("failed to deliver %s mail queued at %s", msg.Template, msg.QueuedAt.Format(time.RFC3339))
	}
	return nil
}
