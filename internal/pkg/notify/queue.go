package notify

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Queue publishes messages to JetStream; the mail worker delivers them.
type Queue struct {
	JS      nats.JetStreamContext
	Subject string
}

func (q *Queue) Send(ctx context.Context, msg *Message) error {
	queued := *msg
	queued.QueuedAt = time.Now()

	b, err := msgpack.Marshal(&queued)
	if err != nil {
		return errors.Wrap(err, "notify: failed to encode message")
	}

	if _, err := q.JS.Publish(q.Subject, b, nats.Context(ctx)); err != nil {
		return errors.Wrap(err, "notify: failed to publish message")
	}
	return nil
}

// DecodeQueued decodes a message published by Queue.
func DecodeQueued(data []byte) (*Message, error) {
	var msg Message
	if err := msgpack.Unmarshal(data, &msg); err != nil {
		return nil, errors.Wrap(err, "notify: failed to decode queued message")
	}
	return &msg, nil
}
