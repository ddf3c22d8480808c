package mailwkr

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vila-abandonada/backend/internal/pkg/notify"
)

type recorder struct {
	sent []*notify.Message
	err  error
}

func (r *recorder) Send(ctx context.Context, msg *notify.Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestHandle(t *testing.T) {
	queued, err := msgpack.Marshal(&notify.Message{
		Template: notify.TemplateWaitlist,
		To:       "eva@example.com",
		Subject:  "Lista de espera",
		Text:     "Olá Eva",
		QueuedAt: time.Now(),
	})
	require.NoError(t, err)

	t.Run("Delivers", func(t *testing.T) {
		r := &recorder{}
		w := &Worker{Sender: r}

		require.NoError(t, w.Handle(context.Background(), queued))
		require.Len(t, r.sent, 1)
		assert.Equal(t, "eva@example.com", r.sent[0].To)
	})

	t.Run("Malformed", func(t *testing.T) {
		w := &Worker{Sender: &recorder{}}

		err := w.Handle(context.Background(), []byte{0xc1, 0x00})
		assert.ErrorIs(t, err, ErrMalformed, "expect undecodable payloads to be terminated")
	})

	t.Run("DeliveryFailure", func(t *testing.T) {
		w := &Worker{Sender: &recorder{err: errors.New("smtp: 421 service not available")}}

		err := w.Handle(context.Background(), queued)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrMalformed, "expect delivery failures to be redelivered")
	})
}
