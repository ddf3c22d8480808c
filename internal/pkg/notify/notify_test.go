package notify

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type failing struct{}

func (failing) Send(ctx context.Context, msg *Message) error {
	return errors.New("dial tcp: connection refused")
}

type recorder struct {
	sent []*Message
}

func (r *recorder) Send(ctx context.Context, msg *Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

func TestDeliverDowngradesFailures(t *testing.T) {
	msg := &Message{Template: TemplateWaitlist, To: "ana@example.com"}

	assert.False(t, Deliver(context.Background(), failing{}, msg))
	assert.False(t, Deliver(context.Background(), Nop{}, msg))

	r := &recorder{}
	assert.True(t, Deliver(context.Background(), r, msg))
	assert.Len(t, r.sent, 1)
}

func TestPasswordResetTemplate(t *testing.T) {
	msg, err := PasswordReset("ana@example.com", "Ana", "https://vila.example/reset?lang=pt", "abc123", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, TemplatePasswordReset, msg.Template)
	assert.Equal(t, "ana@example.com", msg.To)
	assert.Contains(t, msg.Text, "https://vila.example/reset?lang=pt&token=abc123")
	assert.Contains(t, msg.Text, "1 hora")
	assert.Contains(t, msg.HTML, "Ana")
}

func TestWaitlistTemplateEscapesHTML(t *testing.T) {
	msg, err := WaitlistConfirmation("bob@example.com", "<b>Bob</b>")
	require.NoError(t, err)

	assert.Contains(t, msg.Text, "<b>Bob</b>")
	assert.NotContains(t, msg.HTML, "<b>Bob</b>")
}

func TestHumanizeDuration(t *testing.T) {
	assert.Equal(t, "1 hora", humanizeDuration(time.Hour))
	assert.Equal(t, "2 horas", humanizeDuration(2*time.Hour))
	assert.Equal(t, "30 minutos", humanizeDuration(30*time.Minute))
}

func TestDecodeQueued(t *testing.T) {
	b, err := msgpack.Marshal(&Message{Template: TemplateWaitlist, To: "ana@example.com", Subject: "hi"})
	require.NoError(t, err)

	msg, err := DecodeQueued(b)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", msg.To)
	assert.Equal(t, "hi", msg.Subject)

	_, err = DecodeQueued([]byte{0xc1})
	assert.Error(t, err)
}
