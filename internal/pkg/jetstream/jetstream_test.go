package jetstream

import (
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
)

func TestMessageID(t *testing.T) {
	msg := nats.NewMsg("MAIL.queue")
	assert.Equal(t, "unknown", MessageID(msg), "expect plain messages to have no sequence")

	msg.Sub = &nats.Subscription{}
	msg.Reply = "$JS.ACK.MAIL.vila-mailers.2.42.7.1700000000000000000.0"
	assert.Equal(t, "seq:42#2", MessageID(msg))
}
