package jetstream

import (
	"strconv"

	"github.com/nats-io/nats.go"
)

// MessageID identifies a delivery for logging, e.g. "seq:42#2" for the second attempt.
// Messages that did not come from a JetStream consumer yield "unknown".
func MessageID(msg *nats.Msg) string {
	meta, err := msg.Metadata()
	if err != nil {
		return "unknown"
	}
	return "seq:" + strconv.FormatUint(meta.Sequence.Stream, 10) + "#" + strconv.FormatUint(meta.NumDelivered, 10)
}
