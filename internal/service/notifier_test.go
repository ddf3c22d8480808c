package service_test

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/vila-abandonada/backend/internal/pkg/notify"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []*notify.Message
}

func (r *recordingNotifier) Send(ctx context.Context, msg *notify.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingNotifier) Sent() []*notify.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*notify.Message(nil), r.sent...)
}

// withNotifier replaces the configured notifier of the graph with n.
func withNotifier(n notify.Notifier) []fx.Option {
	return []fx.Option{
		fx.Decorate(func(notify.Notifier) notify.Notifier { return n }),
	}
}
