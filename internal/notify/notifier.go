package notify

import (
	"context"
	"elevate/internal/providers"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

const crossPublishTimeout = 250 * time.Millisecond

type ChangeNotifierInterface interface {
	Notify(key string, value []byte)
	Subscribe(h Handler) func()
	Run(ctx context.Context) error
	Origin() string
}

// ChangeNotifier announces writes on the local channel first and then on the
// cross-context channel. Events from other contexts are re-published on the
// local channel by Run, so subscribers see both kinds.
type ChangeNotifier struct {
	origin    string
	local     *LocalChannel
	cross     CrossContextChannel
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	published atomic.Uint64
	received  atomic.Uint64
}

func NewChangeNotifier(origin string, local *LocalChannel, cross CrossContextChannel, logger providers.Logger, metrics providers.MetricsProviderInterface) *ChangeNotifier {
	if origin == "" {
		origin = uuid.NewString()
	}
	if cross == nil {
		cross = NoopCrossContext{}
	}
	return &ChangeNotifier{
		origin:  origin,
		local:   local,
		cross:   cross,
		logger:  logger,
		metrics: metrics,
	}
}

func (n *ChangeNotifier) Origin() string {
	return n.origin
}

func (n *ChangeNotifier) Notify(key string, value []byte) {
	ev := ChangeEvent{
		Key:      key,
		NewValue: value,
		Origin:   n.origin,
		At:       time.Now(),
	}

	n.local.Publish(ev)
	n.published.Inc()
	n.metrics.IncNotifications("local")

	ctx, cancel := context.WithTimeout(context.Background(), crossPublishTimeout)
	defer cancel()
	if err := n.cross.Publish(ctx, ev); err != nil {
		n.logger.Warnf(providers.TypeSync, "Cross-context publish of %s failed: %s", key, err)
		return
	}
	n.metrics.IncNotifications("cross")
}

func (n *ChangeNotifier) Subscribe(h Handler) func() {
	return n.local.Subscribe(h)
}

// Run pumps events from other contexts until ctx is cancelled.
func (n *ChangeNotifier) Run(ctx context.Context) error {
	n.logger.Infof(providers.TypeSync, "Listening for cross-context changes as %s", n.origin)
	return n.cross.Listen(ctx, func(ev ChangeEvent) {
		if ev.Origin == n.origin {
			return
		}
		ev.Remote = true
		n.received.Inc()
		n.metrics.IncNotifications("remote")
		n.local.Publish(ev)
	})
}

func (n *ChangeNotifier) Published() uint64 {
	return n.published.Load()
}

func (n *ChangeNotifier) Received() uint64 {
	return n.received.Load()
}

func (n *ChangeNotifier) Close() error {
	return n.cross.Close()
}
