package notify

import "context"

// CrossContextChannel carries change events between contexts that share a
// backend. Publishers never receive their own events back.
type CrossContextChannel interface {
	Publish(ctx context.Context, ev ChangeEvent) error
	// Listen delivers events from other contexts until ctx is done.
	Listen(ctx context.Context, h Handler) error
	Close() error
}

// NoopCrossContext is used when this context is the only one.
type NoopCrossContext struct{}

func (NoopCrossContext) Publish(_ context.Context, _ ChangeEvent) error { return nil }

func (NoopCrossContext) Listen(ctx context.Context, _ Handler) error {
	<-ctx.Done()
	return nil
}

func (NoopCrossContext) Close() error { return nil }
