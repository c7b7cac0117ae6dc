package notify

import "context"

// Publisher is satisfied by *rabbitmq.Publisher.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type BrokerSink struct {
	pub Publisher
}

func NewBrokerSink(pub Publisher) *BrokerSink {
	return &BrokerSink{pub: pub}
}

func (b *BrokerSink) Name() string { return "rabbitmq" }

func (b *BrokerSink) Send(ctx context.Context, ev Event) error {
	return b.pub.Publish(ctx, string(ev.Type), ev)
}

// Applier consumes events in-process.
type Applier interface {
	Apply(ctx context.Context, ev Event) error
}

// LocalSink hands events straight to an in-process Applier. It stands in for
// the broker round trip when no broker is configured.
type LocalSink struct {
	applier Applier
}

func NewLocalSink(applier Applier) *LocalSink {
	return &LocalSink{applier: applier}
}

func (l *LocalSink) Name() string { return "local" }

func (l *LocalSink) Send(ctx context.Context, ev Event) error {
	return l.applier.Apply(ctx, ev)
}
