package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/notify"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RollupConsumer feeds booking status changes from the broker into the
// revenue rollups.
type RollupConsumer struct {
	applier notify.Applier
	timeout time.Duration
	done    chan struct{}
}

func NewRollupConsumer(applier notify.Applier) *RollupConsumer {
	return &RollupConsumer{applier: applier, timeout: 10 * time.Second, done: make(chan struct{})}
}

// Start handles messages until msgs is closed.
func (rc *RollupConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		defer close(rc.done)
		for msg := range msgs {
			rc.handleMessage(msg)
		}
		log.Info("[RollupConsumer] channel closed, stopping consumer")
	}()
}

// Done is closed once the delivery channel has drained.
func (rc *RollupConsumer) Done() <-chan struct{} { return rc.done }

func (rc *RollupConsumer) handleMessage(msg amqp.Delivery) {
	var ev notify.Event
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		log.Errorf("[RollupConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), rc.timeout)
	defer cancel()
	if err := rc.applier.Apply(ctx, ev); err != nil {
		log.Errorf("[RollupConsumer] failed to apply booking %d: %v", ev.Booking.ID, err)
		msg.Nack(false, !msg.Redelivered)
		return
	}

	log.Debugf("[RollupConsumer] applied %s for booking %d", ev.Type, ev.Booking.ID)
	msg.Ack(false)
}
