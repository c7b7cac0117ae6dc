package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/notify"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ackRecord struct {
	tag     uint64
	ack     bool
	requeue bool
}

type fakeAcknowledger struct {
	mu      sync.Mutex
	records []ackRecord
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, ackRecord{tag: tag, ack: true})
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, ackRecord{tag: tag, requeue: requeue})
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

type fakeApplier struct {
	mu  sync.Mutex
	got []notify.Event
	err error
}

func (f *fakeApplier) Apply(ctx context.Context, ev notify.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, ev)
	return f.err
}

func delivery(t *testing.T, ack amqp.Acknowledger, tag uint64, body any) amqp.Delivery {
	t.Helper()
	raw, ok := body.([]byte)
	if !ok {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: tag, Body: raw}
}

func TestRollupConsumer_AcksApplied(t *testing.T) {
	ack := &fakeAcknowledger{}
	applier := &fakeApplier{}
	rc := NewRollupConsumer(applier)

	msgs := make(chan amqp.Delivery, 1)
	msgs <- delivery(t, ack, 1, notify.Event{
		Type:           notify.BookingStatusChanged,
		PreviousStatus: models.StatusPending,
		Booking:        models.Booking{ID: 3, Status: models.StatusConfirmed, TotalPrice: 900},
	})
	close(msgs)

	rc.Start(msgs)
	select {
	case <-rc.Done():
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}

	require.Len(t, applier.got, 1)
	assert.Equal(t, uint(3), applier.got[0].Booking.ID)
	assert.Equal(t, models.StatusPending, applier.got[0].PreviousStatus)
	assert.Equal(t, []ackRecord{{tag: 1, ack: true}}, ack.records)
}

func TestRollupConsumer_DropsMalformed(t *testing.T) {
	ack := &fakeAcknowledger{}
	applier := &fakeApplier{}
	rc := NewRollupConsumer(applier)

	rc.handleMessage(delivery(t, ack, 7, []byte("{not json")))

	assert.Empty(t, applier.got)
	assert.Equal(t, []ackRecord{{tag: 7}}, ack.records)
}

func TestRollupConsumer_RequeuesOnceOnFailure(t *testing.T) {
	ack := &fakeAcknowledger{}
	applier := &fakeApplier{err: errors.New("deadlock detected")}
	rc := NewRollupConsumer(applier)
	ev := notify.Event{Type: notify.BookingStatusChanged}

	rc.handleMessage(delivery(t, ack, 1, ev))
	redelivered := delivery(t, ack, 2, ev)
	redelivered.Redelivered = true
	rc.handleMessage(redelivered)

	assert.Equal(t, []ackRecord{{tag: 1, requeue: true}, {tag: 2, requeue: false}}, ack.records)
}
