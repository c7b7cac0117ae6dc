// Package notify fans booking events out to external sinks. Delivery happens
// after the primary write has committed and off the request goroutine; a
// failing sink is logged and never retried.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/labstack/gommon/log"
)

type Type string

const (
	BookingCreated       Type = "booking.created"
	BookingStatusChanged Type = "booking.status_changed"
)

type Event struct {
	Type           Type                 `json:"type"`
	Booking        models.Booking       `json:"booking"`
	PreviousStatus models.BookingStatus `json:"previousStatus,omitempty"`
	OccurredAt     time.Time            `json:"occurredAt"`
}

type Sink interface {
	Name() string
	Send(ctx context.Context, ev Event) error
}

// ExternalNotificationError is what a failed delivery is logged as.
type ExternalNotificationError struct {
	Sink string
	Type Type
	Err  error
}

func (e *ExternalNotificationError) Error() string {
	return fmt.Sprintf("notify %s via %s: %v", e.Type, e.Sink, e.Err)
}

func (e *ExternalNotificationError) Unwrap() error { return e.Err }

type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(timeout time.Duration, sinks ...Sink) *Dispatcher {
	return &Dispatcher{sinks: sinks, timeout: timeout}
}

// Dispatch returns immediately; every sink is tried once in the background.
func (d *Dispatcher) Dispatch(ev Event) {
	if len(d.sinks) == 0 {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		for _, s := range d.sinks {
			if err := s.Send(ctx, ev); err != nil {
				log.Errorf("[Notify] %v", &ExternalNotificationError{Sink: s.Name(), Type: ev.Type, Err: err})
				continue
			}
			log.Debugf("[Notify] %s for booking %d delivered via %s", ev.Type, ev.Booking.ID, s.Name())
		}
	}()
}

// Wait blocks until in-flight deliveries finish.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
