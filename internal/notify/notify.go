// Package notify implements the booking event fan-out.  A Notifier holds
// an ordered list of observers; dispatching an event invokes each observer
// synchronously, in attachment order, at most once per call.  Observers
// are isolated from each other: one observer panicking is logged and the
// remaining observers still run.
package notify

import (
	"context"
	"log"

	"github.com/rakafardani/barbershop-booking/internal/model"
)

// Observer receives booking lifecycle events.
type Observer interface {
	Update(ctx context.Context, ev model.Event)
}

// Notifier fans events out to its attached observers.  Attach order is
// delivery order.  The zero value is usable.
//
// The notifier is configured once at startup and then only read, so the
// observer list needs no locking; attaching observers at runtime is not a
// supported pattern.
type Notifier struct {
	observers []Observer
}

// Attach appends an observer to the delivery list.
func (n *Notifier) Attach(o Observer) {
	n.observers = append(n.observers, o)
}

// Detach removes an observer by identity.  Unknown observers are ignored.
func (n *Notifier) Detach(o Observer) {
	for i, cur := range n.observers {
		if cur == o {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return
		}
	}
}

// Notify delivers the event to every attached observer.  Delivery is
// synchronous and never fails from the caller's point of view: a
// misbehaving observer is contained and logged.
func (n *Notifier) Notify(ctx context.Context, ev model.Event) {
	for _, o := range n.observers {
		deliver(ctx, o, ev)
	}
}

func deliver(ctx context.Context, o Observer, ev model.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notify: observer panic on %s event for %s: %v", ev.Type, ev.BookingID, r)
		}
	}()
	o.Update(ctx, ev)
}
