package notify

import (
	"context"
	"log"
	"sync"

	"github.com/rakafardani/barbershop-booking/internal/model"
)

// LogObserver renders every notification to the process log.  It is the
// service's stand-in for showing the message in an interactive session.
type LogObserver struct{}

func (LogObserver) Update(_ context.Context, ev model.Event) {
	log.Printf("notification: [%s] user=%s %s", ev.Type, ev.Payload["user_id"], ev.Payload["message"])
}

// inboxCap bounds how many notifications are kept per user; older entries
// fall off.  Missed notifications are not persisted anywhere.
const inboxCap = 50

// Inbox keeps the most recent notifications per user in memory and serves
// them to the notifications endpoint.
type Inbox struct {
	mu    sync.Mutex
	byUID map[string][]model.Notification
}

// NewInbox builds an empty inbox observer.
func NewInbox() *Inbox {
	return &Inbox{byUID: map[string][]model.Notification{}}
}

// Update records the event as an inbox notification for its target user.
func (in *Inbox) Update(_ context.Context, ev model.Event) {
	n := model.NewNotification(ev, "inbox")
	if n.UserID == "" {
		return
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	list := append(in.byUID[n.UserID], n)
	if len(list) > inboxCap {
		list = list[len(list)-inboxCap:]
	}
	in.byUID[n.UserID] = list
}

// List returns a user's notifications, newest first.
func (in *Inbox) List(userID string) []model.Notification {
	in.mu.Lock()
	defer in.mu.Unlock()
	src := in.byUID[userID]
	out := make([]model.Notification, len(src))
	for i, n := range src {
		out[len(src)-1-i] = n
	}
	return out
}
