package notify

import (
	"context"
	"testing"

	"github.com/rakafardani/barbershop-booking/internal/model"
)

type recordingObserver struct {
	name string
	log  *[]string
}

func (r *recordingObserver) Update(_ context.Context, ev model.Event) {
	*r.log = append(*r.log, r.name+":"+ev.BookingID)
}

type panickyObserver struct{}

func (panickyObserver) Update(context.Context, model.Event) { panic("boom") }

func testEvent(bookingID string) model.Event {
	return model.Event{
		Type:      model.EventConfirmation,
		BookingID: bookingID,
		Payload:   map[string]string{"user_id": "C0001", "message": "hi"},
	}
}

func TestNotifyDeliversInAttachmentOrder(t *testing.T) {
	var log []string
	n := &Notifier{}
	n.Attach(&recordingObserver{name: "a", log: &log})
	n.Attach(&recordingObserver{name: "b", log: &log})

	n.Notify(context.Background(), testEvent("BK0001"))

	want := []string{"a:BK0001", "b:BK0001"}
	if len(log) != len(want) {
		t.Fatalf("log = %v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
}

func TestDetachStopsDelivery(t *testing.T) {
	var log []string
	n := &Notifier{}
	a := &recordingObserver{name: "a", log: &log}
	b := &recordingObserver{name: "b", log: &log}
	n.Attach(a)
	n.Attach(b)
	n.Detach(a)
	n.Detach(a) // repeated detach is a no-op

	n.Notify(context.Background(), testEvent("BK0002"))
	if len(log) != 1 || log[0] != "b:BK0002" {
		t.Fatalf("log = %v", log)
	}
}

func TestPanickingObserverIsIsolated(t *testing.T) {
	var log []string
	n := &Notifier{}
	n.Attach(panickyObserver{})
	n.Attach(&recordingObserver{name: "after", log: &log})

	n.Notify(context.Background(), testEvent("BK0003"))
	if len(log) != 1 || log[0] != "after:BK0003" {
		t.Fatalf("observer after the panic did not run: %v", log)
	}
}

func TestInboxKeepsNewestFirstAndBounded(t *testing.T) {
	in := NewInbox()
	ctx := context.Background()
	for i := 0; i < inboxCap+10; i++ {
		ev := testEvent("BK0001")
		ev.Payload["message"] = string(rune('A' + i%26))
		in.Update(ctx, ev)
	}

	got := in.List("C0001")
	if len(got) != inboxCap {
		t.Fatalf("inbox holds %d, want %d", len(got), inboxCap)
	}
	// The last event written is the first one listed.
	if got[0].Message != string(rune('A'+(inboxCap+9)%26)) {
		t.Errorf("newest message = %q", got[0].Message)
	}
	if got[0].Channel != "inbox" || got[0].Type != model.EventConfirmation {
		t.Errorf("notification = %+v", got[0])
	}
}

func TestInboxIgnoresTargetlessEvents(t *testing.T) {
	in := NewInbox()
	in.Update(context.Background(), model.Event{Type: model.EventCompletion, BookingID: "BK0009", Payload: map[string]string{}})
	if got := in.List(""); len(got) != 0 {
		t.Fatalf("targetless event was stored: %v", got)
	}
}
