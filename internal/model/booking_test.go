package model

import (
	"errors"
	"testing"
	"time"

	"github.com/rakafardani/barbershop-booking/internal/catalog"
)

func testBooking(t *testing.T) Booking {
	t.Helper()
	svc, err := catalog.New("Haircut", []string{"Hair Wash"})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return Booking{
		ID:          "BK0001",
		CustomerID:  "C0001",
		BarberID:    "B001",
		Service:     svc,
		BookingDate: "2026-05-01",
		BookingTime: "15:00",
		Status:      StatusScheduled,
		CreatedAt:   time.Now().UTC(),
	}
}

func startOf(t *testing.T, b Booking) time.Time {
	t.Helper()
	at, err := b.StartsAt()
	if err != nil {
		t.Fatalf("StartsAt: %v", err)
	}
	return at
}

func TestStartsAtAcceptsBothTimeForms(t *testing.T) {
	b := testBooking(t)
	short := startOf(t, b)
	b.BookingTime = "15:00:00"
	long := startOf(t, b)
	if !short.Equal(long) {
		t.Errorf("15:00 parsed as %v, 15:00:00 as %v", short, long)
	}

	b.BookingTime = "quarter past three"
	if _, err := b.StartsAt(); !errors.Is(err, ErrBadAppointment) {
		t.Errorf("err = %v, want ErrBadAppointment", err)
	}
}

func TestCancelWindow(t *testing.T) {
	b := testBooking(t)
	at := startOf(t, b)

	cases := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"well before", at.Add(-3 * time.Hour), nil},
		{"exactly at window", at.Add(-CancelWindow), nil},
		{"inside window", at.Add(-time.Hour), ErrTooLate},
		{"after start", at.Add(time.Minute), ErrTooLate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := testBooking(t)
			ev, err := b.Cancel(tc.now)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil {
				if b.Status != StatusScheduled {
					t.Errorf("declined cancel changed status to %q", b.Status)
				}
				return
			}
			if b.Status != StatusCanceled {
				t.Errorf("status = %q, want canceled", b.Status)
			}
			if ev.Type != EventCancellation || ev.BookingID != b.ID {
				t.Errorf("event = %+v", ev)
			}
			if ev.Payload["message"] != "Booking BK0001 has been canceled" {
				t.Errorf("message = %q", ev.Payload["message"])
			}
		})
	}
}

func TestCancelIsNotIdempotent(t *testing.T) {
	b := testBooking(t)
	now := startOf(t, b).Add(-3 * time.Hour)
	if _, err := b.Cancel(now); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if _, err := b.Cancel(now); !errors.Is(err, ErrTerminalState) {
		t.Fatalf("second cancel err = %v, want ErrTerminalState", err)
	}
}

func TestStartTransitions(t *testing.T) {
	b := testBooking(t)
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if b.Status != StatusInProgress {
		t.Fatalf("status = %q, want in-progress", b.Status)
	}
	if err := b.Start(); !errors.Is(err, ErrNotStartable) {
		t.Fatalf("second start err = %v, want ErrNotStartable", err)
	}
}

func TestCompleteEmitsEventAndRefusesTerminal(t *testing.T) {
	b := testBooking(t)
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	ev, err := b.Complete()
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if b.Status != StatusCompleted {
		t.Fatalf("status = %q, want completed", b.Status)
	}
	if ev.Type != EventCompletion {
		t.Errorf("event type = %q", ev.Type)
	}
	if ev.Payload["user_id"] != "C0001" {
		t.Errorf("event target = %q, want C0001", ev.Payload["user_id"])
	}
	if ev.Payload["service"] != "Haircut + Hair Wash" {
		t.Errorf("event service = %q", ev.Payload["service"])
	}
	if _, err := b.Complete(); !errors.Is(err, ErrTerminalState) {
		t.Fatalf("second complete err = %v, want ErrTerminalState", err)
	}
}

func TestCancelInProgressBooking(t *testing.T) {
	b := testBooking(t)
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := b.Cancel(startOf(t, b).Add(-3 * time.Hour)); err != nil {
		t.Fatalf("cancel in-progress: %v", err)
	}
	if b.Status != StatusCanceled {
		t.Fatalf("status = %q, want canceled", b.Status)
	}
}

func TestConfirmedEvent(t *testing.T) {
	b := testBooking(t)
	ev := b.Confirmed()
	if ev.Type != EventConfirmation {
		t.Errorf("type = %q", ev.Type)
	}
	want := "Booking BK0001 confirmed for 2026-05-01 at 15:00"
	if ev.Payload["message"] != want {
		t.Errorf("message = %q, want %q", ev.Payload["message"], want)
	}
}
