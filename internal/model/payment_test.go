package model

import (
	"strings"
	"testing"
	"time"
)

func TestValidMethod(t *testing.T) {
	for _, m := range []string{MethodCash, MethodCreditCard, MethodDebitCard, MethodEWallet} {
		if !ValidMethod(m) {
			t.Errorf("ValidMethod(%q) = false", m)
		}
	}
	if ValidMethod("barter") {
		t.Error("ValidMethod(barter) = true")
	}
}

func TestProcessStampsTransaction(t *testing.T) {
	p := Payment{ID: "PAY0001", BookingID: "BK0001", Amount: 65000, Method: MethodCash, Status: PaymentPending}
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	p.Process(now)

	if p.Status != PaymentPaid {
		t.Errorf("status = %q, want paid", p.Status)
	}
	if p.PaidAt == nil || !p.PaidAt.Equal(now) {
		t.Errorf("PaidAt = %v, want %v", p.PaidAt, now)
	}
	if !strings.HasPrefix(p.TransactionID, "TXN-") || len(p.TransactionID) != len("TXN-")+8 {
		t.Errorf("TransactionID = %q", p.TransactionID)
	}
	if p.TransactionID != strings.ToUpper(p.TransactionID) {
		t.Errorf("TransactionID not upper-cased: %q", p.TransactionID)
	}
}

func TestFeedbackValidate(t *testing.T) {
	for rating, wantErr := range map[int]bool{0: true, 1: false, 5: false, 6: true, -2: true} {
		f := Feedback{Rating: rating}
		if err := f.Validate(); (err != nil) != wantErr {
			t.Errorf("Validate(rating=%d) err = %v", rating, err)
		}
	}
}
