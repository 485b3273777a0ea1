package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Payment methods accepted at checkout.
const (
	MethodCash       = "cash"
	MethodCreditCard = "credit_card"
	MethodDebitCard  = "debit_card"
	MethodEWallet    = "e-wallet"
)

// Payment statuses.  Only pending -> paid is ever walked by the current
// logic; failed and refunded exist in the enum without a transition into
// them.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment records the settlement of one booking.
//
// Fields:
//  ID            - generated identifier (PAY0001).
//  BookingID     - the booking being paid for.
//  Amount        - rupiah, snapshot of the booking's service price.
//  Method        - one of the Method* constants.
//  Status        - one of the Payment* constants.
//  TransactionID - set when the payment is processed.
//  PaidAt        - set when the payment is processed.
type Payment struct {
	ID            string     `json:"payment_id"`
	BookingID     string     `json:"booking_id"`
	Amount        int64      `json:"amount"`
	Method        string     `json:"payment_method"`
	Status        string     `json:"payment_status"`
	TransactionID string     `json:"transaction_id,omitempty"`
	PaidAt        *time.Time `json:"payment_date,omitempty"`
}

// ValidMethod reports whether m is an accepted payment method.
func ValidMethod(m string) bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodEWallet:
		return true
	}
	return false
}

// Process marks the payment as paid, stamping a generated transaction id
// and the payment time.  There is no retry path: a payment either settles
// here once or the record stays pending.
func (p *Payment) Process(now time.Time) {
	p.Status = PaymentPaid
	p.TransactionID = fmt.Sprintf("TXN-%s", strings.ToUpper(uuid.NewString()[:8]))
	t := now.UTC()
	p.PaidAt = &t
}
