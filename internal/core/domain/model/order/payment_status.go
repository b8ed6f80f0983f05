package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// PaymentStatus tracks the money side of an order, independently of Status.
//
//	Pending ──> Paid ──> PartiallyRefunded ──> Refunded
//	   │ ▲        └────────────────────────────────┘
//	   ▼ │
//	  Failed (retry back to Pending)
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota
	PaymentStatusPending
	PaymentStatusPaid
	PaymentStatusFailed
	PaymentStatusRefunded
	PaymentStatusPartiallyRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown:           "UNKNOWN",
		PaymentStatusPending:           "PENDING",
		PaymentStatusPaid:              "PAID",
		PaymentStatusFailed:            "FAILED",
		PaymentStatusRefunded:          "REFUNDED",
		PaymentStatusPartiallyRefunded: "PARTIALLY_REFUNDED",
	}
}

// ParsePaymentStatus converts a stored or transported name into a PaymentStatus.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	for s, str := range getPaymentStatusStrings() {
		if s != PaymentStatusUnknown && str == name {
			return s, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus", fmt.Errorf("%q is not a valid payment status", raw))
}

func (s PaymentStatus) Validate() error {
	if s <= PaymentStatusUnknown || s > PaymentStatusPartiallyRefunded {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", int(s)))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// AllowedTransitions returns the payment statuses reachable from s in one step.
func (s PaymentStatus) AllowedTransitions() []PaymentStatus {
	switch s {
	case PaymentStatusPending:
		return []PaymentStatus{PaymentStatusPaid, PaymentStatusFailed}
	case PaymentStatusPaid:
		return []PaymentStatus{PaymentStatusRefunded, PaymentStatusPartiallyRefunded}
	case PaymentStatusFailed:
		return []PaymentStatus{PaymentStatusPending}
	case PaymentStatusPartiallyRefunded:
		return []PaymentStatus{PaymentStatusRefunded}
	case PaymentStatusRefunded, PaymentStatusUnknown:
		return nil
	}
	return nil
}

func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	for _, next := range s.AllowedTransitions() {
		if next == target {
			return true
		}
	}
	return false
}

func (s PaymentStatus) IsTerminal() bool {
	return s.Validate() == nil && len(s.AllowedTransitions()) == 0
}
