package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Status represents the fulfilment state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Shipped ──> Delivered
//	   │            │              │            │            │
//	   └────────────┴──────────────┴──> Cancelled└──> Returned <┘
//
// Cancelled and Returned are terminal. The table is queried with CanTransitionTo;
// Order's lifecycle methods apply their own guards and are the authority on what
// an order may actually do.
type Status int

const (
	// StatusUnknown is the zero value and never valid.
	StatusUnknown Status = iota
	StatusPending
	StatusConfirmed
	StatusProcessing
	StatusShipped
	StatusDelivered
	StatusCancelled
	StatusReturned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "UNKNOWN",
		StatusPending:    "PENDING",
		StatusConfirmed:  "CONFIRMED",
		StatusProcessing: "PROCESSING",
		StatusShipped:    "SHIPPED",
		StatusDelivered:  "DELIVERED",
		StatusCancelled:  "CANCELLED",
		StatusReturned:   "RETURNED",
	}
}

// ParseStatus converts a stored or transported name into a Status.
// Unknown names fail with a ValueIsInvalidError; they are never coerced.
func ParseStatus(raw string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	for s, str := range getStatusStrings() {
		if s != StatusUnknown && str == name {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", raw))
}

// Validate checks that s is one of the declared statuses.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusReturned {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", int(s)))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// AllowedTransitions returns the statuses reachable from s in one step.
func (s Status) AllowedTransitions() []Status {
	switch s {
	case StatusPending:
		return []Status{StatusConfirmed, StatusCancelled}
	case StatusConfirmed:
		return []Status{StatusProcessing, StatusCancelled}
	case StatusProcessing:
		return []Status{StatusShipped, StatusCancelled}
	case StatusShipped:
		return []Status{StatusDelivered, StatusReturned}
	case StatusDelivered:
		return []Status{StatusReturned}
	case StatusCancelled, StatusReturned, StatusUnknown:
		return nil
	}
	return nil
}

// CanTransitionTo is a pure query over the transition table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range s.AllowedTransitions() {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && len(s.AllowedTransitions()) == 0
}
