package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ErrInvalidTransition is wrapped by every rejected lifecycle event.
var ErrInvalidTransition = errors.New("invalid order status transition")

// Status is the lifecycle state of an order.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Pending
	Accepted
	Declined
	Ready
	OutForDelivery
	Delivered
)

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Accepted, Declined, Ready, OutForDelivery, Delivered}
}

// String returns the wire name used by the HTTP API and logs.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Accepted:
		return "accepted"
	case Declined:
		return "declined"
	case Ready:
		return "ready"
	case OutForDelivery:
		return "out_for_delivery"
	case Delivered:
		return "delivered"
	case Unknown:
		return "unknown"
	}
	return "unknown"
}

// ParseStatus maps a wire name back to a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, status := range Statuses() {
		if status.String() == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values read from storage or input.
func (s Status) Validate() error {
	if s < Pending || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Accept moves a Pending order to Accepted.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return Unknown, transitionError("accept", s)
	}
	return Accepted, nil
}

// Decline moves a Pending order to Declined.
func (s Status) Decline() (Status, error) {
	if s != Pending {
		return Unknown, transitionError("decline", s)
	}
	return Declined, nil
}

// MarkReady moves an Accepted order to Ready.
func (s Status) MarkReady() (Status, error) {
	if s != Accepted {
		return Unknown, transitionError("mark ready", s)
	}
	return Ready, nil
}

// ShipOut moves a Ready order to OutForDelivery once the courier holds it.
func (s Status) ShipOut() (Status, error) {
	if s != Ready {
		return Unknown, transitionError("ship out", s)
	}
	return OutForDelivery, nil
}

// MarkDelivered closes a Ready or OutForDelivery order.
func (s Status) MarkDelivered() (Status, error) {
	if s != Ready && s != OutForDelivery {
		return Unknown, transitionError("mark delivered", s)
	}
	return Delivered, nil
}

func transitionError(event string, from Status) error {
	return fmt.Errorf("%w: cannot %s an order in %s status", ErrInvalidTransition, event, from)
}
