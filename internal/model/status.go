package model

import "fmt"

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// validNext is the full transition table. delivered and cancelled are
// terminal: no outgoing edges.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:        {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed:      {StatusPreparing: true, StatusCancelled: true},
	StatusPreparing:      {StatusReady: true, StatusCancelled: true},
	StatusReady:          {StatusOutForDelivery: true, StatusCancelled: true},
	StatusOutForDelivery: {StatusDelivered: true, StatusCancelled: true},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// TransitionResult is the outcome of a pre-flight transition check.
type TransitionResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ValidateTransition checks a status change against the transition table.
// Pure lookup, no side effects; handlers use it for pre-validation before
// any stock work starts.
func ValidateTransition(current, target OrderStatus) TransitionResult {
	if current == target {
		return TransitionResult{Valid: false, Reason: fmt.Sprintf("order already has status '%s'", current)}
	}
	if !validNext[current][target] {
		return TransitionResult{Valid: false, Reason: fmt.Sprintf("cannot change status from '%s' to '%s'", current, target)}
	}
	return TransitionResult{Valid: true}
}

// IsTerminal reports whether a status has no outgoing transitions.
func (s OrderStatus) IsTerminal() bool {
	return len(validNext[s]) == 0
}

// KnownStatus reports whether s appears in the transition table at all.
func KnownStatus(s OrderStatus) bool {
	_, ok := validNext[s]
	return ok
}
