package order

import (
	"fmt"

	"workshop/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct manufacturing workflow.
//
// State transitions:
//
//	Draft ──> Confirmed ──> InProduction ──> Ready ──> Delivered
//	  │           │              │
//	  └───────────┴──────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Requesting the current status again
// is a no-op; any other transition fails.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Draft is the initial status. Draft orders are fully editable.
	Draft

	// Confirmed indicates the client has confirmed the order.
	// Confirmed orders are still editable until production starts.
	Confirmed

	// InProduction indicates manufacturing has started.
	// Structural changes are no longer allowed.
	InProduction

	// Ready indicates manufacturing is finished and the order awaits delivery.
	Ready

	// Delivered indicates the order reached the client. Terminal state.
	Delivered

	// Cancelled indicates the order was abandoned. Terminal state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Draft:         "DRAFT",
		Confirmed:     "CONFIRMED",
		InProduction:  "IN_PRODUCTION",
		Ready:         "READY",
		Delivered:     "DELIVERED",
		Cancelled:     "CANCELLED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:        "DRAFT",
		Confirmed:    "CONFIRMED",
		InProduction: "IN_PRODUCTION",
		Ready:        "READY",
		Delivered:    "DELIVERED",
		Cancelled:    "CANCELLED",
	}
}

// statusTransitions is the transition table of the order state machine:
// for each state, the set of states it may move to. Keeping the graph as
// data makes the machine inspectable and testable without exercising every
// conditional branch.
func statusTransitions() map[Status][]Status {
	return map[Status][]Status{
		Draft:        {Confirmed, Cancelled},
		Confirmed:    {InProduction, Cancelled},
		InProduction: {Ready, Cancelled},
		Ready:        {Delivered},
		Delivered:    {},
		Cancelled:    {},
	}
}

// StatusFromString parses a persisted string representation back into a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Draft, Confirmed, InProduction, Ready, Delivered, Cancelled.
// UnknownStatus (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
// Returns "UNKNOWN" for invalid status values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// CanTransitionTo reports whether the transition table allows moving from
// this status to the next one. A self-transition is always allowed (no-op).
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range statusTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition moves the status to the next state.
//
// A self-transition returns the same status without error. Any transition
// not present in the table fails.
func (s Status) Transition(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return UnknownStatus, err
	}

	if !s.CanTransitionTo(next) {
		return UnknownStatus, errs.NewOperationNotAllowedErrorWithCause("changeStatus",
			fmt.Errorf("transition from %s to %s is not allowed", s, next))
	}

	return next, nil
}

// CanBeModified reports whether structural mutation of the order is allowed
// in this status. Only Draft and Confirmed orders are editable.
func (s Status) CanBeModified() bool {
	return s == Draft || s == Confirmed
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(statusTransitions()[s]) == 0 && s != UnknownStatus
}
