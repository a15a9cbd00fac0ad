package order

import (
	"fmt"

	"metrology/internal/pkg/errs"
)

// Status represents the lifecycle state of a measurement order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct shop-floor workflow.
//
// State transitions:
//
//	ACTIVE ──┬──> OK
//	         │
//	         └──> FAIL
//
// OK and FAIL are terminal states, collectively called "archived".
// There is no transition out of a terminal state and no transition
// back to ACTIVE.
//
// Status is string-backed so the same value appears unchanged in the
// snapshot file, the relational status column, and broadcast events.
type Status string

const (
	// Active is the initial status. The order is awaiting measurement;
	// it has no results, no serial number, and no controller yet.
	Active Status = "ACTIVE"

	// StatusOK indicates every measured feature passed. Terminal.
	StatusOK Status = "OK"

	// StatusFail indicates at least one measured feature failed. Terminal.
	StatusFail Status = "FAIL"
)

// getValidStatusStrings returns the set of valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]bool {
	return map[Status]bool{
		Active:     true,
		StatusOK:   true,
		StatusFail: true,
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: ACTIVE, OK, FAIL. The empty string and any other
// values are invalid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if !getValidStatusStrings()[s] {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the status as a plain string.
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	return string(s)
}

// IsArchived reports whether the status is terminal.
//
// Returns true for OK and FAIL, false for ACTIVE and invalid values.
// Archived orders carry results, a controller, a serial number, and a
// completion timestamp; active orders carry none of these.
func (s Status) IsArchived() bool {
	return s == StatusOK || s == StatusFail
}

// Complete transitions the status to the given terminal verdict.
//
// Valid transitions:
//   - ACTIVE -> OK   (every measured feature passed)
//   - ACTIVE -> FAIL (at least one feature failed)
//
// Invalid transitions:
//   - OK/FAIL -> anything (terminal states never transition)
//   - anything -> ACTIVE or an invalid verdict
//
// Returns:
//   - (verdict, nil) on valid transition
//   - ("", error) if the transition is not allowed from the current status
//
// This method is used by Order.Complete() to enforce state transitions.
func (s Status) Complete(verdict Status) (Status, error) {
	if s != Active {
		return "", errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s))
	}

	if !verdict.IsArchived() {
		return "", errs.NewValueIsInvalidErrorWithCause("verdict is invalid",
			fmt.Errorf("%q is not a terminal status", string(verdict)))
	}

	return verdict, nil
}
