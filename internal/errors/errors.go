package errors

import "github.com/shopspring/decimal"

// ErrValidation reports malformed or out-of-range input on a single field.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// ErrNotFound reports a referenced entity that does not exist.
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return e.Entity + " not found: " + e.ID
}

// ErrDuplicate reports a violated uniqueness invariant.
type ErrDuplicate struct {
	Entity     string
	Constraint string
}

func (e *ErrDuplicate) Error() string {
	return e.Entity + " already exists: " + e.Constraint
}

// ErrInsufficientFunds reports a withdrawal larger than the available balance.
type ErrInsufficientFunds struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *ErrInsufficientFunds) Error() string {
	return "insufficient funds: requested " + e.Requested.String() + ", available " + e.Available.String()
}

// ErrInvalidState reports an operation attempted against an entity whose
// current state does not permit it.
type ErrInvalidState struct {
	Entity string
	State  string
	Action string
}

func (e *ErrInvalidState) Error() string {
	return "cannot " + e.Action + " " + e.Entity + " in state " + e.State
}
