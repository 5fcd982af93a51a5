package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrTenantUnknown indicates the tenant store could not be resolved.
	ErrTenantUnknown = errors.New("tenant: unknown tenant")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("tenant: invalid credentials")
	// ErrUnbalanced indicates debit != credit within tolerance.
	ErrUnbalanced = errors.New("journal: entry lines must balance")
	// ErrTooFewLines indicates a side of the entry is empty.
	ErrTooFewLines = errors.New("journal: entry requires a debit and a credit line")
	// ErrTooManyLines indicates more than two lines on one side.
	ErrTooManyLines = errors.New("journal: at most two lines per side")
	// ErrNegativeStock indicates a sale or movement would oversell.
	ErrNegativeStock = errors.New("inventory: insufficient stock")
	// ErrCapitalOpening indicates a direct opening of the capital account.
	ErrCapitalOpening = errors.New("journal: capital account cannot be opened directly")
	// ErrUnknownCategory indicates an unrecognised livestock category.
	ErrUnknownCategory = errors.New("inventory: unknown livestock category")
)

// ValidationKind classifies a rejected input.
type ValidationKind string

const (
	KindMissingField ValidationKind = "missing_field"
	KindBadAmount    ValidationKind = "bad_amount"
	KindBadDate      ValidationKind = "bad_date"
	KindBadReference ValidationKind = "bad_reference"
	KindStock        ValidationKind = "stock"
	KindUnbalanced   ValidationKind = "unbalanced"
)

// ValidationError rejects an input before anything is persisted. It keeps
// its kind across the service boundary so handlers can report it precisely.
type ValidationError struct {
	Kind ValidationKind
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation (%s): %s", e.Kind, e.Msg)
}

// Invalid builds a ValidationError.
func Invalid(kind ValidationKind, format string, args ...any) error {
	return &ValidationError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// AsValidation unwraps a ValidationError if err carries one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
