package types

import (
	"errors"
	"fmt"
)

// Validation reasons reported in ValidationError.Reason.
const (
	ReasonEmpty          = "must not be empty"
	ReasonContainsDigits = "must not contain digits"
	ReasonInvalid        = "is invalid"
	ReasonNotPositive    = "must be greater than 0"
	ReasonNegative       = "must not be negative"
	ReasonNotFinite      = "must be a finite number"
	ReasonNotInSet       = "is not an accepted value"
	ReasonDateOrder      = "must not be after the end date"
	ReasonDateRequired   = "must be a concrete date"
)

// Sentinel errors. Typed errors below match these with errors.Is.
var (
	ErrValidation     = errors.New("validation failed")
	ErrInvalidDate    = errors.New("invalid date")
	ErrNotFound       = errors.New("entity not found")
	ErrEntityNotFound = errors.New("referenced entity not found")
)

// Kind-specific not-found errors.
var (
	ErrAgentNotFound    = errors.New("agent not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrContractNotFound = errors.New("contract not found")
)

var notFoundByKind = map[Kind]error{
	KindAgent:    ErrAgentNotFound,
	KindClient:   ErrClientNotFound,
	KindProperty: ErrPropertyNotFound,
	KindContract: ErrContractNotFound,
}

// ValidationError is returned when a field fails its predicate before a
// record can be built.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InvalidDateError is returned when a Date cannot be constructed. Field is
// year, month, day, or format.
type InvalidDateError struct {
	Field string
	Value int
	Text  string
}

func (e *InvalidDateError) Error() string {
	switch e.Field {
	case "format":
		return fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", e.Text)
	case "year":
		return fmt.Sprintf("invalid date: year %d is outside %d-%d", e.Value, MinYear, MaxYear)
	case "month":
		return fmt.Sprintf("invalid date: month %d is outside 1-12", e.Value)
	default:
		return fmt.Sprintf("invalid date: day %d is out of range for the month", e.Value)
	}
}

// Is matches ErrInvalidDate.
func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

// NotFoundError reports an id absent from one collection. It matches both
// ErrNotFound and the sentinel for its kind (ErrAgentNotFound, ...).
type NotFoundError struct {
	Kind Kind
	ID   int
}

// NewNotFoundError returns a NotFoundError for kind and id.
func NewNotFoundError(kind Kind, id int) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// Is matches ErrNotFound and the kind-specific sentinel.
func (e *NotFoundError) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	sentinel, ok := notFoundByKind[e.Kind]
	return ok && target == sentinel
}

// EntityNotFoundError is returned by the verified contract path when a
// referenced property, client, or agent does not exist.
type EntityNotFoundError struct {
	Kind Kind
	ID   int
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("referenced %s %d does not exist", e.Kind, e.ID)
}

// Is matches ErrEntityNotFound.
func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrEntityNotFound
}

// Unwrap exposes the kind-specific not-found error.
func (e *EntityNotFoundError) Unwrap() error {
	return NewNotFoundError(e.Kind, e.ID)
}

// IsUserError reports whether err is one a caller can fix by changing its
// input: a validation, date, or not-found failure.
func IsUserError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrEntityNotFound)
}
