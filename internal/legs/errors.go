package legs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies which validation rule failed
type ErrorCode int

const (
	// ErrCodeRequired indicates an empty required field
	ErrCodeRequired ErrorCode = iota
	// ErrCodeSameLocation indicates arrival equals departure
	ErrCodeSameLocation
	// ErrCodeInvalidDate indicates a departure date that cannot be parsed
	ErrCodeInvalidDate
	// ErrCodePastDate indicates a departure date before today
	ErrCodePastDate
	// ErrCodeNotNumeric indicates a passenger count that is not a whole number
	ErrCodeNotNumeric
	// ErrCodeTooFewPassengers indicates a passenger count below 1
	ErrCodeTooFewPassengers
	// ErrCodeNotAscending indicates departure dates out of order across legs
	ErrCodeNotAscending
)

// String returns a short identifier for the error code
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeRequired:
		return "required"
	case ErrCodeSameLocation:
		return "must_differ"
	case ErrCodeInvalidDate:
		return "invalid_date"
	case ErrCodePastDate:
		return "past_date"
	case ErrCodeNotNumeric:
		return "not_numeric"
	case ErrCodeTooFewPassengers:
		return "too_few_passengers"
	case ErrCodeNotAscending:
		return "not_ascending"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// ListIndex is the Index of a ValidationError that applies to the whole list
const ListIndex = -1

// ValidationError is a single failed rule. Field-level errors carry the leg
// index and field they belong to; list-level errors use ListIndex.
type ValidationError struct {
	Code    ErrorCode
	Index   int
	Field   Field
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Index == ListIndex {
		return e.Message
	}
	return fmt.Sprintf("leg %d %s: %s", e.Index+1, e.Field, e.Message)
}

// IsListLevel reports whether the error is not tied to a single field
func (e *ValidationError) IsListLevel() bool {
	return e.Index == ListIndex
}

func newFieldError(code ErrorCode, field Field, message string) *ValidationError {
	return &ValidationError{Code: code, Index: 0, Field: field, Message: message}
}

// atIndex returns a copy of e bound to leg index i
func (e *ValidationError) atIndex(i int) *ValidationError {
	c := *e
	c.Index = i
	return &c
}

// IsValidationError checks if an error is (or wraps) a validation error
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// CodeOf returns the error code of a validation error.
// ok is false when err is not a validation error.
func CodeOf(err error) (code ErrorCode, ok bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Code, true
	}
	return 0, false
}

// MessageOf returns the user-facing message of err, without leg/field prefix
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return err.Error()
}

// Controller rejections. A rejected operation leaves the list unchanged.
var (
	ErrListFull        = errors.New("leg list is full")
	ErrListMinimum     = errors.New("leg list is at its minimum length")
	ErrLegPermanent    = errors.New("the first two legs cannot be removed")
	ErrRemoveDisabled  = errors.New("removing legs is disabled")
	ErrIndexOutOfRange = errors.New("leg index out of range")
	ErrUnknownField    = errors.New("unknown field")
	ErrInputRejected   = errors.New("input rejected")
	ErrSubmitRejected  = errors.New("submission rejected")
)

// SubmitError is returned when a submission is blocked by validation errors
type SubmitError struct {
	Errors []error
}

// Error implements the error interface
func (e *SubmitError) Error() string {
	return fmt.Sprintf("%s: %d validation error(s)", ErrSubmitRejected, len(e.Errors))
}

// Is makes errors.Is(err, ErrSubmitRejected) hold for submit errors
func (e *SubmitError) Is(target error) bool {
	return target == ErrSubmitRejected
}

// FormatValidationErrors formats a slice of validation errors into a user-friendly message.
func FormatValidationErrors(errs []error) string {
	if len(errs) == 0 {
		return "No validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Itinerary validation failed with %d error(s):\n", len(errs)))

	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}

	return sb.String()
}
