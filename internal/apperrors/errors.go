package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation is not allowed in the resource's current state.
var ErrConflict = errors.New("state conflict")

// ErrIntegrity indicates a ledger integrity violation. These are never auto-corrected.
var ErrIntegrity = errors.New("integrity violation")

// ErrDependency indicates that an infrastructure dependency is unreachable.
var ErrDependency = errors.New("dependency unavailable")

// ErrInternal is returned for unexpected failures that should not leak details.
var ErrInternal = errors.New("internal error")

// kindError is a named error that also matches its kind sentinel via errors.Is.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newKind(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}

// Posting and ledger errors.
var (
	ErrAlreadyPosted           = newKind(ErrConflict, "document already posted")
	ErrNothingToReverse        = newKind(ErrConflict, "no active posted entry to reverse")
	ErrUnbalancedPosting       = newKind(ErrIntegrity, "posting does not balance")
	ErrDocumentNotFound        = newKind(ErrNotFound, "source document not found")
	ErrUnsupportedDocumentType = newKind(ErrValidation, "unsupported document type")
	ErrInvalidAmount           = newKind(ErrValidation, "invalid amount")
	ErrInvalidAccount          = newKind(ErrValidation, "invalid account")
	ErrInvalidRule             = newKind(ErrValidation, "invalid posting rule")
	ErrDuplicateRule           = newKind(ErrDuplicate, "posting rule already exists")
	ErrNoExchangeRate          = newKind(ErrNotFound, "no exchange rate available")
	ErrSubsystemUnavailable    = newKind(ErrDependency, "subsystem unavailable")
	ErrSerializationFailure    = newKind(ErrConflict, "concurrent update conflict")
)

// NoExchangeRateError carries the pair and date that could not be resolved.
type NoExchangeRateError struct {
	From string
	To   string
	AsOf time.Time
}

func (e *NoExchangeRateError) Error() string {
	return fmt.Sprintf("no exchange rate available for %s to %s as of %s", e.From, e.To, e.AsOf.Format("2006-01-02"))
}

func (e *NoExchangeRateError) Unwrap() error { return ErrNoExchangeRate }

// AppError wraps an underlying error with a status code and a safe message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError. A nil err is allowed.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error matching ErrNotFound.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewValidationError returns an error matching ErrValidation.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// NewDependencyError wraps an infrastructure failure so it matches ErrDependency.
func NewDependencyError(message string, err error) error {
	return &AppError{Code: 503, Message: message, Err: errors.Join(ErrDependency, err)}
}
