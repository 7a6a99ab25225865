package apperr

import (
	"errors"
	"fmt"
)

// Kind is a stable, machine-readable failure category. API responses carry
// the kind verbatim; messages are for humans and never include actor names.
type Kind string

const (
	KindNotFound           Kind = "NOT_FOUND"
	KindForbidden          Kind = "FORBIDDEN"
	KindPolicyViolation    Kind = "POLICY_VIOLATION"
	KindCapacityExceeded   Kind = "CAPACITY_EXCEEDED"
	KindPaymentIncomplete  Kind = "PAYMENT_INCOMPLETE"
	KindPaymentMismatch    Kind = "PAYMENT_MISMATCH"
	KindGatewayUnavailable Kind = "GATEWAY_UNAVAILABLE"
	KindGatewayFailure     Kind = "GATEWAY_FAILURE"
	KindAlreadyIssued      Kind = "ALREADY_ISSUED"
	KindNoRefundDue        Kind = "NO_REFUND_DUE"
	KindMissingCheckIn     Kind = "MISSING_CHECK_IN"
	KindValidation         Kind = "VALIDATION"
	KindInternal           Kind = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Message string
	Meta    map[string]interface{}
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// WithMeta attaches structured detail (e.g. the rejected capacity date).
func (e *Error) WithMeta(key string, value interface{}) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]interface{})
	}
	e.Meta[key] = value
	return e
}

// KindOf extracts the Kind from any error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
