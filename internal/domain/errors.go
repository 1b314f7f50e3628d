package domain

import (
	"errors"
	"fmt"
	"time"
)

// Machine-readable error codes surfaced to API callers.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeWindowConflict   = "SETTLEMENT_WINDOW_CONFLICT"
	CodeAlreadyCompleted = "SETTLEMENT_ALREADY_COMPLETED"
	CodeNoPendingWork    = "NO_PENDING_WORK"
	CodeDependency       = "DEPENDENCY_ERROR"
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", CodeValidation, e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s %s not found", CodeNotFound, e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError rejects an operation that would violate the at-most-one
// in-flight settlement invariant, or a completion that already happened.
// For window conflicts it names the conflicting settlement and its period;
// for already-completed rejections it carries the original payment reference
// and timestamp so an operator can confirm no double payment occurred.
type ConflictError struct {
	Code             string
	SettlementID     string
	PeriodStart      time.Time
	PeriodEnd        time.Time
	PaymentReference string
	ProcessedAt      *time.Time
}

func (e *ConflictError) Error() string {
	switch e.Code {
	case CodeAlreadyCompleted:
		return fmt.Sprintf("%s: settlement %s already completed (payment_reference=%s)",
			e.Code, e.SettlementID, e.PaymentReference)
	default:
		return fmt.Sprintf("%s: settlement %s already covers %s to %s",
			e.Code, e.SettlementID,
			e.PeriodStart.Format(time.RFC3339), e.PeriodEnd.Format(time.RFC3339))
	}
}

func NewWindowConflictError(settlementID string, start, end time.Time) *ConflictError {
	return &ConflictError{
		Code:         CodeWindowConflict,
		SettlementID: settlementID,
		PeriodStart:  start,
		PeriodEnd:    end,
	}
}

func NewAlreadyCompletedError(settlementID, paymentReference string, processedAt *time.Time) *ConflictError {
	return &ConflictError{
		Code:             CodeAlreadyCompleted,
		SettlementID:     settlementID,
		PaymentReference: paymentReference,
		ProcessedAt:      processedAt,
	}
}

// NoPendingWorkError rejects an initiate call when the re-queried unsettled
// set for the vendor and window is empty.
type NoPendingWorkError struct {
	VendorID string
	Date     string
}

func (e *NoPendingWorkError) Error() string {
	return fmt.Sprintf("%s: vendor %s has no unsettled revenue on %s", CodeNoPendingWork, e.VendorID, e.Date)
}

func NewNoPendingWorkError(vendorID, date string) *NoPendingWorkError {
	return &NoPendingWorkError{VendorID: vendorID, Date: date}
}

// DependencyError wraps a failure in an external collaborator (notification
// delivery, storage side effects). Notification failures are logged and never
// propagated.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %s: %v", CodeDependency, e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

func NewDependencyError(dependency string, err error) *DependencyError {
	return &DependencyError{Dependency: dependency, Err: err}
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ErrorCode extracts the machine-readable code from a domain error, or
// CodeDependency for anything unrecognized.
func ErrorCode(err error) string {
	var (
		ve *ValidationError
		nf *NotFoundError
		ce *ConflictError
		np *NoPendingWorkError
		de *DependencyError
	)
	switch {
	case errors.As(err, &ve):
		return CodeValidation
	case errors.As(err, &nf):
		return CodeNotFound
	case errors.As(err, &ce):
		return ce.Code
	case errors.As(err, &np):
		return CodeNoPendingWork
	case errors.As(err, &de):
		return CodeDependency
	default:
		return CodeDependency
	}
}
