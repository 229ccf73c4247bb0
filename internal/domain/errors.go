package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")

	// ErrChainRejected marks a deterministic ledger rejection (guard failure).
	ErrChainRejected = errors.New("chain rejected")
	// ErrChainTransient marks a ledger call with unknown outcome (timeout, store failure).
	ErrChainTransient = errors.New("chain unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// RuleError reports a violated business precondition detected against the
// mirror before the ledger is called (inactive campaign, deadline, funds).
type RuleError struct {
	Rule    string
	Message string
}

func (e *RuleError) Error() string { return e.Rule + ": " + e.Message }

func (e *RuleError) Unwrap() error { return ErrValidation }

// NewRuleError creates a RuleError.
func NewRuleError(rule, message string) *RuleError {
	return &RuleError{Rule: rule, Message: message}
}

// Rule identifiers shared by the mirror checks and the ledger error codes.
const (
	RuleNotActive             = "NotActive"
	RuleDeadlinePassed        = "DeadlinePassed"
	RuleNonPositiveAmount     = "NonPositiveAmount"
	RuleInsufficientAvailable = "InsufficientAvailable"
	RuleNotPending            = "NotPending"
	RuleQuorumNotMet          = "QuorumNotMet"
	RuleAlreadyExecuted       = "AlreadyExecuted"
	RuleAlreadyClosed         = "AlreadyClosed"
	RuleCampaignClosed        = "CampaignClosed"
)

// ChainError is a classified ledger failure. Kind is ErrChainRejected or
// ErrChainTransient; Code carries the contract error code when rejected.
type ChainError struct {
	Kind    error
	Code    string
	Message string
	Err     error
}

func (e *ChainError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *ChainError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsChainRejected reports whether err is a deterministic ledger rejection.
func IsChainRejected(err error) bool { return errors.Is(err, ErrChainRejected) }

// IsChainTransient reports whether err is a ledger failure with unknown outcome.
func IsChainTransient(err error) bool { return errors.Is(err, ErrChainTransient) }
