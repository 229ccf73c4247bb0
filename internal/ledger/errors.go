package ledger

import "fmt"

// Code identifies a deterministic contract rejection.
type Code string

const (
	CodeAlreadyInitialized    Code = "AlreadyInitialized"
	CodeNotInitialized        Code = "NotInitialized"
	CodeUnauthorized          Code = "Unauthorized"
	CodeInvalidQuorum         Code = "InvalidQuorum"
	CodeInvalidGoal           Code = "InvalidGoal"
	CodeInvalidDeadline       Code = "InvalidDeadline"
	CodeInvalidArgument       Code = "InvalidArgument"
	CodeNonPositiveAmount     Code = "NonPositiveAmount"
	CodeNotFound              Code = "NotFound"
	CodeNotActive             Code = "NotActive"
	CodeDeadlinePassed        Code = "DeadlinePassed"
	CodeCampaignClosed        Code = "CampaignClosed"
	CodeInsufficientAvailable Code = "InsufficientAvailable"
	CodeNotPending            Code = "NotPending"
	CodeQuorumNotMet          Code = "QuorumNotMet"
	CodeAlreadyExecuted       Code = "AlreadyExecuted"
	CodeAlreadyClosed         Code = "AlreadyClosed"
	CodeDuplicateTransaction  Code = "DuplicateTransaction"
	CodeOverflow              Code = "Overflow"
)

// Error is a contract rejection. The invocation that returned it left no trace
// in the store.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches contract errors by code so the exported values work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func reject(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Match targets for errors.Is.
var (
	ErrAlreadyInitialized    = &Error{Code: CodeAlreadyInitialized}
	ErrNotInitialized        = &Error{Code: CodeNotInitialized}
	ErrUnauthorized          = &Error{Code: CodeUnauthorized}
	ErrInvalidQuorum         = &Error{Code: CodeInvalidQuorum}
	ErrInvalidGoal           = &Error{Code: CodeInvalidGoal}
	ErrInvalidDeadline       = &Error{Code: CodeInvalidDeadline}
	ErrInvalidArgument       = &Error{Code: CodeInvalidArgument}
	ErrNonPositiveAmount     = &Error{Code: CodeNonPositiveAmount}
	ErrNotFound              = &Error{Code: CodeNotFound}
	ErrNotActive             = &Error{Code: CodeNotActive}
	ErrDeadlinePassed        = &Error{Code: CodeDeadlinePassed}
	ErrCampaignClosed        = &Error{Code: CodeCampaignClosed}
	ErrInsufficientAvailable = &Error{Code: CodeInsufficientAvailable}
	ErrNotPending            = &Error{Code: CodeNotPending}
	ErrQuorumNotMet          = &Error{Code: CodeQuorumNotMet}
	ErrAlreadyExecuted       = &Error{Code: CodeAlreadyExecuted}
	ErrAlreadyClosed         = &Error{Code: CodeAlreadyClosed}
	ErrDuplicateTransaction  = &Error{Code: CodeDuplicateTransaction}
	ErrOverflow              = &Error{Code: CodeOverflow}
)

// overflowPanic is raised by checked arithmetic and converted into an
// Overflow rejection by the runtime.
type overflowPanic struct{ what string }
