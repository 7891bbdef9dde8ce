package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	AccountNotFound      ErrorCode = "account_not_found"
	DuplicateLastName    ErrorCode = "duplicate_last_name"
	InvalidAmount        ErrorCode = "invalid_amount"
	InvalidInput         ErrorCode = "invalid_input"
	InsufficientFunds    ErrorCode = "insufficient_funds"
	DepositLimitExceeded ErrorCode = "deposit_limit_exceeded"
	DepositWindowInvalid ErrorCode = "deposit_window_invalid"
	InternalError        ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus maps the error code to a response status for the API layer.
func (e AppError) HTTPStatus() int {
	switch e.Code {
	case AccountNotFound:
		return http.StatusNotFound
	case DuplicateLastName:
		return http.StatusConflict
	case InvalidAmount, InvalidInput:
		return http.StatusBadRequest
	case InsufficientFunds, DepositLimitExceeded, DepositWindowInvalid:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// Predefined errors for common cases
var (
	ErrAccountNotFound        = NewAppError(AccountNotFound, "account not found")
	ErrDuplicateLastName      = NewAppError(DuplicateLastName, "an account with that last name already exists")
	ErrInvalidAmount          = NewAppError(InvalidAmount, "amount must be positive")
	ErrInsufficientFunds      = NewAppError(InsufficientFunds, "account balance is not positive")
	ErrDepositLimitExceeded   = NewAppError(DepositLimitExceeded, "daily deposit limit exceeded")
	ErrDepositWindowInvalid   = NewAppError(DepositWindowInvalid, "account activity is outside the current deposit window")
	ErrCannotBeginTransaction = NewAppError(InternalError, "store cannot begin a transaction")
)
