package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidAmount indicates a conversion amount that is zero or negative.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrCurrencyNotFound indicates that no rate is stored for the requested currency code.
var ErrCurrencyNotFound = errors.New("currency not found")

// ErrFetch indicates a transport failure while talking to the external rate feed.
var ErrFetch = errors.New("rate feed fetch failed")

// ErrParse indicates that the external rate feed could not be parsed at all.
var ErrParse = errors.New("rate feed parse failed")

// AppError carries an HTTP-ish status code alongside a message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError returns an error that matches ErrValidation.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// NewNotFoundError returns an error that matches ErrNotFound.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// InvalidAmountError is returned when a conversion is requested for a non-positive amount.
type InvalidAmountError struct {
	Amount decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("amount must be greater than zero, got %s", e.Amount.String())
}

// Is lets errors.Is match both ErrInvalidAmount and ErrValidation.
func (e *InvalidAmountError) Is(target error) bool {
	return target == ErrInvalidAmount || target == ErrValidation
}

// CurrencyNotFoundError is returned when no rate exists for Code.
type CurrencyNotFoundError struct {
	Code string
}

func (e *CurrencyNotFoundError) Error() string {
	return fmt.Sprintf("currency '%s' not found", e.Code)
}

// Is lets errors.Is match both ErrCurrencyNotFound and ErrNotFound.
func (e *CurrencyNotFoundError) Is(target error) bool {
	return target == ErrCurrencyNotFound || target == ErrNotFound
}
