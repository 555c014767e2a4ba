package domain

import (
	"errors"
	"net/http"
)

// Error codes for business logic errors.
const (
	CodeNotFound      = 1
	CodeAlreadyExists = 2
	CodeValidation    = 3
	CodeInternal      = 4
	CodeInUse         = 5
	CodeUnauthorized  = 6
	CodeForbidden     = 7
)

// AppError is a categorized failure. Message is safe to show to API callers;
// Err keeps the cause for logs.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is, which is how callers match a
// precise rule such as ErrInvalidDateRange.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Category sentinels. Match a category with IsNotFound and friends, which
// compare codes; errors.Is only matches these exact pointers.
var (
	ErrNotFound      = &AppError{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists = &AppError{Code: CodeAlreadyExists, Message: "already exists"}
	ErrValidation    = &AppError{Code: CodeValidation, Message: "validation error"}
	ErrInternal      = &AppError{Code: CodeInternal, Message: "internal error"}
	ErrInUse         = &AppError{Code: CodeInUse, Message: "in use"}
	ErrUnauthorized  = &AppError{Code: CodeUnauthorized, Message: "unauthorized"}
)

// Rule violations. Each is wrapped in an *AppError by the validators, so
// callers can match the category with IsValidation/IsInUse and the precise
// rule with errors.Is.
var (
	ErrNameRequired     = errors.New("nom is required")
	ErrNameHasDigit     = errors.New("nom must not contain digits")
	ErrInvalidPartySize = errors.New("nbPersonnes must be at least 1")
	ErrInvalidEmail     = errors.New("email must be a valid email address")
	ErrInvalidPhone     = errors.New("telephone must be a valid French mobile number")
	ErrInvalidNumero    = errors.New("numero must be at least 1")
	ErrInvalidCapacity  = errors.New("capacite must be at least 1")
	ErrInvalidDateRange = errors.New("dateDebut must be before dateFin")
	ErrHorizonExceeded  = errors.New("dateDebut exceeds the booking horizon")
	ErrUnknownClient    = errors.New("client does not exist")
	ErrUnknownChambre   = errors.New("chambre does not exist")

	ErrClientHasReservations = errors.New("client has active reservations")
	ErrChambreInUse          = errors.New("room used in active reservations")

	ErrInvalidCredential           = errors.New("missing bearer token")
	ErrExpiredOrTamperedCredential = errors.New("invalid or expired token")
)

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewRuleError wraps a rule violation in a validation AppError whose message
// names the rule.
func NewRuleError(rule error) *AppError {
	return &AppError{Code: CodeValidation, Message: rule.Error(), Err: rule}
}

// IsNotFound reports whether err is or wraps an AppError with CodeNotFound.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsAlreadyExists reports whether err is or wraps an AppError with CodeAlreadyExists.
func IsAlreadyExists(err error) bool {
	return hasCode(err, CodeAlreadyExists)
}

// IsValidation reports whether err is or wraps an AppError with CodeValidation.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsInternal reports whether err is or wraps an AppError with CodeInternal.
func IsInternal(err error) bool {
	return hasCode(err, CodeInternal)
}

// IsInUse reports whether err is or wraps an AppError with CodeInUse, i.e. a
// delete blocked by live references.
func IsInUse(err error) bool {
	return hasCode(err, CodeInUse)
}

// IsUnauthorized reports whether err is or wraps an AppError with CodeUnauthorized.
func IsUnauthorized(err error) bool {
	return hasCode(err, CodeUnauthorized)
}

// IsForbidden reports whether err is or wraps an AppError with CodeForbidden.
func IsForbidden(err error) bool {
	return hasCode(err, CodeForbidden)
}

func hasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

var statusByCode = map[int]int{
	CodeNotFound:      http.StatusNotFound,
	CodeAlreadyExists: http.StatusConflict,
	CodeInUse:         http.StatusConflict,
	CodeValidation:    http.StatusBadRequest,
	CodeUnauthorized:  http.StatusUnauthorized,
	CodeForbidden:     http.StatusForbidden,
	CodeInternal:      http.StatusInternalServerError,
}

// HTTPStatusCode returns the status for err's AppError code, or 500.
func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if status, ok := statusByCode[appErr.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}
