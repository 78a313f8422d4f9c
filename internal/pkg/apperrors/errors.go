package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAccountPending     = errors.New("account is pending approval")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Book errors
var (
	ErrBookNotFound     = errors.New("book not found")
	ErrBookNotAvailable = errors.New("book is not available")
)

// Event errors
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrEventNotApproved = errors.New("event is pending approval")
	ErrEventFull        = errors.New("event has reached maximum attendees")
)

// Chat errors
var (
	ErrChatNotFound       = errors.New("chat not found")
	ErrChatConflict       = errors.New("a chat already exists for this scope")
	ErrNotChatParticipant = errors.New("user is not a participant of this chat")
	ErrMessageNotFound    = errors.New("message not found")
)

// Transaction errors
var (
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrInvalidStatusChange   = errors.New("invalid transaction status transition")
	ErrTransactionNotPending = errors.New("transaction is no longer pending")
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Report errors
var (
	ErrReportNotFound = errors.New("report not found")
)

// CustomError wraps a sentinel error with a human-readable message
type CustomError struct {
	Err     error
	Message string
}

// Error returns the message if set, otherwise the wrapped error text
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped sentinel for errors.Is checks
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a new custom error for validation failures with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}
