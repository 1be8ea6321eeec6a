package service

import "errors"

var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = errors.New("registro not found")
	ErrObraNotFound       = errors.New("obra not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTipoNotFound       = errors.New("tipo de registro not found")
	ErrForbidden          = errors.New("access denied")
	ErrAdminRequired      = errors.New("administrator role required")
	ErrObraSuspended      = errors.New("obra is suspended")
	ErrNoAttachment       = errors.New("registro has no attachment")
	ErrAttachmentMissing  = errors.New("attachment not found in storage")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user account is inactive")
)

// ValidationError reports bad client input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// ConflictError reports a write refused because of existing data: a taken
// name or a row that is still referenced.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func conflict(msg string) *ConflictError {
	return &ConflictError{Message: msg}
}
