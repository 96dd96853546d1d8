package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrInvalidPathSyntax     = errors.New("invalid path syntax")
	ErrInvalidToggleFilename = errors.New("toggle filename cannot be decoded")
	ErrCorruptToggleRecord   = errors.New("toggle record is not valid JSON")
	ErrStorageUnavailable    = errors.New("toggle storage is unavailable")
	ErrPathNotFound          = errors.New("path does not exist in the document")
	ErrToggleFailed          = errors.New("node could not be removed from the working document")
	ErrRevertFailed          = errors.New("stored value could not be restored into the working document")
	ErrFileNotFound          = errors.New("document file not found")
	ErrFileEmpty             = errors.New("document file is empty")
	ErrInvalidJSON           = errors.New("invalid JSON format")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypePath     ErrorType = "path"
	ErrorTypeDocument ErrorType = "document"
	ErrorTypeStorage  ErrorType = "storage"
	ErrorTypeToggle   ErrorType = "toggle"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	// Check if target is also an *AppError and if the types match
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewPathError creates a new error related to path parsing or encoding
func NewPathError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypePath,
		Message: message,
		Err:     err,
	}
}

// NewDocumentError creates a new error related to document loading or saving
func NewDocumentError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeDocument,
		Message: message,
		Err:     err,
	}
}

// NewStorageError creates a new error related to the toggle directory
func NewStorageError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Message: message,
		Err:     err,
	}
}

// NewToggleError creates a new error related to a toggle or revert operation
func NewToggleError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeToggle,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypePath:
			return fmt.Sprintf("Path error: %s", appErr.Message)
		case ErrorTypeDocument:
			return fmt.Sprintf("Document error: %s", appErr.Message)
		case ErrorTypeStorage:
			return fmt.Sprintf("Storage error: %s", appErr.Message)
		case ErrorTypeToggle:
			return fmt.Sprintf("Toggle error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrInvalidPathSyntax) {
		return "Error: The path is not valid. Use dotted keys and bracketed indices, e.g. settings.theme or users[0].name."
	}
	if errors.Is(err, ErrPathNotFound) {
		return "Error: Nothing exists at that path in the document."
	}
	if errors.Is(err, ErrCorruptToggleRecord) {
		return "Error: The stored toggle record is not valid JSON."
	}
	if errors.Is(err, ErrStorageUnavailable) {
		return "Error: The toggle directory could not be read or written."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The document file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The document file is empty. Please provide a file with valid JSON content."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The document contains invalid JSON. Please check your JSON syntax."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
