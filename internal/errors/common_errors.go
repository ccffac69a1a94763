package errors

import "fmt"

// ErrorType classifies an AppError. ErrorHandler maps each type to an
// HTTP status and problem type.
type ErrorType string

const (
	// ErrTypeParsing marks an input that exists but is not a readable table.
	ErrTypeParsing ErrorType = "PARSING"
	// ErrTypeStorage marks input or output directory failures.
	ErrTypeStorage ErrorType = "STORAGE"
	// ErrTypeNotFound marks a named input that is absent.
	ErrTypeNotFound ErrorType = "NOT_FOUND"
	// ErrTypeUnsupported marks an extension no loader reads.
	ErrTypeUnsupported ErrorType = "UNSUPPORTED"
	// ErrTypeConfig marks a configuration the application cannot start with.
	ErrTypeConfig ErrorType = "CONFIG"
)

// AppError carries a failure from the service layer to the error handler.
// Context entries become problem detail extensions.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%s] %s", e.Type, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithContext sets key on the error and returns it for chaining.
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = map[string]any{}
	}
	e.Context[key] = value
	return e
}

func newAppError(t ErrorType, message string, cause error) *AppError {
	return &AppError{Type: t, Message: message, Cause: cause}
}

// NewParsingError reports an input that could not be read as a table.
func NewParsingError(message string, cause error) *AppError {
	return newAppError(ErrTypeParsing, message, cause)
}

// NewStorageError reports a filesystem failure outside the caller's control.
func NewStorageError(message string, cause error) *AppError {
	return newAppError(ErrTypeStorage, message, cause)
}

// NewNotFoundError reports that resource does not exist.
func NewNotFoundError(resource string) *AppError {
	return newAppError(ErrTypeNotFound, resource+" not found", nil)
}

// NewUnsupportedError reports an input format no loader reads.
func NewUnsupportedError(message string, cause error) *AppError {
	return newAppError(ErrTypeUnsupported, message, cause)
}

// NewConfigError reports an unusable configuration.
func NewConfigError(message string, cause error) *AppError {
	return newAppError(ErrTypeConfig, message, cause)
}
