// Package errors defines the error taxonomy shared by every channel.
//
// Each failure that reaches the user is a *CLIError whose Category records
// where it came from: argument validation, channel configuration, or the
// delivery attempt itself. All three are terminal for the invocation.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Category classifies the origin of a failure.
type Category int

const (
	// Validation covers empty or malformed invocation arguments.
	Validation Category = iota
	// Configuration covers missing or contradictory channel settings.
	Configuration
	// Transport covers network and protocol failures during delivery.
	Transport
)

// String returns the human-readable category label.
func (c Category) String() string {
	switch c {
	case Validation:
		return "Validation Error"
	case Configuration:
		return "Configuration Error"
	case Transport:
		return "Transport Error"
	default:
		return "Error"
	}
}

// CLIError is an error with a category, shown to the user as one line.
type CLIError struct {
	Category Category
	Message  string
	Err      error
}

func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a Validation error.
func NewValidationError(format string, args ...any) *CLIError {
	return &CLIError{Category: Validation, Message: fmt.Sprintf(format, args...)}
}

// NewConfigError creates a Configuration error.
func NewConfigError(format string, args ...any) *CLIError {
	return &CLIError{Category: Configuration, Message: fmt.Sprintf(format, args...)}
}

// NewTransportError creates a Transport error.
func NewTransportError(format string, args ...any) *CLIError {
	return &CLIError{Category: Transport, Message: fmt.Sprintf(format, args...)}
}

// Wrap converts err into a CLIError of the given category.
// Returns nil if err is nil.
func Wrap(err error, category Category) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{Category: category, Message: err.Error(), Err: err}
}

// WrapWithMessage wraps err with a prefix message, "message: err".
// Returns nil if err is nil.
func WrapWithMessage(err error, category Category, message string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category: category,
		Message:  fmt.Sprintf("%s: %s", message, err.Error()),
		Err:      err,
	}
}

// IsCLIError reports whether err (or anything it wraps) is a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}

// CategoryOf returns the category of err. Errors that are not CLIErrors
// (cobra flag errors, for instance) are treated as Validation failures.
func CategoryOf(err error) Category {
	if cliErr := AsCLIError(err); cliErr != nil {
		return cliErr.Category
	}
	return Validation
}
