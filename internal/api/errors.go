package api

import "fmt"

// GenericFailureMessage is shown to the user when a command failed before
// the server could answer.
const GenericFailureMessage = "request failed"

// TransportError means the request never completed: dial failure, timeout,
// or an unreadable response body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AppError means the server answered with a well-formed failure envelope
// (success:false). Message carries the server-provided text verbatim.
type AppError struct {
	Op      string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// UserMessage returns the text to surface for a failed command: the
// server message verbatim for application errors, a generic message for
// transport errors.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr.Message
	}
	return GenericFailureMessage
}
