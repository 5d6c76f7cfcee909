package serverutils

import "fmt"

// HTTPError carries an HTTP status alongside the message so services can
// express validation / not-found / precondition failures without importing
// fiber. The error-handler middleware maps it onto the response.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewBadRequest(format string, args ...interface{}) *HTTPError {
	return &HTTPError{Status: 400, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorized(message string) *HTTPError {
	return &HTTPError{Status: 401, Message: message}
}

func NewForbidden(message string) *HTTPError {
	return &HTTPError{Status: 403, Message: message}
}

func NewNotFound(format string, args ...interface{}) *HTTPError {
	return &HTTPError{Status: 404, Message: fmt.Sprintf(format, args...)}
}

// NewBadGateway reports an external-dependency failure (payment gateway,
// event bus) that did not corrupt local state.
func NewBadGateway(format string, args ...interface{}) *HTTPError {
	return &HTTPError{Status: 502, Message: fmt.Sprintf(format, args...)}
}
