// Package result defines the outcome envelope shared by the account store,
// the auth service, and the transport layer. Expected failures travel inside
// Result values instead of Go errors, so every layer sees the same status
// classification and nothing has to re-derive it from error types.
package result

import "net/http"

// Result carries the outcome of a fallible operation: a value when the
// operation succeeded, or a human-readable message when it did not, tagged
// with an HTTP-like status code (2xx success, 4xx caller/credential errors,
// 5xx storage or infrastructure failure).
type Result[T any] struct {
	Value        T
	ErrorMessage string
	StatusCode   int
}

// Success wraps a value with status 200.
func Success[T any](value T) Result[T] {
	return Result[T]{Value: value, StatusCode: http.StatusOK}
}

// SuccessWithStatus wraps a value with an explicit 2xx status,
// e.g. 201 for a freshly created resource.
func SuccessWithStatus[T any](value T, statusCode int) Result[T] {
	return Result[T]{Value: value, StatusCode: statusCode}
}

// Error builds a failed Result. The zero value of T is left in place.
func Error[T any](statusCode int, message string) Result[T] {
	return Result[T]{ErrorMessage: message, StatusCode: statusCode}
}

// IsSuccess reports whether the status code belongs to the 2xx family.
func (r Result[T]) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}
