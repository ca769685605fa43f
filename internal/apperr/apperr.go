// Package apperr defines the JSON error body every endpoint returns.
package apperr

import (
	"fmt"
	"net/http"
)

// Error is a client-facing failure. Success is always false; it mirrors the
// success flag of the happy-path bodies.
type Error struct {
	Success   bool   `json:"success"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func New(code int, message, detail string) *Error {
	return &Error{Code: code, Message: message, Detail: detail}
}

var (
	BadRequest      = func(message, detail string) *Error { return New(http.StatusBadRequest, message, detail) }
	Unauthorized    = func(message string) *Error { return New(http.StatusUnauthorized, message, "") }
	NotFound        = func(message string) *Error { return New(http.StatusNotFound, message, "") }
	Conflict        = func(message string) *Error { return New(http.StatusConflict, message, "") }
	TooManyRequests = func(message string) *Error { return New(http.StatusTooManyRequests, message, "") }
	Internal        = func(message, detail string) *Error {
		return New(http.StatusInternalServerError, message, detail)
	}
)

func (e *Error) WithRequestID(requestID string) *Error {
	e.RequestID = requestID
	return e
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

func (e *Error) StatusCode() int {
	return e.Code
}
