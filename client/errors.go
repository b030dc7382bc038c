package client

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the backend has no course for the requested id.
var ErrNotFound = errors.New("course not found")

// ErrorResponse is the JSON error body the backend returns.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ConflictError signals that the uploaded material already exists for the
// course. Detail carries the backend's explanation when one was sent.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "material already uploaded"
}

// StatusError is any non-2xx response other than a conflict.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Code)
}
