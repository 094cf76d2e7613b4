package models

import "fmt"

// ErrorMessageResponse is the body of every failed gateway operation
type ErrorMessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ValidationError is returned when the request is missing, malformed or lacks a required field
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError is returned when no record exists for the requested identifier
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AuthError is returned when credentials do not match a stored administrator
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// StorageError wraps any failure of the underlying store
type StorageError struct {
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap returns the store failure
func (e *StorageError) Unwrap() error { return e.Err }

// Cause returns the message of the store failure, or an empty string
func (e *StorageError) Cause() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
